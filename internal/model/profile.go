package model

// Profile is the scalar part of a stored user profile.
type Profile struct {
	ID            int64
	Name          string
	Username      string
	Email         string
	Phone         string
	DateOfBirth   string
	PasswordHash  string
	Gender        string
	CityID        *int64
	PreferredTime string
	MinutesPerDay *int
	Streak        int
}

// ScalarField names a writable scalar column of a profile.
type ScalarField string

const (
	FieldCity          ScalarField = "city"
	FieldName          ScalarField = "name"
	FieldUsername      ScalarField = "username"
	FieldDateOfBirth   ScalarField = "date_of_birth"
	FieldPassword      ScalarField = "password"
	FieldEmail         ScalarField = "email"
	FieldPhone         ScalarField = "phone"
	FieldGender        ScalarField = "gender"
	FieldPreferredTime ScalarField = "preferred_time"
	FieldMinutesPerDay ScalarField = "minutes_per_day"
)

// ScalarFields lists writable scalar fields in table definition order.
var ScalarFields = []ScalarField{
	FieldCity,
	FieldName,
	FieldUsername,
	FieldDateOfBirth,
	FieldPassword,
	FieldEmail,
	FieldPhone,
	FieldGender,
	FieldPreferredTime,
	FieldMinutesPerDay,
}

// ScalarValue is an accepted scalar candidate.
// Value is what gets written (a city ID, a password hash, an int for minutes,
// a string otherwise); Display is what the audit report shows.
type ScalarValue struct {
	Field   ScalarField
	Value   any
	Display string
}

// Genders maps lower-cased gender values to their canonical spelling.
var Genders = map[string]string{
	"male":              "Male",
	"female":            "Female",
	"non-binary":        "Non-Binary",
	"prefer not to say": "Prefer Not To Say",
}

// LearningStyles lists the learning styles a user can be associated with.
var LearningStyles = []string{
	"Visual",
	"Auditory",
	"Kinesthetic",
	"Reading/Writing",
	"Logical",
	"Social",
	"Solitary",
	"Verbal",
	"Musical",
	"Naturalistic",
}

package model

// ChangeRequest holds candidate values proposed for a profile.
// A nil field means no change was requested for it.
type ChangeRequest struct {
	City          *string `json:"city,omitempty"`
	Name          *string `json:"name,omitempty"`
	Username      *string `json:"username,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Password      *string `json:"password,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	PreferredTime *string `json:"preferred_time,omitempty"`
	MinutesPerDay *int    `json:"minutes_per_day,omitempty"`

	PreviousCourses []PreviousCourseCandidate `json:"previous_courses,omitempty"`
	CurrentCourses  []string                  `json:"current_courses,omitempty"`
	LearningStyles  []string                  `json:"learning_styles,omitempty"`
	Languages       []string                  `json:"languages,omitempty"`
	PrimaryLanguage *string                   `json:"primary_language,omitempty"`
}

// PreviousCourseCandidate is a completed course with an optional GPA.
type PreviousCourseCandidate struct {
	Course string   `json:"course"`
	GPA    *float64 `json:"gpa"`
}

// ReadRequest flags the attributes a caller wants to see.
type ReadRequest struct {
	City            bool `json:"city,omitempty"`
	Streak          bool `json:"streak,omitempty"`
	Name            bool `json:"name,omitempty"`
	Username        bool `json:"username,omitempty"`
	DateOfBirth     bool `json:"date_of_birth,omitempty"`
	Password        bool `json:"password,omitempty"`
	Email           bool `json:"email,omitempty"`
	Phone           bool `json:"phone,omitempty"`
	Gender          bool `json:"gender,omitempty"`
	PreferredTime   bool `json:"preferred_time,omitempty"`
	MinutesPerDay   bool `json:"minutes_per_day,omitempty"`
	PreviousCourses bool `json:"previous_courses,omitempty"`
	CurrentCourses  bool `json:"current_courses,omitempty"`
	LearningStyles  bool `json:"learning_styles,omitempty"`
	Languages       bool `json:"languages,omitempty"`
	PrimaryLanguage bool `json:"primary_language,omitempty"`
}

// DeleteRequest names associations to remove.
type DeleteRequest struct {
	Languages       []string `json:"languages,omitempty"`
	LearningStyles  []string `json:"learning_styles,omitempty"`
	CurrentCourses  []string `json:"current_courses,omitempty"`
	PreviousCourses []string `json:"previous_courses,omitempty"`
}

package model

// EntityKind names a reference table that display names resolve against.
type EntityKind string

const (
	EntityCity          EntityKind = "city"
	EntityLanguage      EntityKind = "language"
	EntityLearningStyle EntityKind = "learning_style"
	EntityCourse        EntityKind = "course"
)

// Reference is a resolved reference entity.
type Reference struct {
	ID   int64
	Name string
}

// City is the stored city of a profile.
type City struct {
	Reference
	Country string
}

// LanguageLink is a spoken language association.
type LanguageLink struct {
	Reference
	Primary bool
}

// CourseGrade is a previous course completion. GPA is nil when unknown.
type CourseGrade struct {
	Reference
	GPA *float64
}

package model

import "context"

// ReferenceStore resolves reference display names.
type ReferenceStore interface {
	// ResolveReference matches name case-insensitively after trimming.
	// It returns ErrNotFound when nothing matches.
	ResolveReference(ctx context.Context, kind EntityKind, name string) (Reference, error)
}

// ProfileReader reads profiles and their associations.
type ProfileReader interface {
	ReferenceStore
	GetProfile(ctx context.Context, userID int64) (Profile, error)
	// IsValueTaken reports whether a unique field value belongs to a user other than exceptUserID.
	IsValueTaken(ctx context.Context, field ScalarField, value string, exceptUserID int64) (bool, error)
	GetCity(ctx context.Context, userID int64) (City, error)
	ListLanguages(ctx context.Context, userID int64) ([]LanguageLink, error)
	ListLearningStyles(ctx context.Context, userID int64) ([]Reference, error)
	ListCurrentCourses(ctx context.Context, userID int64) ([]Reference, error)
	ListPreviousCourses(ctx context.Context, userID int64) ([]CourseGrade, error)
}

// ProfileWriter mutates a profile and its associations.
// Delete methods report whether a row was removed.
type ProfileWriter interface {
	UpdateScalars(ctx context.Context, userID int64, values []ScalarValue) error

	InsertLanguage(ctx context.Context, userID, languageID int64, primary bool) error
	ClearPrimaryLanguage(ctx context.Context, userID int64) error
	SetPrimaryLanguage(ctx context.Context, userID, languageID int64) error
	DeleteLanguage(ctx context.Context, userID, languageID int64) (bool, error)

	InsertLearningStyle(ctx context.Context, userID, styleID int64) error
	DeleteLearningStyle(ctx context.Context, userID, styleID int64) (bool, error)

	InsertCurrentCourse(ctx context.Context, userID, courseID int64) error
	DeleteCurrentCourse(ctx context.Context, userID, courseID int64) (bool, error)

	InsertPreviousCourse(ctx context.Context, userID, courseID int64, gpa *float64) error
	UpdatePreviousCourseGPA(ctx context.Context, userID, courseID int64, gpa *float64) error
	DeletePreviousCourse(ctx context.Context, userID, courseID int64) (bool, error)
}

// ProfileTx is a unit of work against the profile store.
type ProfileTx interface {
	ProfileReader
	ProfileWriter
}

// ProfileStore is the shared relational store holding profiles.
type ProfileStore interface {
	ProfileReader
	// WithinTx runs fn in a transaction, committing only if fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx ProfileTx) error) error
	Ping(ctx context.Context) error
}

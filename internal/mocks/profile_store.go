package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// ProfileReader implements the read methods shared by ProfileStore and ProfileTx.
type ProfileReader struct {
	mock.Mock
}

func (m *ProfileReader) ResolveReference(ctx context.Context, kind model.EntityKind, name string) (model.Reference, error) {
	args := m.Called(ctx, kind, name)
	return args.Get(0).(model.Reference), args.Error(1)
}

func (m *ProfileReader) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileReader) IsValueTaken(ctx context.Context, field model.ScalarField, value string, exceptUserID int64) (bool, error) {
	args := m.Called(ctx, field, value, exceptUserID)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileReader) GetCity(ctx context.Context, userID int64) (model.City, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.City), args.Error(1)
}

func (m *ProfileReader) ListLanguages(ctx context.Context, userID int64) ([]model.LanguageLink, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.LanguageLink), args.Error(1)
}

func (m *ProfileReader) ListLearningStyles(ctx context.Context, userID int64) ([]model.Reference, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Reference), args.Error(1)
}

func (m *ProfileReader) ListCurrentCourses(ctx context.Context, userID int64) ([]model.Reference, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Reference), args.Error(1)
}

func (m *ProfileReader) ListPreviousCourses(ctx context.Context, userID int64) ([]model.CourseGrade, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CourseGrade), args.Error(1)
}

// ProfileStore mocks model.ProfileStore.
// WithinTx returns the error of the second return value unless the first is
// a model.ProfileTx, in which case fn runs against it.
type ProfileStore struct {
	ProfileReader
}

func NewProfileStore(t testingT) *ProfileStore {
	m := &ProfileStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProfileStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx model.ProfileTx) error) error {
	args := m.Called(ctx, fn)
	if tx, ok := args.Get(0).(model.ProfileTx); ok {
		return fn(ctx, tx)
	}
	return args.Error(1)
}

func (m *ProfileStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ProfileTx mocks model.ProfileTx.
type ProfileTx struct {
	ProfileReader
}

func NewProfileTx(t testingT) *ProfileTx {
	m := &ProfileTx{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProfileTx) UpdateScalars(ctx context.Context, userID int64, values []model.ScalarValue) error {
	return m.Called(ctx, userID, values).Error(0)
}

func (m *ProfileTx) InsertLanguage(ctx context.Context, userID, languageID int64, primary bool) error {
	return m.Called(ctx, userID, languageID, primary).Error(0)
}

func (m *ProfileTx) ClearPrimaryLanguage(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *ProfileTx) SetPrimaryLanguage(ctx context.Context, userID, languageID int64) error {
	return m.Called(ctx, userID, languageID).Error(0)
}

func (m *ProfileTx) DeleteLanguage(ctx context.Context, userID, languageID int64) (bool, error) {
	args := m.Called(ctx, userID, languageID)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileTx) InsertLearningStyle(ctx context.Context, userID, styleID int64) error {
	return m.Called(ctx, userID, styleID).Error(0)
}

func (m *ProfileTx) DeleteLearningStyle(ctx context.Context, userID, styleID int64) (bool, error) {
	args := m.Called(ctx, userID, styleID)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileTx) InsertCurrentCourse(ctx context.Context, userID, courseID int64) error {
	return m.Called(ctx, userID, courseID).Error(0)
}

func (m *ProfileTx) DeleteCurrentCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileTx) InsertPreviousCourse(ctx context.Context, userID, courseID int64, gpa *float64) error {
	return m.Called(ctx, userID, courseID, gpa).Error(0)
}

func (m *ProfileTx) UpdatePreviousCourseGPA(ctx context.Context, userID, courseID int64, gpa *float64) error {
	return m.Called(ctx, userID, courseID, gpa).Error(0)
}

func (m *ProfileTx) DeletePreviousCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

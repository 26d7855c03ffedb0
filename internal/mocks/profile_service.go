package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// ProfileService mocks the profile operations the HTTP handlers call.
type ProfileService struct {
	mock.Mock
}

func NewProfileService(t testingT) *ProfileService {
	m := &ProfileService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProfileService) ChangeFromText(ctx context.Context, userID int64, text string) (model.ChangeReport, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(model.ChangeReport), args.Error(1)
}

func (m *ProfileService) ReadFromText(ctx context.Context, userID int64, text string) (model.ReadReport, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(model.ReadReport), args.Error(1)
}

func (m *ProfileService) DeleteFromText(ctx context.Context, userID int64, text string) (model.DeleteReport, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(model.DeleteReport), args.Error(1)
}

// Extractor mocks model.Extractor.
type Extractor struct {
	mock.Mock
}

func NewExtractor(t testingT) *Extractor {
	m := &Extractor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Extractor) ExtractChange(ctx context.Context, text string) (model.ChangeRequest, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.ChangeRequest), args.Error(1)
}

func (m *Extractor) ExtractRead(ctx context.Context, text string) (model.ReadRequest, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.ReadRequest), args.Error(1)
}

func (m *Extractor) ExtractDelete(ctx context.Context, text string) (model.DeleteRequest, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.DeleteRequest), args.Error(1)
}

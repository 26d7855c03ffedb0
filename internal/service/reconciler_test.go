package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studyprofile-server/internal/model"
)

var (
	english   = model.Reference{ID: 10, Name: "English"}
	french    = model.Reference{ID: 11, Name: "French"}
	german    = model.Reference{ID: 12, Name: "German"}
	visual    = model.Reference{ID: 20, Name: "Visual"}
	linear    = model.Reference{ID: 30, Name: "Linear Algebra"}
	calculus  = model.Reference{ID: 31, Name: "Calculus I"}
	operating = model.Reference{ID: 32, Name: "Operating Systems"}
)

func emptyState() AssociationState {
	return AssociationState{
		Languages: map[int64]bool{},
		Styles:    map[int64]struct{}{},
		Current:   map[int64]struct{}{},
		Previous:  map[int64]*float64{},
	}
}

func gpa(v float64) *float64 { return &v }

func TestReconcile_PreviousCourseLeavesCurrent(t *testing.T) {
	state := emptyState()
	state.Current[linear.ID] = struct{}{}

	plan, warnings := Reconcile(state, ResolvedChange{
		PreviousCourses: []ResolvedCourse{{Course: linear, GPA: gpa(3.7)}},
	})

	assert.Empty(t, warnings)
	require.Len(t, plan.Previous, 1)
	assert.Equal(t, PreviousCourseOp{Course: linear, GPA: gpa(3.7), DropCurrent: true}, plan.Previous[0])
}

func TestReconcile_PreviousCourseGPA(t *testing.T) {
	tests := []struct {
		name       string
		stored     *float64
		candidate  *float64
		wantOps    int
		wantUpdate bool
	}{
		{name: "different gpa updates", stored: gpa(3.0), candidate: gpa(3.5), wantOps: 1, wantUpdate: true},
		{name: "same gpa is skipped", stored: gpa(3.0), candidate: gpa(3.0), wantOps: 0},
		{name: "both unknown is skipped", stored: nil, candidate: nil, wantOps: 0},
		{name: "known gpa replaces unknown", stored: nil, candidate: gpa(2.0), wantOps: 1, wantUpdate: true},
		{name: "gpa equal after rounding to stored scale", stored: gpa(3.76), candidate: gpa(3.755), wantOps: 0},
		{name: "gpa rounded down to stored scale", stored: gpa(3.12), candidate: gpa(3.1249), wantOps: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := emptyState()
			state.Previous[calculus.ID] = tt.stored

			plan, warnings := Reconcile(state, ResolvedChange{
				PreviousCourses: []ResolvedCourse{{Course: calculus, GPA: tt.candidate}},
			})

			assert.Empty(t, warnings)
			require.Len(t, plan.Previous, tt.wantOps)
			if tt.wantOps > 0 {
				assert.Equal(t, tt.wantUpdate, plan.Previous[0].Update)
				assert.False(t, plan.Previous[0].DropCurrent)
			}
		})
	}
}

func TestReconcile_GPAOutOfRange(t *testing.T) {
	plan, warnings := Reconcile(emptyState(), ResolvedChange{
		PreviousCourses: []ResolvedCourse{{Course: calculus, GPA: gpa(4.2)}, {Course: linear, GPA: gpa(-1)}},
	})

	assert.Empty(t, plan.Previous)
	require.Len(t, warnings, 2)
	assert.Equal(t, model.WarningInvalidValue, warnings[0].Code)
	assert.Equal(t, "Calculus I", warnings[0].Value)
}

func TestReconcile_CurrentCourses(t *testing.T) {
	state := emptyState()
	state.Current[calculus.ID] = struct{}{}
	state.Previous[operating.ID] = gpa(3.1)

	plan, warnings := Reconcile(state, ResolvedChange{
		PreviousCourses: []ResolvedCourse{{Course: linear, GPA: gpa(4.0)}},
		CurrentCourses:  []model.Reference{calculus, operating, linear},
	})

	assert.Empty(t, plan.Current)
	require.Len(t, warnings, 3)
	assert.Equal(t, model.WarningAlreadyEnrolled, warnings[0].Code)
	assert.Equal(t, model.WarningAlreadyDone, warnings[1].Code)
	assert.Equal(t, model.WarningAlreadyDone, warnings[2].Code)
}

func TestReconcile_DuplicateCandidates(t *testing.T) {
	plan, warnings := Reconcile(emptyState(), ResolvedChange{
		CurrentCourses: []model.Reference{calculus, calculus},
		LearningStyles: []model.Reference{visual, visual},
	})

	assert.Equal(t, []model.Reference{calculus}, plan.Current)
	assert.Equal(t, []model.Reference{visual}, plan.Styles)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarningAlreadyEnrolled, warnings[0].Code)
}

func TestReconcile_Languages(t *testing.T) {
	tests := []struct {
		name        string
		held        map[int64]bool
		languages   []model.Reference
		primary     *model.Reference
		wantLangs   []LanguageOp
		wantPrimary *PrimaryOp
	}{
		{
			name:      "held language is skipped",
			held:      map[int64]bool{english.ID: true},
			languages: []model.Reference{english, french},
			wantLangs: []LanguageOp{{Language: french}},
		},
		{
			name:      "first language of a user becomes primary",
			held:      map[int64]bool{},
			languages: []model.Reference{french, german},
			wantLangs: []LanguageOp{{Language: french, Primary: true}, {Language: german}},
		},
		{
			name:        "primary target added in the same change",
			held:        map[int64]bool{english.ID: true},
			languages:   []model.Reference{french},
			primary:     &french,
			wantLangs:   []LanguageOp{{Language: french}},
			wantPrimary: &PrimaryOp{Language: french, Associated: true},
		},
		{
			name:        "primary target not yet spoken",
			held:        map[int64]bool{english.ID: true},
			primary:     &german,
			wantPrimary: &PrimaryOp{Language: german, Associated: false},
		},
		{
			name:        "held secondary language promoted",
			held:        map[int64]bool{english.ID: true, french.ID: false},
			primary:     &french,
			wantPrimary: &PrimaryOp{Language: french, Associated: true},
		},
		{
			name:    "current primary is left alone",
			held:    map[int64]bool{english.ID: true},
			primary: &english,
		},
		{
			name:        "explicit primary on a user with no languages",
			held:        map[int64]bool{},
			languages:   []model.Reference{french},
			primary:     &german,
			wantLangs:   []LanguageOp{{Language: french}},
			wantPrimary: &PrimaryOp{Language: german, Associated: false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := emptyState()
			state.Languages = tt.held

			plan, warnings := Reconcile(state, ResolvedChange{Languages: tt.languages, PrimaryLanguage: tt.primary})

			assert.Empty(t, warnings)
			assert.Equal(t, tt.wantLangs, plan.Languages)
			assert.Equal(t, tt.wantPrimary, plan.Primary)
		})
	}
}

func TestReconcile_EmptyChange(t *testing.T) {
	plan, warnings := Reconcile(emptyState(), ResolvedChange{})
	assert.True(t, plan.Empty())
	assert.Empty(t, warnings)
}

func TestAuditEntries_Order(t *testing.T) {
	scalars := []model.ScalarValue{
		{Field: model.FieldName, Value: "Alice", Display: "Alice"},
		{Field: model.FieldPassword, Value: "hash", Display: passwordMask},
	}
	plan := Plan{
		Previous:  []PreviousCourseOp{{Course: linear, GPA: gpa(3.7)}, {Course: calculus}},
		Current:   []model.Reference{operating},
		Styles:    []model.Reference{visual},
		Languages: []LanguageOp{{Language: french}},
		Primary:   &PrimaryOp{Language: french, Associated: true},
	}

	got := auditEntries(scalars, plan)

	assert.Equal(t, []model.AuditEntry{
		{Field: "name", Value: "Alice"},
		{Field: "password", Value: "********"},
		{Field: "Linear Algebra", Value: "3.7"},
		{Field: "Calculus I", Value: "n/a"},
		{Field: "new course", Value: "Operating Systems"},
		{Field: "new learning style", Value: "Visual"},
		{Field: "new language", Value: "French"},
		{Field: "new primary language", Value: "French"},
	}, got)
}

func TestReconcile_GPARoundedToStoredScale(t *testing.T) {
	plan, warnings := Reconcile(emptyState(), ResolvedChange{
		PreviousCourses: []ResolvedCourse{
			{Course: calculus, GPA: gpa(3.755)},
			{Course: linear, GPA: gpa(3.999)},
			{Course: operating, GPA: gpa(2.5)},
		},
	})

	assert.Empty(t, warnings)
	require.Len(t, plan.Previous, 3)
	assert.Equal(t, 3.76, *plan.Previous[0].GPA)
	assert.Equal(t, 4.0, *plan.Previous[1].GPA)
	assert.Equal(t, 2.5, *plan.Previous[2].GPA)

	entries := auditEntries(nil, plan)
	require.Len(t, entries, 3)
	assert.Equal(t, model.AuditEntry{Field: calculus.Name, Value: "3.76"}, entries[0])
}

func TestReconcile_RoundedGPAIsIdempotent(t *testing.T) {
	state := emptyState()
	change := ResolvedChange{PreviousCourses: []ResolvedCourse{{Course: calculus, GPA: gpa(3.755)}}}

	first, _ := Reconcile(state, change)
	require.Len(t, first.Previous, 1)
	state.Previous[calculus.ID] = first.Previous[0].GPA

	second, warnings := Reconcile(state, change)
	assert.Empty(t, warnings)
	assert.True(t, second.Empty())
}

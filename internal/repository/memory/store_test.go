package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studyprofile-server/internal/model"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Load(DefaultSeed()))
	return s
}

func TestStore_ResolveReference(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	ref, err := s.ResolveReference(ctx, model.EntityCourse, "  linear ALGEBRA ")
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", ref.Name)

	_, err = s.ResolveReference(ctx, model.EntityCourse, "Astrology")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.ResolveReference(ctx, model.EntityLanguage, "Linear Algebra")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_AddReferenceDuplicate(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.AddReference(model.EntityLanguage, "english", "")
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_DefaultSeedProfileID(t *testing.T) {
	s := newSeededStore(t)

	p, err := s.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Username)
}

func TestStore_IsValueTaken(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	otherID, err := s.AddProfile(model.Profile{Username: "bob", Email: "Bob@Example.com", Phone: "+4915112345"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		field  model.ScalarField
		value  string
		except int64
		want   bool
	}{
		{name: "username exact", field: model.FieldUsername, value: "bob", except: 1, want: true},
		{name: "username differs by case", field: model.FieldUsername, value: "Bob", except: 1, want: false},
		{name: "email ignores case", field: model.FieldEmail, value: "bob@example.COM", except: 1, want: true},
		{name: "phone ignores plus", field: model.FieldPhone, value: "4915112345", except: 1, want: true},
		{name: "own value", field: model.FieldUsername, value: "bob", except: otherID, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.IsValueTaken(ctx, tt.field, tt.value, tt.except)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = s.IsValueTaken(ctx, model.FieldGender, "Male", 1)
	assert.Error(t, err)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	english, err := s.ResolveReference(ctx, model.EntityLanguage, "english")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		require.NoError(t, tx.InsertLanguage(ctx, 1, english.ID, true))
		langs, err := tx.ListLanguages(ctx, 1)
		require.NoError(t, err)
		require.Len(t, langs, 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	langs, err := s.ListLanguages(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, langs)
}

func TestStore_WithinTxCommits(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	course, err := s.ResolveReference(ctx, model.EntityCourse, "data structures")
	require.NoError(t, err)
	gpa := 3.5

	err = s.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		return tx.InsertPreviousCourse(ctx, 1, course.ID, &gpa)
	})
	require.NoError(t, err)

	gpa = 1.0
	grades, err := s.ListPreviousCourses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "Data Structures", grades[0].Name)
	assert.Equal(t, 3.5, *grades[0].GPA)
}

func TestStore_Constraints(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(ctx context.Context, tx model.ProfileTx) error
	}{
		{
			name: "second primary language",
			run: func(ctx context.Context, tx model.ProfileTx) error {
				en, _ := tx.ResolveReference(ctx, model.EntityLanguage, "english")
				fr, _ := tx.ResolveReference(ctx, model.EntityLanguage, "french")
				if err := tx.InsertLanguage(ctx, 1, en.ID, true); err != nil {
					return err
				}
				return tx.InsertLanguage(ctx, 1, fr.ID, true)
			},
		},
		{
			name: "duplicate learning style",
			run: func(ctx context.Context, tx model.ProfileTx) error {
				v, _ := tx.ResolveReference(ctx, model.EntityLearningStyle, "visual")
				if err := tx.InsertLearningStyle(ctx, 1, v.ID); err != nil {
					return err
				}
				return tx.InsertLearningStyle(ctx, 1, v.ID)
			},
		},
		{
			name: "gpa out of range",
			run: func(ctx context.Context, tx model.ProfileTx) error {
				c, _ := tx.ResolveReference(ctx, model.EntityCourse, "calculus i")
				gpa := 4.5
				return tx.InsertPreviousCourse(ctx, 1, c.ID, &gpa)
			},
		},
		{
			name: "duplicate email",
			run: func(ctx context.Context, tx model.ProfileTx) error {
				return tx.UpdateScalars(ctx, 1, []model.ScalarValue{{Field: model.FieldEmail, Value: "EVE@example.com"}})
			},
		},
		{
			name: "unknown user",
			run: func(ctx context.Context, tx model.ProfileTx) error {
				return tx.InsertCurrentCourse(ctx, 999, 1)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := newSeededStore(t)
			_, err := s.AddProfile(model.Profile{Username: "eve", Email: "eve@example.com"})
			require.NoError(t, err)

			var inner error
			err = s.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
				inner = tt.run(ctx, tx)
				return inner
			})
			assert.ErrorIs(t, inner, ErrConstraint)
			assert.ErrorIs(t, err, ErrConstraint)
		})
	}
}

func TestStore_UpdateScalars(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	paris, err := s.ResolveReference(ctx, model.EntityCity, "paris")
	require.NoError(t, err)

	err = s.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		return tx.UpdateScalars(ctx, 1, []model.ScalarValue{
			{Field: model.FieldCity, Value: paris.ID},
			{Field: model.FieldName, Value: "Alice"},
			{Field: model.FieldMinutesPerDay, Value: 45},
		})
	})
	require.NoError(t, err)

	p, err := s.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	require.NotNil(t, p.MinutesPerDay)
	assert.Equal(t, 45, *p.MinutesPerDay)

	city, err := s.GetCity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Paris", city.Name)
	assert.Equal(t, "France", city.Country)
}

func TestStore_DeleteReportsMissingRows(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		removed, err := tx.DeleteCurrentCourse(ctx, 1, 12345)
		require.NoError(t, err)
		assert.False(t, removed)
		return nil
	})
	require.NoError(t, err)
}

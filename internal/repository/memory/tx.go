package memory

import (
	"context"
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

var _ model.ProfileTx = (*tx)(nil)

type tx struct {
	view
}

func (t *tx) UpdateScalars(_ context.Context, userID int64, values []model.ScalarValue) error {
	p, ok := t.st.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %d does not exist", ErrConstraint, userID)
	}

	for _, v := range values {
		switch v.Field {
		case model.FieldCity:
			id, ok := v.Value.(int64)
			if !ok {
				return fmt.Errorf("city value has type %T", v.Value)
			}
			if _, exists := t.st.refs[model.EntityCity][id]; !exists {
				return fmt.Errorf("%w: city %d does not exist", ErrConstraint, id)
			}
			p.CityID = &id
		case model.FieldMinutesPerDay:
			minutes, ok := v.Value.(int)
			if !ok {
				return fmt.Errorf("minutes per day value has type %T", v.Value)
			}
			p.MinutesPerDay = &minutes
		default:
			s, ok := v.Value.(string)
			if !ok {
				return fmt.Errorf("%s value has type %T", v.Field, v.Value)
			}
			if err := setString(&p, v.Field, s); err != nil {
				return err
			}
		}
	}

	for _, field := range []model.ScalarField{model.FieldUsername, model.FieldEmail, model.FieldPhone} {
		if value := profileValue(p, field); value != "" && t.st.taken(field, value, userID) {
			return fmt.Errorf("%w: duplicate %s %q", ErrConstraint, field, value)
		}
	}

	t.st.users[userID] = p
	return nil
}

func setString(p *model.Profile, field model.ScalarField, s string) error {
	switch field {
	case model.FieldName:
		p.Name = s
	case model.FieldUsername:
		p.Username = s
	case model.FieldDateOfBirth:
		p.DateOfBirth = s
	case model.FieldPassword:
		p.PasswordHash = s
	case model.FieldEmail:
		p.Email = s
	case model.FieldPhone:
		p.Phone = s
	case model.FieldGender:
		p.Gender = s
	case model.FieldPreferredTime:
		p.PreferredTime = s
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (t *tx) InsertLanguage(_ context.Context, userID, languageID int64, primary bool) error {
	if err := t.checkRefs(userID, model.EntityLanguage, languageID); err != nil {
		return err
	}
	langs := t.st.langs[userID]
	if _, ok := langs[languageID]; ok {
		return fmt.Errorf("%w: language %d already associated", ErrConstraint, languageID)
	}
	if primary && hasPrimary(langs) {
		return fmt.Errorf("%w: user %d already has a primary language", ErrConstraint, userID)
	}
	if langs == nil {
		langs = map[int64]bool{}
		t.st.langs[userID] = langs
	}
	langs[languageID] = primary
	return nil
}

func (t *tx) ClearPrimaryLanguage(_ context.Context, userID int64) error {
	for id := range t.st.langs[userID] {
		t.st.langs[userID][id] = false
	}
	return nil
}

// SetPrimaryLanguage mirrors an UPDATE: a missing row is not an error.
func (t *tx) SetPrimaryLanguage(_ context.Context, userID, languageID int64) error {
	langs := t.st.langs[userID]
	if _, ok := langs[languageID]; !ok {
		return nil
	}
	if hasPrimary(langs) && !langs[languageID] {
		return fmt.Errorf("%w: user %d already has a primary language", ErrConstraint, userID)
	}
	langs[languageID] = true
	return nil
}

func (t *tx) DeleteLanguage(_ context.Context, userID, languageID int64) (bool, error) {
	return deleteKey(t.st.langs[userID], languageID), nil
}

func (t *tx) InsertLearningStyle(_ context.Context, userID, styleID int64) error {
	if err := t.checkRefs(userID, model.EntityLearningStyle, styleID); err != nil {
		return err
	}
	return insertKey(t.st.styles, userID, styleID, struct{}{})
}

func (t *tx) DeleteLearningStyle(_ context.Context, userID, styleID int64) (bool, error) {
	return deleteKey(t.st.styles[userID], styleID), nil
}

func (t *tx) InsertCurrentCourse(_ context.Context, userID, courseID int64) error {
	if err := t.checkRefs(userID, model.EntityCourse, courseID); err != nil {
		return err
	}
	return insertKey(t.st.current, userID, courseID, struct{}{})
}

func (t *tx) DeleteCurrentCourse(_ context.Context, userID, courseID int64) (bool, error) {
	return deleteKey(t.st.current[userID], courseID), nil
}

func (t *tx) InsertPreviousCourse(_ context.Context, userID, courseID int64, gpa *float64) error {
	if err := t.checkRefs(userID, model.EntityCourse, courseID); err != nil {
		return err
	}
	if err := checkGPA(gpa); err != nil {
		return err
	}
	return insertKey(t.st.previous, userID, courseID, copyGPA(gpa))
}

// UpdatePreviousCourseGPA mirrors an UPDATE: a missing row is not an error.
func (t *tx) UpdatePreviousCourseGPA(_ context.Context, userID, courseID int64, gpa *float64) error {
	if err := checkGPA(gpa); err != nil {
		return err
	}
	if _, ok := t.st.previous[userID][courseID]; ok {
		t.st.previous[userID][courseID] = copyGPA(gpa)
	}
	return nil
}

func (t *tx) DeletePreviousCourse(_ context.Context, userID, courseID int64) (bool, error) {
	return deleteKey(t.st.previous[userID], courseID), nil
}

func (t *tx) checkRefs(userID int64, kind model.EntityKind, refID int64) error {
	if _, ok := t.st.users[userID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", ErrConstraint, userID)
	}
	if _, ok := t.st.refs[kind][refID]; !ok {
		return fmt.Errorf("%w: %s %d does not exist", ErrConstraint, kind, refID)
	}
	return nil
}

func insertKey[V any](m map[int64]map[int64]V, userID, id int64, v V) error {
	inner := m[userID]
	if _, ok := inner[id]; ok {
		return fmt.Errorf("%w: row (%d, %d) already exists", ErrConstraint, userID, id)
	}
	if inner == nil {
		inner = map[int64]V{}
		m[userID] = inner
	}
	inner[id] = v
	return nil
}

func deleteKey[V any](m map[int64]V, id int64) bool {
	if _, ok := m[id]; !ok {
		return false
	}
	delete(m, id)
	return true
}

func hasPrimary(langs map[int64]bool) bool {
	for _, primary := range langs {
		if primary {
			return true
		}
	}
	return false
}

func checkGPA(gpa *float64) error {
	if gpa != nil && (*gpa < 0 || *gpa > 4) {
		return fmt.Errorf("%w: gpa %v out of range", ErrConstraint, *gpa)
	}
	return nil
}

func copyGPA(gpa *float64) *float64 {
	if gpa == nil {
		return nil
	}
	v := *gpa
	return &v
}

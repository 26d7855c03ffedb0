package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/studyprofile-server/internal/model"
)

var scalarColumns = map[model.ScalarField]string{
	model.FieldCity:          "city_id",
	model.FieldName:          "name",
	model.FieldUsername:      "username",
	model.FieldDateOfBirth:   "date_of_birth",
	model.FieldPassword:      "password_hash",
	model.FieldEmail:         "email",
	model.FieldPhone:         "phone",
	model.FieldGender:        "gender",
	model.FieldPreferredTime: "preferred_time",
	model.FieldMinutesPerDay: "minutes_per_day",
}

// UpdateScalars writes every value in one UPDATE statement.
func (t *profileTx) UpdateScalars(ctx context.Context, userID int64, values []model.ScalarValue) error {
	if len(values) == 0 {
		return nil
	}

	sets := make([]string, 0, len(values))
	args := make([]any, 0, len(values)+1)
	for i, v := range values {
		column, ok := scalarColumns[v.Field]
		if !ok {
			return fmt.Errorf("unknown profile field %q", v.Field)
		}
		sets = append(sets, column+" = $"+strconv.Itoa(i+1))
		args = append(args, v.Value)
	}
	args = append(args, userID)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))

	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr("update profile", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("update profile", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (t *profileTx) InsertLanguage(ctx context.Context, userID, languageID int64, primary bool) error {
	query := `INSERT INTO user_languages (user_id, language_id, is_primary) VALUES ($1, $2, $3)`
	return t.exec(ctx, "insert language", query, userID, languageID, primary)
}

func (t *profileTx) ClearPrimaryLanguage(ctx context.Context, userID int64) error {
	query := `UPDATE user_languages SET is_primary = FALSE WHERE user_id = $1 AND is_primary`
	return t.exec(ctx, "clear primary language", query, userID)
}

func (t *profileTx) SetPrimaryLanguage(ctx context.Context, userID, languageID int64) error {
	query := `UPDATE user_languages SET is_primary = TRUE WHERE user_id = $1 AND language_id = $2`
	return t.exec(ctx, "set primary language", query, userID, languageID)
}

func (t *profileTx) DeleteLanguage(ctx context.Context, userID, languageID int64) (bool, error) {
	query := `DELETE FROM user_languages WHERE user_id = $1 AND language_id = $2`
	return t.delete(ctx, "delete language", query, userID, languageID)
}

func (t *profileTx) InsertLearningStyle(ctx context.Context, userID, styleID int64) error {
	query := `INSERT INTO user_learning_styles (user_id, learning_style_id) VALUES ($1, $2)`
	return t.exec(ctx, "insert learning style", query, userID, styleID)
}

func (t *profileTx) DeleteLearningStyle(ctx context.Context, userID, styleID int64) (bool, error) {
	query := `DELETE FROM user_learning_styles WHERE user_id = $1 AND learning_style_id = $2`
	return t.delete(ctx, "delete learning style", query, userID, styleID)
}

func (t *profileTx) InsertCurrentCourse(ctx context.Context, userID, courseID int64) error {
	query := `INSERT INTO user_current_courses (user_id, course_id) VALUES ($1, $2)`
	return t.exec(ctx, "insert current course", query, userID, courseID)
}

func (t *profileTx) DeleteCurrentCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	query := `DELETE FROM user_current_courses WHERE user_id = $1 AND course_id = $2`
	return t.delete(ctx, "delete current course", query, userID, courseID)
}

func (t *profileTx) InsertPreviousCourse(ctx context.Context, userID, courseID int64, gpa *float64) error {
	query := `INSERT INTO user_previous_courses (user_id, course_id, gpa) VALUES ($1, $2, $3)`
	return t.exec(ctx, "insert previous course", query, userID, courseID, gpa)
}

func (t *profileTx) UpdatePreviousCourseGPA(ctx context.Context, userID, courseID int64, gpa *float64) error {
	query := `UPDATE user_previous_courses SET gpa = $3 WHERE user_id = $1 AND course_id = $2`
	return t.exec(ctx, "update previous course", query, userID, courseID, gpa)
}

func (t *profileTx) DeletePreviousCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	query := `DELETE FROM user_previous_courses WHERE user_id = $1 AND course_id = $2`
	return t.delete(ctx, "delete previous course", query, userID, courseID)
}

func (t *profileTx) exec(ctx context.Context, op, query string, args ...any) error {
	if _, err := t.q.ExecContext(ctx, query, args...); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func (t *profileTx) delete(ctx context.Context, op, query string, args ...any) (bool, error) {
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr(op, err)
	}
	return n > 0, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dtroode/studyprofile-server/internal/model"
)

var referenceTables = map[model.EntityKind]string{
	model.EntityCity:          "cities",
	model.EntityLanguage:      "languages",
	model.EntityLearningStyle: "learning_styles",
	model.EntityCourse:        "courses",
}

func (r queries) ResolveReference(ctx context.Context, kind model.EntityKind, name string) (model.Reference, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return model.Reference{}, fmt.Errorf("unknown reference kind %q", kind)
	}

	query := `SELECT id, name FROM ` + table + ` WHERE LOWER(name) = $1`

	var ref model.Reference
	err := r.q.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(name))).Scan(&ref.ID, &ref.Name)
	if err != nil {
		return model.Reference{}, wrapErr("resolve "+string(kind), err)
	}

	return ref, nil
}

func (r queries) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	query := `SELECT id, name, COALESCE(username, ''), COALESCE(email, ''), COALESCE(phone, ''),
			  COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''), password_hash, gender, city_id,
			  preferred_time, minutes_per_day, streak
			  FROM users WHERE id = $1`

	var (
		p       model.Profile
		cityID  sql.NullInt64
		minutes sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.Name, &p.Username, &p.Email, &p.Phone,
		&p.DateOfBirth, &p.PasswordHash, &p.Gender, &cityID,
		&p.PreferredTime, &minutes, &p.Streak,
	)
	if err != nil {
		return model.Profile{}, wrapErr("get profile", err)
	}

	if cityID.Valid {
		id := cityID.Int64
		p.CityID = &id
	}
	if minutes.Valid {
		m := int(minutes.Int64)
		p.MinutesPerDay = &m
	}

	return p, nil
}

func (r queries) IsValueTaken(ctx context.Context, field model.ScalarField, value string, exceptUserID int64) (bool, error) {
	var cond string
	switch field {
	case model.FieldUsername:
		cond = `username = $1`
	case model.FieldEmail:
		cond = `LOWER(email) = LOWER($1)`
	case model.FieldPhone:
		cond = `REPLACE(phone, '+', '') = $1`
		value = strings.ReplaceAll(value, "+", "")
	default:
		return false, fmt.Errorf("field %q is not unique", field)
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE ` + cond + ` AND id <> $2)`

	var taken bool
	if err := r.q.QueryRowContext(ctx, query, value, exceptUserID).Scan(&taken); err != nil {
		return false, wrapErr("check "+string(field), err)
	}

	return taken, nil
}

func (r queries) GetCity(ctx context.Context, userID int64) (model.City, error) {
	query := `SELECT c.id, c.name, c.country FROM users u JOIN cities c ON c.id = u.city_id WHERE u.id = $1`

	var city model.City
	if err := r.q.QueryRowContext(ctx, query, userID).Scan(&city.ID, &city.Name, &city.Country); err != nil {
		return model.City{}, wrapErr("get city", err)
	}

	return city, nil
}

func (r queries) ListLanguages(ctx context.Context, userID int64) ([]model.LanguageLink, error) {
	query := `SELECT l.id, l.name, ul.is_primary FROM user_languages ul JOIN languages l ON l.id = ul.language_id WHERE ul.user_id = $1 ORDER BY l.name`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapErr("list languages", err)
	}
	defer rows.Close()

	var links []model.LanguageLink
	for rows.Next() {
		var l model.LanguageLink
		if err := rows.Scan(&l.ID, &l.Name, &l.Primary); err != nil {
			return nil, wrapErr("scan language", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list languages", err)
	}

	return links, nil
}

func (r queries) ListLearningStyles(ctx context.Context, userID int64) ([]model.Reference, error) {
	query := `SELECT s.id, s.name FROM user_learning_styles us JOIN learning_styles s ON s.id = us.learning_style_id WHERE us.user_id = $1 ORDER BY s.name`
	return r.listReferences(ctx, "list learning styles", query, userID)
}

func (r queries) ListCurrentCourses(ctx context.Context, userID int64) ([]model.Reference, error) {
	query := `SELECT c.id, c.name FROM user_current_courses uc JOIN courses c ON c.id = uc.course_id WHERE uc.user_id = $1 ORDER BY c.name`
	return r.listReferences(ctx, "list current courses", query, userID)
}

func (r queries) ListPreviousCourses(ctx context.Context, userID int64) ([]model.CourseGrade, error) {
	query := `SELECT c.id, c.name, up.gpa::float8 FROM user_previous_courses up JOIN courses c ON c.id = up.course_id WHERE up.user_id = $1 ORDER BY c.name`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapErr("list previous courses", err)
	}
	defer rows.Close()

	var grades []model.CourseGrade
	for rows.Next() {
		var (
			g   model.CourseGrade
			gpa sql.NullFloat64
		)
		if err := rows.Scan(&g.ID, &g.Name, &gpa); err != nil {
			return nil, wrapErr("scan previous course", err)
		}
		if gpa.Valid {
			v := gpa.Float64
			g.GPA = &v
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list previous courses", err)
	}

	return grades, nil
}

func (r queries) listReferences(ctx context.Context, op, query string, args ...any) ([]model.Reference, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var refs []model.Reference
	for rows.Next() {
		var ref model.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, wrapErr(op, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return refs, nil
}

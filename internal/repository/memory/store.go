// Package memory is an in-process profile store with the same constraints as
// the postgres schema. Transactions work on a copy of the state that replaces
// the live state on commit.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// ErrConstraint is returned for writes the postgres schema would reject.
var ErrConstraint = errors.New("constraint violation")

var _ model.ProfileStore = (*Store)(nil)

type refRow struct {
	name    string
	country string
}

type state struct {
	refs     map[model.EntityKind]map[int64]refRow
	users    map[int64]model.Profile
	langs    map[int64]map[int64]bool
	styles   map[int64]map[int64]struct{}
	current  map[int64]map[int64]struct{}
	previous map[int64]map[int64]*float64
	nextID   int64
}

func newState() *state {
	return &state{
		refs: map[model.EntityKind]map[int64]refRow{
			model.EntityCity:          {},
			model.EntityLanguage:      {},
			model.EntityLearningStyle: {},
			model.EntityCourse:        {},
		},
		users:    map[int64]model.Profile{},
		langs:    map[int64]map[int64]bool{},
		styles:   map[int64]map[int64]struct{}{},
		current:  map[int64]map[int64]struct{}{},
		previous: map[int64]map[int64]*float64{},
	}
}

// clone copies every map. Pointer values inside rows are never mutated in
// place, so sharing them is safe.
func (s *state) clone() *state {
	c := &state{
		refs:     make(map[model.EntityKind]map[int64]refRow, len(s.refs)),
		users:    make(map[int64]model.Profile, len(s.users)),
		langs:    cloneNested(s.langs),
		styles:   cloneNested(s.styles),
		current:  cloneNested(s.current),
		previous: cloneNested(s.previous),
		nextID:   s.nextID,
	}
	for kind, rows := range s.refs {
		c.refs[kind] = cloneMap(rows)
	}
	for id, p := range s.users {
		c.users[id] = p
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneNested[V any](m map[int64]map[int64]V) map[int64]map[int64]V {
	c := make(map[int64]map[int64]V, len(m))
	for k, inner := range m {
		c[k] = cloneMap(inner)
	}
	return c
}

// Store is a concurrency-safe in-memory model.ProfileStore.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// AddReference inserts a reference row and returns it.
func (s *Store) AddReference(kind model.EntityKind, name, country string) (model.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.state.refs[kind]
	if !ok {
		return model.Reference{}, fmt.Errorf("unknown reference kind %q", kind)
	}
	key := normalize(name)
	for _, r := range rows {
		if normalize(r.name) == key {
			return model.Reference{}, fmt.Errorf("%w: %s %q already exists", ErrConstraint, kind, name)
		}
	}

	s.state.nextID++
	rows[s.state.nextID] = refRow{name: name, country: country}
	return model.Reference{ID: s.state.nextID, Name: name}, nil
}

// AddProfile inserts a profile and returns its ID. p.ID is ignored.
func (s *Store) AddProfile(p model.Profile) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.nextID++
	p.ID = s.state.nextID
	for _, field := range []model.ScalarField{model.FieldUsername, model.FieldEmail, model.FieldPhone} {
		value := profileValue(p, field)
		if value != "" && s.state.taken(field, value, p.ID) {
			return 0, fmt.Errorf("%w: %s %q is taken", ErrConstraint, field, value)
		}
	}
	s.state.users[p.ID] = p
	return p.ID, nil
}

func (s *Store) ResolveReference(ctx context.Context, kind model.EntityKind, name string) (model.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.ResolveReference(ctx, kind, name)
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.GetProfile(ctx, userID)
}

func (s *Store) IsValueTaken(ctx context.Context, field model.ScalarField, value string, exceptUserID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.IsValueTaken(ctx, field, value, exceptUserID)
}

func (s *Store) GetCity(ctx context.Context, userID int64) (model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.GetCity(ctx, userID)
}

func (s *Store) ListLanguages(ctx context.Context, userID int64) ([]model.LanguageLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.ListLanguages(ctx, userID)
}

func (s *Store) ListLearningStyles(ctx context.Context, userID int64) ([]model.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.ListLearningStyles(ctx, userID)
}

func (s *Store) ListCurrentCourses(ctx context.Context, userID int64) ([]model.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.ListCurrentCourses(ctx, userID)
}

func (s *Store) ListPreviousCourses(ctx context.Context, userID int64) ([]model.CourseGrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s.state}.ListPreviousCourses(ctx, userID)
}

// WithinTx serialises writers. fn sees a private copy of the state, which
// becomes the live state only if fn returns nil. fn must use tx, not s.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx model.ProfileTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &tx{view{working}}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// view implements model.ProfileReader over a state.
type view struct {
	st *state
}

func (v view) ResolveReference(_ context.Context, kind model.EntityKind, name string) (model.Reference, error) {
	key := normalize(name)
	for id, r := range v.st.refs[kind] {
		if normalize(r.name) == key {
			return model.Reference{ID: id, Name: r.name}, nil
		}
	}
	return model.Reference{}, model.ErrNotFound
}

func (v view) GetProfile(_ context.Context, userID int64) (model.Profile, error) {
	p, ok := v.st.users[userID]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	return p, nil
}

func (v view) IsValueTaken(_ context.Context, field model.ScalarField, value string, exceptUserID int64) (bool, error) {
	switch field {
	case model.FieldUsername, model.FieldEmail, model.FieldPhone:
	default:
		return false, fmt.Errorf("field %q is not unique", field)
	}
	return v.st.taken(field, value, exceptUserID), nil
}

func (v view) GetCity(_ context.Context, userID int64) (model.City, error) {
	p, ok := v.st.users[userID]
	if !ok || p.CityID == nil {
		return model.City{}, model.ErrNotFound
	}
	r, ok := v.st.refs[model.EntityCity][*p.CityID]
	if !ok {
		return model.City{}, model.ErrNotFound
	}
	return model.City{Reference: model.Reference{ID: *p.CityID, Name: r.name}, Country: r.country}, nil
}

func (v view) ListLanguages(_ context.Context, userID int64) ([]model.LanguageLink, error) {
	links := make([]model.LanguageLink, 0, len(v.st.langs[userID]))
	for id, primary := range v.st.langs[userID] {
		links = append(links, model.LanguageLink{Reference: v.st.ref(model.EntityLanguage, id), Primary: primary})
	}
	slices.SortFunc(links, func(a, b model.LanguageLink) int { return cmp.Compare(a.Name, b.Name) })
	return links, nil
}

func (v view) ListLearningStyles(_ context.Context, userID int64) ([]model.Reference, error) {
	return v.st.refList(model.EntityLearningStyle, v.st.styles[userID]), nil
}

func (v view) ListCurrentCourses(_ context.Context, userID int64) ([]model.Reference, error) {
	return v.st.refList(model.EntityCourse, v.st.current[userID]), nil
}

func (v view) ListPreviousCourses(_ context.Context, userID int64) ([]model.CourseGrade, error) {
	grades := make([]model.CourseGrade, 0, len(v.st.previous[userID]))
	for id, gpa := range v.st.previous[userID] {
		grades = append(grades, model.CourseGrade{Reference: v.st.ref(model.EntityCourse, id), GPA: gpa})
	}
	slices.SortFunc(grades, func(a, b model.CourseGrade) int { return cmp.Compare(a.Name, b.Name) })
	return grades, nil
}

func (s *state) ref(kind model.EntityKind, id int64) model.Reference {
	return model.Reference{ID: id, Name: s.refs[kind][id].name}
}

func (s *state) refList(kind model.EntityKind, ids map[int64]struct{}) []model.Reference {
	refs := make([]model.Reference, 0, len(ids))
	for id := range ids {
		refs = append(refs, s.ref(kind, id))
	}
	slices.SortFunc(refs, func(a, b model.Reference) int { return cmp.Compare(a.Name, b.Name) })
	return refs
}

func (s *state) taken(field model.ScalarField, value string, exceptUserID int64) bool {
	for id, p := range s.users {
		if id == exceptUserID {
			continue
		}
		stored := profileValue(p, field)
		switch field {
		case model.FieldEmail:
			if strings.EqualFold(stored, value) {
				return true
			}
		case model.FieldPhone:
			if stored != "" && stripPlus(stored) == stripPlus(value) {
				return true
			}
		default:
			if stored == value {
				return true
			}
		}
	}
	return false
}

func profileValue(p model.Profile, field model.ScalarField) string {
	switch field {
	case model.FieldUsername:
		return p.Username
	case model.FieldEmail:
		return p.Email
	case model.FieldPhone:
		return p.Phone
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stripPlus(s string) string {
	return strings.ReplaceAll(s, "+", "")
}

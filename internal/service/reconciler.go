package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/studyprofile-server/internal/model"
)

const (
	minGPA = 0.0
	maxGPA = 4.0
	// gpaScale is the number of decimals the store keeps for a GPA.
	gpaScale = 2
)

// AssociationState is what a user holds before a change is reconciled.
type AssociationState struct {
	// Languages maps language ID to its primary flag.
	Languages map[int64]bool
	Styles    map[int64]struct{}
	Current   map[int64]struct{}
	// Previous maps course ID to the stored GPA.
	Previous map[int64]*float64
}

// ResolvedChange is the association part of a ChangeRequest with every
// name resolved. Unresolvable names are already dropped.
type ResolvedChange struct {
	PreviousCourses []ResolvedCourse
	CurrentCourses  []model.Reference
	LearningStyles  []model.Reference
	Languages       []model.Reference
	PrimaryLanguage *model.Reference
}

// ResolvedCourse is a previous course candidate.
type ResolvedCourse struct {
	Course model.Reference
	GPA    *float64
}

// PreviousCourseOp records a completed course.
// DropCurrent removes the current enrollment first; Update rewrites the GPA
// of an existing completion instead of inserting one.
type PreviousCourseOp struct {
	Course      model.Reference
	GPA         *float64
	DropCurrent bool
	Update      bool
}

// LanguageOp inserts a spoken language.
type LanguageOp struct {
	Language model.Reference
	Primary  bool
}

// PrimaryOp moves the primary flag to Language. Associated is true when the
// language is held or inserted earlier in the same plan.
type PrimaryOp struct {
	Language   model.Reference
	Associated bool
}

// Plan is the ordered list of association operations for one change.
type Plan struct {
	Previous  []PreviousCourseOp
	Current   []model.Reference
	Styles    []model.Reference
	Languages []LanguageOp
	Primary   *PrimaryOp
}

// Empty reports whether the plan schedules nothing.
func (p Plan) Empty() bool {
	return len(p.Previous) == 0 && len(p.Current) == 0 && len(p.Styles) == 0 &&
		len(p.Languages) == 0 && p.Primary == nil
}

// Reconcile diffs the resolved candidates against state.
// It never touches the store, so running it twice over the state produced by
// applying its first plan yields an empty plan.
func Reconcile(state AssociationState, change ResolvedChange) (Plan, []model.Warning) {
	var (
		plan     Plan
		warnings []model.Warning
	)

	current := copySet(state.Current)
	previous := make(map[int64]struct{}, len(state.Previous))
	for id := range state.Previous {
		previous[id] = struct{}{}
	}

	for _, c := range change.PreviousCourses {
		if c.GPA != nil && (*c.GPA < minGPA || *c.GPA > maxGPA) {
			warnings = append(warnings, model.Warning{
				Code:    model.WarningInvalidValue,
				Field:   "previous_courses",
				Value:   c.Course.Name,
				Message: fmt.Sprintf("GPA %s is outside the range 0.0 to 4.0", formatGPA(c.GPA)),
			})
			continue
		}
		c.GPA = roundGPA(c.GPA)

		if stored, ok := state.Previous[c.Course.ID]; ok {
			if _, planned := plannedPrevious(plan.Previous, c.Course.ID); planned || sameGPA(stored, c.GPA) {
				continue
			}
			plan.Previous = append(plan.Previous, PreviousCourseOp{Course: c.Course, GPA: c.GPA, Update: true})
			continue
		}
		if _, planned := plannedPrevious(plan.Previous, c.Course.ID); planned {
			continue
		}

		_, enrolled := current[c.Course.ID]
		delete(current, c.Course.ID)
		previous[c.Course.ID] = struct{}{}
		plan.Previous = append(plan.Previous, PreviousCourseOp{Course: c.Course, GPA: c.GPA, DropCurrent: enrolled})
	}

	for _, c := range change.CurrentCourses {
		if _, ok := current[c.ID]; ok {
			warnings = append(warnings, model.Warning{
				Code:    model.WarningAlreadyEnrolled,
				Field:   "current_courses",
				Value:   c.Name,
				Message: fmt.Sprintf("already enrolled in %q", c.Name),
			})
			continue
		}
		if _, ok := previous[c.ID]; ok {
			warnings = append(warnings, model.Warning{
				Code:    model.WarningAlreadyDone,
				Field:   "current_courses",
				Value:   c.Name,
				Message: fmt.Sprintf("%q is already a completed course", c.Name),
			})
			continue
		}
		current[c.ID] = struct{}{}
		plan.Current = append(plan.Current, c)
	}

	styles := copySet(state.Styles)
	for _, s := range change.LearningStyles {
		if _, ok := styles[s.ID]; ok {
			continue
		}
		styles[s.ID] = struct{}{}
		plan.Styles = append(plan.Styles, s)
	}

	languages := make(map[int64]struct{}, len(state.Languages))
	for id := range state.Languages {
		languages[id] = struct{}{}
	}
	needsPrimary := len(state.Languages) == 0 && change.PrimaryLanguage == nil
	for _, l := range change.Languages {
		if _, ok := languages[l.ID]; ok {
			continue
		}
		languages[l.ID] = struct{}{}
		plan.Languages = append(plan.Languages, LanguageOp{Language: l, Primary: needsPrimary})
		needsPrimary = false
	}

	if target := change.PrimaryLanguage; target != nil && !state.Languages[target.ID] {
		_, associated := languages[target.ID]
		plan.Primary = &PrimaryOp{Language: *target, Associated: associated}
	}

	return plan, warnings
}

// loadAssociationState reads every association of userID.
func loadAssociationState(ctx context.Context, reader model.ProfileReader, userID int64) (AssociationState, error) {
	state := AssociationState{
		Languages: make(map[int64]bool),
		Styles:    make(map[int64]struct{}),
		Current:   make(map[int64]struct{}),
		Previous:  make(map[int64]*float64),
	}

	languages, err := reader.ListLanguages(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("failed to list languages: %w", err)
	}
	for _, l := range languages {
		state.Languages[l.ID] = l.Primary
	}

	styles, err := reader.ListLearningStyles(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("failed to list learning styles: %w", err)
	}
	for _, s := range styles {
		state.Styles[s.ID] = struct{}{}
	}

	current, err := reader.ListCurrentCourses(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("failed to list current courses: %w", err)
	}
	for _, c := range current {
		state.Current[c.ID] = struct{}{}
	}

	previous, err := reader.ListPreviousCourses(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("failed to list previous courses: %w", err)
	}
	for _, c := range previous {
		state.Previous[c.ID] = c.GPA
	}

	return state, nil
}

// resolveChange resolves the association candidates of req.
func resolveChange(ctx context.Context, resolver *Resolver, req model.ChangeRequest) (ResolvedChange, []model.Warning, error) {
	var (
		change   ResolvedChange
		warnings []model.Warning
	)

	for _, c := range req.PreviousCourses {
		ref, ok, err := resolver.Resolve(ctx, model.EntityCourse, c.Course)
		if err != nil {
			return change, nil, err
		}
		if !ok {
			warnings = append(warnings, unresolvedWarning("previous_courses", model.EntityCourse, c.Course))
			continue
		}
		change.PreviousCourses = append(change.PreviousCourses, ResolvedCourse{Course: ref, GPA: c.GPA})
	}

	lists := []struct {
		field string
		kind  model.EntityKind
		names []string
		dst   *[]model.Reference
	}{
		{"current_courses", model.EntityCourse, req.CurrentCourses, &change.CurrentCourses},
		{"learning_styles", model.EntityLearningStyle, req.LearningStyles, &change.LearningStyles},
		{"languages", model.EntityLanguage, req.Languages, &change.Languages},
	}
	for _, l := range lists {
		for _, name := range l.names {
			ref, ok, err := resolver.Resolve(ctx, l.kind, name)
			if err != nil {
				return change, nil, err
			}
			if !ok {
				warnings = append(warnings, unresolvedWarning(l.field, l.kind, name))
				continue
			}
			*l.dst = append(*l.dst, ref)
		}
	}

	if req.PrimaryLanguage != nil {
		ref, ok, err := resolver.Resolve(ctx, model.EntityLanguage, *req.PrimaryLanguage)
		if err != nil {
			return change, nil, err
		}
		if ok {
			change.PrimaryLanguage = &ref
		} else {
			warnings = append(warnings, unresolvedWarning("primary_language", model.EntityLanguage, *req.PrimaryLanguage))
		}
	}

	return change, warnings, nil
}

func plannedPrevious(ops []PreviousCourseOp, courseID int64) (PreviousCourseOp, bool) {
	for _, op := range ops {
		if op.Course.ID == courseID {
			return op, true
		}
	}
	return PreviousCourseOp{}, false
}

// roundGPA rounds half away from zero to gpaScale decimals, working on the
// shortest decimal form of the value so 3.755 becomes 3.76 as it does in a
// NUMERIC(3, 2) column. gpa must already be within [minGPA, maxGPA].
func roundGPA(gpa *float64) *float64 {
	if gpa == nil {
		return nil
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(*gpa, 'f', -1, 64), ".")
	if len(frac) <= gpaScale {
		v := *gpa
		return &v
	}

	hundredths, err := strconv.ParseInt(whole+frac[:gpaScale], 10, 64)
	if err != nil {
		v := *gpa
		return &v
	}
	if frac[gpaScale] >= '5' {
		hundredths++
	}
	v := float64(hundredths) / 100
	return &v
}

func sameGPA(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copySet(src map[int64]struct{}) map[int64]struct{} {
	dst := make(map[int64]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

package service

import (
	"context"
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// Delete report categories.
const (
	categoryLanguage       = "Language"
	categoryLearningStyle  = "Learning style"
	categoryCurrentCourse  = "Current course"
	categoryPreviousCourse = "Previous course"
)

// Deleter removes associations named in a DeleteRequest.
type Deleter struct {
	resolver *Resolver
	tx       model.ProfileTx
}

// NewDeleter creates a Deleter working inside tx.
func NewDeleter(tx model.ProfileTx) *Deleter {
	return &Deleter{resolver: NewResolver(tx), tx: tx}
}

// Delete removes what req names and returns the removed entries.
// The primary language is never removed.
func (d *Deleter) Delete(ctx context.Context, userID int64, req model.DeleteRequest) ([]model.AuditEntry, []model.Warning, error) {
	var (
		removed  []model.AuditEntry
		warnings []model.Warning
	)

	if len(req.Languages) > 0 {
		held, err := d.tx.ListLanguages(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list languages: %w", err)
		}
		primary := make(map[int64]bool, len(held))
		for _, l := range held {
			primary[l.ID] = l.Primary
		}

		for _, name := range req.Languages {
			ref, ok, err := d.resolver.Resolve(ctx, model.EntityLanguage, name)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				warnings = append(warnings, unresolvedWarning("languages", model.EntityLanguage, name))
				continue
			}
			isPrimary, isHeld := primary[ref.ID]
			if !isHeld {
				warnings = append(warnings, notAssociatedWarning("languages", ref.Name))
				continue
			}
			if isPrimary {
				warnings = append(warnings, model.Warning{
					Code:    model.WarningPrimaryLanguage,
					Field:   "languages",
					Value:   ref.Name,
					Message: fmt.Sprintf("%q is the primary language and cannot be deleted", ref.Name),
				})
				continue
			}

			ok, err = d.tx.DeleteLanguage(ctx, userID, ref.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to delete language %d: %w", ref.ID, err)
			}
			if !ok {
				warnings = append(warnings, notAssociatedWarning("languages", ref.Name))
				continue
			}
			delete(primary, ref.ID)
			removed = append(removed, model.AuditEntry{Field: categoryLanguage, Value: ref.Name})
		}
	}

	groups := []struct {
		field    string
		category string
		kind     model.EntityKind
		names    []string
		remove   func(ctx context.Context, userID, id int64) (bool, error)
	}{
		{"learning_styles", categoryLearningStyle, model.EntityLearningStyle, req.LearningStyles, d.tx.DeleteLearningStyle},
		{"current_courses", categoryCurrentCourse, model.EntityCourse, req.CurrentCourses, d.tx.DeleteCurrentCourse},
		{"previous_courses", categoryPreviousCourse, model.EntityCourse, req.PreviousCourses, d.tx.DeletePreviousCourse},
	}
	for _, g := range groups {
		for _, name := range g.names {
			ref, ok, err := d.resolver.Resolve(ctx, g.kind, name)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				warnings = append(warnings, unresolvedWarning(g.field, g.kind, name))
				continue
			}

			ok, err = g.remove(ctx, userID, ref.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to delete %s %d: %w", g.field, ref.ID, err)
			}
			if !ok {
				warnings = append(warnings, notAssociatedWarning(g.field, ref.Name))
				continue
			}
			removed = append(removed, model.AuditEntry{Field: g.category, Value: ref.Name})
		}
	}

	return removed, warnings, nil
}

func notAssociatedWarning(field, name string) model.Warning {
	return model.Warning{
		Code:    model.WarningNotAssociated,
		Field:   field,
		Value:   name,
		Message: fmt.Sprintf("%q is not on the profile", name),
	}
}

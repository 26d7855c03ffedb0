package service

import (
	"context"
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// applyPlan writes accepted scalars and every planned association operation
// through tx. The caller owns the transaction; any error aborts all of it.
func applyPlan(ctx context.Context, tx model.ProfileWriter, userID int64, scalars []model.ScalarValue, plan Plan) error {
	if len(scalars) > 0 {
		if err := tx.UpdateScalars(ctx, userID, scalars); err != nil {
			return fmt.Errorf("failed to update profile fields: %w", err)
		}
	}

	for _, op := range plan.Previous {
		if op.DropCurrent {
			if _, err := tx.DeleteCurrentCourse(ctx, userID, op.Course.ID); err != nil {
				return fmt.Errorf("failed to drop current course %d: %w", op.Course.ID, err)
			}
		}
		if op.Update {
			if err := tx.UpdatePreviousCourseGPA(ctx, userID, op.Course.ID, op.GPA); err != nil {
				return fmt.Errorf("failed to update previous course %d: %w", op.Course.ID, err)
			}
			continue
		}
		if err := tx.InsertPreviousCourse(ctx, userID, op.Course.ID, op.GPA); err != nil {
			return fmt.Errorf("failed to insert previous course %d: %w", op.Course.ID, err)
		}
	}

	for _, c := range plan.Current {
		if err := tx.InsertCurrentCourse(ctx, userID, c.ID); err != nil {
			return fmt.Errorf("failed to insert current course %d: %w", c.ID, err)
		}
	}

	for _, s := range plan.Styles {
		if err := tx.InsertLearningStyle(ctx, userID, s.ID); err != nil {
			return fmt.Errorf("failed to insert learning style %d: %w", s.ID, err)
		}
	}

	for _, op := range plan.Languages {
		if err := tx.InsertLanguage(ctx, userID, op.Language.ID, op.Primary); err != nil {
			return fmt.Errorf("failed to insert language %d: %w", op.Language.ID, err)
		}
	}

	if p := plan.Primary; p != nil {
		if err := tx.ClearPrimaryLanguage(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear primary language: %w", err)
		}
		var err error
		if p.Associated {
			err = tx.SetPrimaryLanguage(ctx, userID, p.Language.ID)
		} else {
			err = tx.InsertLanguage(ctx, userID, p.Language.ID, true)
		}
		if err != nil {
			return fmt.Errorf("failed to set primary language %d: %w", p.Language.ID, err)
		}
	}

	return nil
}

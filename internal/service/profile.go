package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/model"
)

// ErrNoExtractor is returned by the *FromText operations when the service
// was built without an Extractor.
var ErrNoExtractor = errors.New("no extractor configured")

type Profile struct {
	store     model.ProfileStore
	extractor model.Extractor
	hash      PasswordHasher
	logger    *logger.Logger
}

// NewProfile creates the profile service. A nil hash falls back to bcrypt;
// a nil extractor disables the *FromText operations.
func NewProfile(
	store model.ProfileStore,
	extractor model.Extractor,
	hash PasswordHasher,
	logger *logger.Logger,
) *Profile {
	if hash == nil {
		hash = BcryptHasher
	}
	return &Profile{
		store:     store,
		extractor: extractor,
		hash:      hash,
		logger:    logger,
	}
}

// Change validates, reconciles and applies req in a single transaction.
func (s *Profile) Change(ctx context.Context, userID int64, req model.ChangeRequest) (model.ChangeReport, error) {
	s.logger.Debug("Profile service: applying change",
		"user_id", userID)

	report := model.ChangeReport{
		Applied:  []model.AuditEntry{},
		Warnings: []model.Warning{},
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		if err := ensureProfile(ctx, tx, userID); err != nil {
			return err
		}

		resolver := NewResolver(tx)
		scalars, warnings, err := NewValidator(resolver, tx, s.hash).Validate(ctx, userID, req)
		if err != nil {
			return err
		}

		change, resolveWarnings, err := resolveChange(ctx, resolver, req)
		if err != nil {
			return err
		}
		warnings = append(warnings, resolveWarnings...)

		state, err := loadAssociationState(ctx, tx, userID)
		if err != nil {
			return err
		}
		plan, planWarnings := Reconcile(state, change)
		warnings = append(warnings, planWarnings...)

		if err := applyPlan(ctx, tx, userID, scalars, plan); err != nil {
			return err
		}

		report.Applied = auditEntries(scalars, plan)
		report.Warnings = append(report.Warnings, warnings...)
		return nil
	})
	if err != nil {
		return model.ChangeReport{Failed: true}, s.fail("change", userID, err)
	}

	s.logWarnings("change", userID, report.Warnings)
	s.logger.Info("Profile service: change applied",
		"user_id", userID,
		"applied", len(report.Applied),
		"warnings", len(report.Warnings))

	return report, nil
}

// Read projects the attributes flagged in req.
func (s *Profile) Read(ctx context.Context, userID int64, req model.ReadRequest) (model.ReadReport, error) {
	s.logger.Debug("Profile service: reading profile",
		"user_id", userID)

	lines, err := NewProjector(s.store).Project(ctx, userID, req)
	if err != nil {
		return model.ReadReport{Failed: true}, s.fail("read", userID, err)
	}
	if lines == nil {
		lines = []model.ReportLine{}
	}

	return model.ReadReport{Lines: lines}, nil
}

// Delete removes the associations named in req in a single transaction.
func (s *Profile) Delete(ctx context.Context, userID int64, req model.DeleteRequest) (model.DeleteReport, error) {
	s.logger.Debug("Profile service: deleting associations",
		"user_id", userID)

	report := model.DeleteReport{
		Removed:  []model.AuditEntry{},
		Warnings: []model.Warning{},
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx model.ProfileTx) error {
		if err := ensureProfile(ctx, tx, userID); err != nil {
			return err
		}

		removed, warnings, err := NewDeleter(tx).Delete(ctx, userID, req)
		if err != nil {
			return err
		}
		report.Removed = append(report.Removed, removed...)
		report.Warnings = append(report.Warnings, warnings...)
		return nil
	})
	if err != nil {
		return model.DeleteReport{Failed: true}, s.fail("delete", userID, err)
	}

	s.logWarnings("delete", userID, report.Warnings)
	s.logger.Info("Profile service: associations deleted",
		"user_id", userID,
		"removed", len(report.Removed))

	return report, nil
}

// ChangeFromText extracts candidates from text and applies them.
func (s *Profile) ChangeFromText(ctx context.Context, userID int64, text string) (model.ChangeReport, error) {
	if s.extractor == nil {
		return model.ChangeReport{Failed: true}, s.fail("change", userID, ErrNoExtractor)
	}
	req, err := s.extractor.ExtractChange(ctx, text)
	if err != nil {
		return model.ChangeReport{Failed: true}, s.fail("change", userID, fmt.Errorf("failed to extract change: %w", err))
	}
	return s.Change(ctx, userID, req)
}

// ReadFromText extracts read flags from text and projects them.
func (s *Profile) ReadFromText(ctx context.Context, userID int64, text string) (model.ReadReport, error) {
	if s.extractor == nil {
		return model.ReadReport{Failed: true}, s.fail("read", userID, ErrNoExtractor)
	}
	req, err := s.extractor.ExtractRead(ctx, text)
	if err != nil {
		return model.ReadReport{Failed: true}, s.fail("read", userID, fmt.Errorf("failed to extract read: %w", err))
	}
	return s.Read(ctx, userID, req)
}

// DeleteFromText extracts deletions from text and applies them.
func (s *Profile) DeleteFromText(ctx context.Context, userID int64, text string) (model.DeleteReport, error) {
	if s.extractor == nil {
		return model.DeleteReport{Failed: true}, s.fail("delete", userID, ErrNoExtractor)
	}
	req, err := s.extractor.ExtractDelete(ctx, text)
	if err != nil {
		return model.DeleteReport{Failed: true}, s.fail("delete", userID, fmt.Errorf("failed to extract delete: %w", err))
	}
	return s.Delete(ctx, userID, req)
}

func (s *Profile) fail(op string, userID int64, err error) error {
	s.logger.Error("Profile service: operation aborted",
		"operation", op,
		"user_id", userID,
		"error", err.Error())
	return fmt.Errorf("%w: %w", model.ErrOperationFailed, err)
}

func (s *Profile) logWarnings(op string, userID int64, warnings []model.Warning) {
	for _, w := range warnings {
		s.logger.Debug("Profile service: candidate skipped",
			"operation", op,
			"user_id", userID,
			"field", w.Field,
			"code", w.Code)
	}
}

func ensureProfile(ctx context.Context, reader model.ProfileReader, userID int64) error {
	_, err := reader.GetProfile(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return nil
}

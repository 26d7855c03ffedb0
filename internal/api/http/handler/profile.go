package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/model"
)

const maxCandidateBytes = 64 << 10

// ProfileService extracts candidates from a request document and applies
// them to a user's profile.
type ProfileService interface {
	ChangeFromText(ctx context.Context, userID int64, text string) (model.ChangeReport, error)
	ReadFromText(ctx context.Context, userID int64, text string) (model.ReadReport, error)
	DeleteFromText(ctx context.Context, userID int64, text string) (model.DeleteReport, error)
}

// Profile serves the profile endpoints. Request bodies are candidate
// documents as produced by the chat layer.
type Profile struct {
	service        ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(
	service ProfileService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Change handles POST /api/v1/profile/changes.
func (h *Profile) Change(c *gin.Context) {
	userID, body, ok := h.prepare(c)
	if !ok {
		return
	}
	report, err := h.service.ChangeFromText(c.Request.Context(), userID, body)
	if err != nil {
		h.logger.Debug("Profile handler: change rejected",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err, report.String())
		return
	}

	c.JSON(http.StatusOK, ChangeResponse{
		Message:  report.String(),
		Applied:  report.Applied,
		Warnings: report.Warnings,
	})
}

// Read handles POST /api/v1/profile/reads.
func (h *Profile) Read(c *gin.Context) {
	userID, body, ok := h.prepare(c)
	if !ok {
		return
	}
	report, err := h.service.ReadFromText(c.Request.Context(), userID, body)
	if err != nil {
		h.logger.Debug("Profile handler: read rejected",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err, report.String())
		return
	}

	c.JSON(http.StatusOK, ReadResponse{
		Message: report.String(),
		Lines:   report.Lines,
	})
}

// Delete handles POST /api/v1/profile/deletions.
func (h *Profile) Delete(c *gin.Context) {
	userID, body, ok := h.prepare(c)
	if !ok {
		return
	}
	report, err := h.service.DeleteFromText(c.Request.Context(), userID, body)
	if err != nil {
		h.logger.Debug("Profile handler: delete rejected",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err, report.String())
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Message:  report.String(),
		Removed:  report.Removed,
		Warnings: report.Warnings,
	})
}

func (h *Profile) prepare(c *gin.Context) (int64, string, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "unauthenticated")
		return 0, "", false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCandidateBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, codeInvalidCandidate, "candidate document too large")
			return 0, "", false
		}
		respondError(c, http.StatusBadRequest, codeInvalidCandidate, "failed to read request body")
		return 0, "", false
	}

	return userID, string(body), true
}

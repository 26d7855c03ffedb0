package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/studyprofile-server/internal/extract"
	"github.com/dtroode/studyprofile-server/internal/model"
)

const (
	codeInvalidCandidate = "invalid_candidate"
	codeUserNotFound     = "user_not_found"
	codeUnauthorized     = "unauthorized"
	codeInternal         = "internal"
)

// handleError answers an aborted operation. message is the rendered
// failure report of the operation.
func handleError(c *gin.Context, err error, message string) {
	if errors.Is(err, extract.ErrInvalidCandidate) {
		respondError(c, http.StatusBadRequest, codeInvalidCandidate, "invalid candidate document")
		return
	}
	if errors.Is(err, model.ErrUserNotFound) {
		respondError(c, http.StatusNotFound, codeUserNotFound, "user not found")
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, FailureResponse{
		Message: message,
		Error:   APIError{Message: "internal server error", Code: codeInternal},
	})
}

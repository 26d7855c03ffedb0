package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ChangeResponse is returned by the changes endpoint.
type ChangeResponse struct {
	Message  string             `json:"message"`
	Applied  []model.AuditEntry `json:"applied"`
	Warnings []model.Warning    `json:"warnings"`
}

// ReadResponse is returned by the reads endpoint.
type ReadResponse struct {
	Message string             `json:"message"`
	Lines   []model.ReportLine `json:"lines"`
}

// DeleteResponse is returned by the deletions endpoint.
type DeleteResponse struct {
	Message  string             `json:"message"`
	Removed  []model.AuditEntry `json:"removed"`
	Warnings []model.Warning    `json:"warnings"`
}

// FailureResponse carries the rendered failure report next to the error.
type FailureResponse struct {
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

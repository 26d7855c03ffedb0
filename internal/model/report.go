package model

import (
	"fmt"
	"strings"
)

// UnknownMarker is rendered in place of a report when an operation was aborted.
const UnknownMarker = "##UNKNOWN##"

// WarningCode classifies a recoverable, per-field problem.
type WarningCode string

const (
	WarningInvalidValue    WarningCode = "invalid_value"
	WarningValueTaken      WarningCode = "value_taken"
	WarningUnresolved      WarningCode = "unresolved"
	WarningAlreadyEnrolled WarningCode = "already_enrolled"
	WarningAlreadyDone     WarningCode = "already_completed"
	WarningPrimaryLanguage WarningCode = "primary_language"
	WarningNotAssociated   WarningCode = "not_associated"
)

// Warning records a candidate that was skipped.
type Warning struct {
	Code    WarningCode `json:"code"`
	Field   string      `json:"field"`
	Value   string      `json:"value,omitempty"`
	Message string      `json:"message"`
}

// AuditEntry is a (field, applied value) pair.
type AuditEntry struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ChangeReport is the outcome of a Change operation.
type ChangeReport struct {
	Applied  []AuditEntry `json:"applied"`
	Warnings []Warning    `json:"warnings"`
	Failed   bool         `json:"failed"`
}

func (r ChangeReport) String() string {
	if r.Failed {
		return "Could not update data: " + UnknownMarker
	}
	if len(r.Applied) == 0 {
		return "Nothing was updated."
	}

	pairs := make([]string, 0, len(r.Applied))
	for _, e := range r.Applied {
		pairs = append(pairs, fmt.Sprintf("(%s, %s)", e.Field, e.Value))
	}
	return "Successfully updated the following data:\n" + strings.Join(pairs, ", ")
}

// ReportLine is one labeled value of a Read report.
type ReportLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReadReport is the outcome of a Read operation.
type ReadReport struct {
	Lines  []ReportLine `json:"lines"`
	Failed bool         `json:"failed"`
}

func (r ReadReport) String() string {
	if r.Failed {
		return "Could not read data: " + UnknownMarker
	}
	if len(r.Lines) == 0 {
		return "No matching data was found."
	}

	var b strings.Builder
	b.WriteString("Here is the data I was able to find:\n")
	for _, l := range r.Lines {
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// DeleteReport is the outcome of a Delete operation.
// Removed entries carry the association category in Field.
type DeleteReport struct {
	Removed  []AuditEntry `json:"removed"`
	Warnings []Warning    `json:"warnings"`
	Failed   bool         `json:"failed"`
}

func (r DeleteReport) String() string {
	if r.Failed {
		return "Could not delete data: " + UnknownMarker
	}
	if len(r.Removed) == 0 {
		return "Nothing was deleted."
	}

	parts := make([]string, 0, len(r.Removed))
	for _, e := range r.Removed {
		parts = append(parts, e.Field+": "+e.Value)
	}
	return "Successfully deleted the following information:\n" + strings.Join(parts, "; ")
}

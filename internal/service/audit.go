package service

import (
	"strconv"

	"github.com/dtroode/studyprofile-server/internal/model"
)

const (
	auditNewCourse          = "new course"
	auditNewLearningStyle   = "new learning style"
	auditNewLanguage        = "new language"
	auditNewPrimaryLanguage = "new primary language"

	unknownGPA = "n/a"
)

// auditEntries lists what an applied change did, in apply order:
// scalar fields, previous courses, current enrollments, learning styles, languages.
func auditEntries(scalars []model.ScalarValue, plan Plan) []model.AuditEntry {
	entries := make([]model.AuditEntry, 0, len(scalars)+len(plan.Previous)+len(plan.Current)+len(plan.Styles)+len(plan.Languages)+1)

	for _, s := range scalars {
		entries = append(entries, model.AuditEntry{Field: string(s.Field), Value: s.Display})
	}
	for _, op := range plan.Previous {
		entries = append(entries, model.AuditEntry{Field: op.Course.Name, Value: formatGPA(op.GPA)})
	}
	for _, c := range plan.Current {
		entries = append(entries, model.AuditEntry{Field: auditNewCourse, Value: c.Name})
	}
	for _, s := range plan.Styles {
		entries = append(entries, model.AuditEntry{Field: auditNewLearningStyle, Value: s.Name})
	}
	for _, op := range plan.Languages {
		entries = append(entries, model.AuditEntry{Field: auditNewLanguage, Value: op.Language.Name})
	}
	if plan.Primary != nil {
		entries = append(entries, model.AuditEntry{Field: auditNewPrimaryLanguage, Value: plan.Primary.Language.Name})
	}

	return entries
}

func formatGPA(gpa *float64) string {
	if gpa == nil {
		return unknownGPA
	}
	return strconv.FormatFloat(*gpa, 'f', -1, 64)
}

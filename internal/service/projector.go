package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// Read report labels.
const (
	labelCity            = "City"
	labelStreak          = "Streak"
	labelName            = "Name"
	labelUsername        = "Username"
	labelDateOfBirth     = "Date of birth"
	labelPassword        = "Password"
	labelEmail           = "Email"
	labelPhone           = "Phone"
	labelGender          = "Gender"
	labelPreferredTime   = "Preferred study time"
	labelMinutesPerDay   = "Minutes per day"
	labelPreviousCourses = "Previous courses"
	labelCurrentCourses  = "Current courses"
	labelLearningStyles  = "Learning styles"
	labelLanguages       = "Languages"
	labelPrimaryLanguage = "Primary language"
)

// Projector answers Read requests with a labeled report.
type Projector struct {
	reader model.ProfileReader
}

// NewProjector creates a Projector.
func NewProjector(reader model.ProfileReader) *Projector {
	return &Projector{reader: reader}
}

// Project returns one line per requested attribute that has a value.
func (p *Projector) Project(ctx context.Context, userID int64, req model.ReadRequest) ([]model.ReportLine, error) {
	profile, err := p.reader.GetProfile(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var lines []model.ReportLine
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, model.ReportLine{Label: label, Value: value})
		}
	}

	if req.City && profile.CityID != nil {
		city, err := p.reader.GetCity(ctx, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("failed to get city: %w", err)
		}
		if err == nil {
			add(labelCity, formatCity(city))
		}
	}
	if req.Streak {
		add(labelStreak, strconv.Itoa(profile.Streak))
	}
	if req.Name {
		add(labelName, profile.Name)
	}
	if req.Username {
		add(labelUsername, profile.Username)
	}
	if req.DateOfBirth {
		add(labelDateOfBirth, profile.DateOfBirth)
	}
	if req.Password && profile.PasswordHash != "" {
		add(labelPassword, passwordMask)
	}
	if req.Email {
		add(labelEmail, profile.Email)
	}
	if req.Phone {
		add(labelPhone, profile.Phone)
	}
	if req.Gender {
		add(labelGender, profile.Gender)
	}
	if req.PreferredTime {
		add(labelPreferredTime, profile.PreferredTime)
	}
	if req.MinutesPerDay && profile.MinutesPerDay != nil {
		add(labelMinutesPerDay, strconv.Itoa(*profile.MinutesPerDay))
	}

	if req.PreviousCourses {
		courses, err := p.reader.ListPreviousCourses(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list previous courses: %w", err)
		}
		slices.SortFunc(courses, func(a, b model.CourseGrade) int { return cmp.Compare(a.Name, b.Name) })
		parts := make([]string, 0, len(courses))
		for _, c := range courses {
			parts = append(parts, c.Name+": "+formatGPA(c.GPA))
		}
		add(labelPreviousCourses, strings.Join(parts, "; "))
	}
	if req.CurrentCourses {
		courses, err := p.reader.ListCurrentCourses(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list current courses: %w", err)
		}
		add(labelCurrentCourses, joinNames(courses))
	}
	if req.LearningStyles {
		styles, err := p.reader.ListLearningStyles(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list learning styles: %w", err)
		}
		add(labelLearningStyles, joinNames(styles))
	}
	if req.Languages || req.PrimaryLanguage {
		languages, err := p.reader.ListLanguages(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list languages: %w", err)
		}
		refs := make([]model.Reference, 0, len(languages))
		var primary string
		for _, l := range languages {
			refs = append(refs, l.Reference)
			if l.Primary {
				primary = l.Name
			}
		}
		if req.Languages {
			add(labelLanguages, joinNames(refs))
		}
		if req.PrimaryLanguage {
			add(labelPrimaryLanguage, primary)
		}
	}

	return lines, nil
}

func formatCity(c model.City) string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

func joinNames(refs []model.Reference) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

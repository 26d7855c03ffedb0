package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

const (
	minPasswordLength = 8
	passwordMask      = "********"
)

var (
	usernamePattern = regexp.MustCompile(`^\w+$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern    = regexp.MustCompile(`^[+\d]\d+$`)
	timePattern     = regexp.MustCompile(`^(\d{2})-(\d{2})$`)
)

// PasswordHasher turns an accepted password into the value stored for it.
type PasswordHasher func(password string) (string, error)

// BcryptHasher hashes passwords with bcrypt at the default cost.
func BcryptHasher(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Validator checks scalar candidates of a ChangeRequest.
// Rejected candidates become warnings; only store failures are returned as errors.
type Validator struct {
	resolver *Resolver
	reader   model.ProfileReader
	hash     PasswordHasher
}

// NewValidator creates a Validator. Uniqueness checks go through reader.
func NewValidator(resolver *Resolver, reader model.ProfileReader, hash PasswordHasher) *Validator {
	return &Validator{resolver: resolver, reader: reader, hash: hash}
}

// Validate returns the accepted scalar values in table definition order.
func (v *Validator) Validate(ctx context.Context, userID int64, req model.ChangeRequest) ([]model.ScalarValue, []model.Warning, error) {
	var (
		accepted []model.ScalarValue
		warnings []model.Warning
	)
	accept := func(field model.ScalarField, value any, display string) {
		accepted = append(accepted, model.ScalarValue{Field: field, Value: value, Display: display})
	}
	reject := func(code model.WarningCode, field model.ScalarField, value, msg string) {
		warnings = append(warnings, model.Warning{Code: code, Field: string(field), Value: value, Message: msg})
	}

	if req.City != nil {
		ref, ok, err := v.resolver.Resolve(ctx, model.EntityCity, *req.City)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			accept(model.FieldCity, ref.ID, ref.Name)
		} else {
			warnings = append(warnings, unresolvedWarning(string(model.FieldCity), model.EntityCity, *req.City))
		}
	}

	if req.Name != nil {
		if name, ok := checkName(*req.Name); ok {
			accept(model.FieldName, name, name)
		} else {
			reject(model.WarningInvalidValue, model.FieldName, *req.Name, "name must not be empty")
		}
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if !checkUsername(username) {
			reject(model.WarningInvalidValue, model.FieldUsername, *req.Username, "username must be a single word without spaces or punctuation")
		} else {
			ok, err := v.unique(ctx, userID, model.FieldUsername, username)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				accept(model.FieldUsername, username, username)
			} else {
				reject(model.WarningValueTaken, model.FieldUsername, username, "username is already taken")
			}
		}
	}

	if req.DateOfBirth != nil {
		if dob, ok := checkDate(*req.DateOfBirth); ok {
			accept(model.FieldDateOfBirth, dob, dob)
		} else {
			reject(model.WarningInvalidValue, model.FieldDateOfBirth, *req.DateOfBirth, "date of birth must be in YYYY-MM-DD format")
		}
	}

	if req.Password != nil {
		if checkPassword(*req.Password) {
			hash, err := v.hash(*req.Password)
			if err != nil {
				reject(model.WarningInvalidValue, model.FieldPassword, "", "password cannot be stored")
			} else {
				accept(model.FieldPassword, hash, passwordMask)
			}
		} else {
			reject(model.WarningInvalidValue, model.FieldPassword, "",
				fmt.Sprintf("password must be at least %d characters long and contain no quotes", minPasswordLength))
		}
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !emailPattern.MatchString(email) {
			reject(model.WarningInvalidValue, model.FieldEmail, *req.Email, "email address is malformed")
		} else {
			ok, err := v.unique(ctx, userID, model.FieldEmail, email)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				accept(model.FieldEmail, email, email)
			} else {
				reject(model.WarningValueTaken, model.FieldEmail, email, "email is already registered")
			}
		}
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !phonePattern.MatchString(phone) {
			reject(model.WarningInvalidValue, model.FieldPhone, *req.Phone, "phone number must contain only digits after an optional +")
		} else {
			ok, err := v.unique(ctx, userID, model.FieldPhone, NormalizePhone(phone))
			if err != nil {
				return nil, nil, err
			}
			if ok {
				accept(model.FieldPhone, phone, phone)
			} else {
				reject(model.WarningValueTaken, model.FieldPhone, phone, "phone number is already registered")
			}
		}
	}

	if req.Gender != nil {
		if gender, ok := model.Genders[normalizeName(*req.Gender)]; ok {
			accept(model.FieldGender, gender, gender)
		} else {
			reject(model.WarningInvalidValue, model.FieldGender, *req.Gender, "gender must be one of Male, Female, Non-Binary, Prefer Not To Say")
		}
	}

	if req.PreferredTime != nil {
		if pt, ok := checkPreferredTime(*req.PreferredTime); ok {
			accept(model.FieldPreferredTime, pt, pt)
		} else {
			reject(model.WarningInvalidValue, model.FieldPreferredTime, *req.PreferredTime, "preferred time must be in HH-MM format")
		}
	}

	if req.MinutesPerDay != nil {
		accept(model.FieldMinutesPerDay, *req.MinutesPerDay, strconv.Itoa(*req.MinutesPerDay))
	}

	return accepted, warnings, nil
}

func (v *Validator) unique(ctx context.Context, userID int64, field model.ScalarField, value string) (bool, error) {
	taken, err := v.reader.IsValueTaken(ctx, field, value, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return !taken, nil
}

// NormalizePhone strips the + signs phone numbers are compared without.
func NormalizePhone(phone string) string {
	return strings.ReplaceAll(phone, "+", "")
}

func checkName(s string) (string, bool) {
	name := strings.TrimSpace(s)
	return name, name != ""
}

func checkUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

func checkDate(s string) (string, bool) {
	d := strings.TrimSpace(s)
	if !datePattern.MatchString(d) {
		return "", false
	}
	if _, err := time.Parse(time.DateOnly, d); err != nil {
		return "", false
	}
	return d, true
}

func checkPassword(s string) bool {
	return len(s) >= minPasswordLength && !strings.ContainsAny(s, `'"`)
}

func checkPreferredTime(s string) (string, bool) {
	t := strings.TrimSpace(s)
	m := timePattern.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return "", false
	}
	return t, true
}

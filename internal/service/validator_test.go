package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		input string
		want  bool
	}{
		{name: "username word", check: checkUsername, input: "alice_01", want: true},
		{name: "username with space", check: checkUsername, input: "bad name", want: false},
		{name: "username with dash", check: checkUsername, input: "a-b", want: false},
		{name: "date", check: func(s string) bool { _, ok := checkDate(s); return ok }, input: "2001-02-03", want: true},
		{name: "date wrong order", check: func(s string) bool { _, ok := checkDate(s); return ok }, input: "03-02-2001", want: false},
		{name: "date impossible", check: func(s string) bool { _, ok := checkDate(s); return ok }, input: "2001-13-40", want: false},
		{name: "password ok", check: checkPassword, input: "correct horse", want: true},
		{name: "password short", check: checkPassword, input: "short", want: false},
		{name: "password single quote", check: checkPassword, input: "it's a secret", want: false},
		{name: "password double quote", check: checkPassword, input: `say "hello"`, want: false},
		{name: "email", check: emailPattern.MatchString, input: "jane.doe@uni-x.edu", want: true},
		{name: "email without domain dot", check: emailPattern.MatchString, input: "jane@localhost", want: false},
		{name: "phone with plus", check: phonePattern.MatchString, input: "+4915112345", want: true},
		{name: "phone digits", check: phonePattern.MatchString, input: "015112345", want: true},
		{name: "phone with dashes", check: phonePattern.MatchString, input: "0151-12345", want: false},
		{name: "time", check: func(s string) bool { _, ok := checkPreferredTime(s); return ok }, input: "18-30", want: true},
		{name: "time colon", check: func(s string) bool { _, ok := checkPreferredTime(s); return ok }, input: "18:30", want: false},
		{name: "time out of range", check: func(s string) bool { _, ok := checkPreferredTime(s); return ok }, input: "25-00", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.check(tt.input))
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	_, store := newTestService(t)
	_, err := store.AddProfile(model.Profile{Username: "taken", Email: "taken@example.com", Phone: "+4900000"})
	require.NoError(t, err)

	v := NewValidator(NewResolver(store), store, plainHasher)
	req := model.ChangeRequest{
		City:          strPtr(" paris "),
		Name:          strPtr("Alice"),
		Username:      strPtr("taken"),
		DateOfBirth:   strPtr("2000-01-31"),
		Password:      strPtr("longenough"),
		Email:         strPtr("TAKEN@example.com"),
		Phone:         strPtr("4900000"),
		Gender:        strPtr("NON-BINARY"),
		PreferredTime: strPtr("07-45"),
		MinutesPerDay: intPtr(30),
	}

	accepted, warnings, err := v.Validate(context.Background(), demoUserID, req)
	require.NoError(t, err)

	fields := make([]model.ScalarField, 0, len(accepted))
	for _, a := range accepted {
		fields = append(fields, a.Field)
	}
	assert.Equal(t, []model.ScalarField{
		model.FieldCity,
		model.FieldName,
		model.FieldDateOfBirth,
		model.FieldPassword,
		model.FieldGender,
		model.FieldPreferredTime,
		model.FieldMinutesPerDay,
	}, fields)

	assert.Equal(t, "Paris", accepted[0].Display)
	assert.Equal(t, "hashed:longenough", accepted[3].Value)
	assert.Equal(t, "********", accepted[3].Display)
	assert.Equal(t, "Non-Binary", accepted[4].Value)

	require.Len(t, warnings, 3)
	for _, w := range warnings {
		assert.Equal(t, model.WarningValueTaken, w.Code)
	}
}

func TestValidator_RejectionsAreWarnings(t *testing.T) {
	_, store := newTestService(t)
	v := NewValidator(NewResolver(store), store, plainHasher)

	accepted, warnings, err := v.Validate(context.Background(), demoUserID, model.ChangeRequest{
		City:     strPtr("Atlantis"),
		Name:     strPtr("   "),
		Password: strPtr("abc"),
		Gender:   strPtr("robot"),
	})
	require.NoError(t, err)
	assert.Empty(t, accepted)
	require.Len(t, warnings, 4)
	assert.Equal(t, model.WarningUnresolved, warnings[0].Code)
	assert.Equal(t, model.WarningInvalidValue, warnings[1].Code)
	assert.Empty(t, warnings[2].Value, "password must not be echoed")
}

func TestValidator_HashFailure(t *testing.T) {
	_, store := newTestService(t)
	failing := func(string) (string, error) { return "", errors.New("hash failed") }
	v := NewValidator(NewResolver(store), store, failing)

	accepted, warnings, err := v.Validate(context.Background(), demoUserID, model.ChangeRequest{Password: strPtr("longenough")})
	require.NoError(t, err)
	assert.Empty(t, accepted)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.FieldPassword, model.ScalarField(warnings[0].Field))
}

func TestBcryptHasher(t *testing.T) {
	hash, err := BcryptHasher("longenough")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("longenough")))
}

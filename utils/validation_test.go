package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerShape struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestBindingErrors_ReportsAllViolations(t *testing.T) {
	v := validator.New()
	err := v.Struct(registerShape{Email: "not-an-email", Password: "abc"})
	require.Error(t, err)

	errs := BindingErrors(err, map[string]string{
		"Name":     "Name is required",
		"Email":    "Please include a valid email",
		"Password": "Please enter a password with 6 or more characters",
	}, "Invalid request payload")

	require.Len(t, errs, 3)
	msgs := []string{errs[0].Msg, errs[1].Msg, errs[2].Msg}
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs, "Please include a valid email")
	assert.Contains(t, msgs, "Please enter a password with 6 or more characters")
}

func TestBindingErrors_NonFieldFailure(t *testing.T) {
	errs := BindingErrors(errors.New("unexpected EOF"), nil, "Invalid request payload")
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid request payload", errs[0].Msg)
}

package app

import (
	"errors"
	"fmt"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// ErrInvalidForm indicates sign-in or sign-up input that failed validation.
var ErrInvalidForm = errors.New("invalid form")

func wrapInvalid(err error, msg string) error {
	return fmt.Errorf("%w: %s", err, msg)
}

// ValidateSignIn requires both credentials to be present.
func ValidateSignIn(email, password string) error {
	if email == "" || password == "" {
		return wrapInvalid(ErrInvalidForm, "email and password are required")
	}
	return nil
}

// SignUpForm is the create-account form.
type SignUpForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

// Validate requires every field, matching passwords and a password of at
// least MinPasswordLength characters.
func (f SignUpForm) Validate() error {
	switch {
	case f.Email == "" || f.Password == "" || f.Name == "":
		return wrapInvalid(ErrInvalidForm, "email, password and name are required")
	case f.Password != f.ConfirmPassword:
		return wrapInvalid(ErrInvalidForm, "passwords do not match")
	case len([]rune(f.Password)) < MinPasswordLength:
		return wrapInvalid(ErrInvalidForm, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

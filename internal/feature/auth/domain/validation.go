package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8

	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

var validate = validator.New()

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Validator accumulates field errors. The zero value is ready to use.
type Validator struct {
	fields []FieldError
}

// Email checks that value is a syntactically valid email address.
func (v *Validator) Email(field, value string) {
	if err := validate.Var(value, "required,email"); err != nil {
		v.add(field, "must be a valid email address")
	}
}

// NotBlank checks that value contains at least one non-space character.
func (v *Validator) NotBlank(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "must not be empty")
	}
}

// Password checks the password length bounds.
func (v *Validator) Password(field, value string) {
	switch {
	case utf8.RuneCountInString(value) < MinPasswordLength:
		v.add(field, fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	case len(value) > MaxPasswordBytes:
		v.add(field, fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes))
	}
}

// Err returns a *ValidationError if any check failed, or nil.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func (v *Validator) add(field, msg string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: msg})
}

// ValidateSignup checks the signup input.
func ValidateSignup(email, password, firstName, lastName string) error {
	var v Validator
	v.Email("email", email)
	v.Password("password", password)
	v.NotBlank("firstName", firstName)
	v.NotBlank("lastName", lastName)
	return v.Err()
}

// ValidateLogin checks the login input.
func ValidateLogin(email, password string) error {
	var v Validator
	v.Email("email", email)
	if utf8.RuneCountInString(password) < MinPasswordLength {
		v.add("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	return v.Err()
}

// ValidateUserUpdate checks only the fields present in a partial update.
func ValidateUserUpdate(email, firstName, lastName *string) error {
	var v Validator
	if email != nil {
		v.Email("email", *email)
	}
	if firstName != nil {
		v.NotBlank("firstName", *firstName)
	}
	if lastName != nil {
		v.NotBlank("lastName", *lastName)
	}
	return v.Err()
}

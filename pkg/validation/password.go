package validation

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength applies to registration, reset, and change flows.
const MinPasswordLength = 8

// StrongPassword reports whether s meets the account password policy:
// at least MinPasswordLength characters with one uppercase letter, one
// lowercase letter, and one digit.
func StrongPassword(s string) bool {
	if len(s) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

func strongPasswordValidator(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

// RegisterCustomValidators attaches custom rules to gin's binding
// validator. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("strongpassword", strongPasswordValidator)
}

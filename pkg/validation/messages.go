package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomMessage returns field-specific validation messages. Fields not
// listed here fall back to DefaultMessage.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email must be a valid address",
		},
		"Phone": {
			"required": "phone number is required",
			"e164":     "phone number must be in international format",
		},
		"Password": {
			"required":       "password is required",
			"strongpassword": "password must be at least 8 characters with an uppercase letter, a lowercase letter, and a digit",
		},
		"NewPassword": {
			"required":       "new password is required",
			"strongpassword": "new password must be at least 8 characters with an uppercase letter, a lowercase letter, and a digit",
		},
		"FirstName": {
			"required": "first name is required",
		},
		"LastName": {
			"required": "last name is required",
		},
		"Token": {
			"required": "token is required",
		},
		"Code": {
			"required": "code is required",
		},
	}
	return customValidationMessages[field]
}

// DefaultMessage maps a validator tag to a generic message for field.
func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s is below the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "len":
		return fmt.Sprintf("%s has the wrong length", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "e164":
		return fmt.Sprintf("%s must be a phone number in international format", field)
	case "strongpassword":
		return fmt.Sprintf("%s does not meet the password policy", field)
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// MessagesFor flattens validator errors into per-field messages for
// the error response envelope.
func MessagesFor(err error) map[string]string {
	out := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}

	for _, fe := range verrs {
		if custom := CustomMessage(fe.Field()); custom != nil {
			if msg, ok := custom[fe.Tag()]; ok {
				out[strings.ToLower(fe.Field())] = msg
				continue
			}
		}
		out[strings.ToLower(fe.Field())] = DefaultMessage(fe.Field(), fe.Tag())
	}
	return out
}

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the JSON names clients send
var FieldLabels = map[string]string{
	// Job fields
	"Title":        "title",
	"Type":         "type",
	"Description":  "description",
	"Company":      "company",
	"ContactEmail": "company.contactEmail",
	"ContactPhone": "company.contactPhone",
	"Location":     "location",
	"Salary":       "salary",
	"PostedDate":   "postedDate",
	"Status":       "status",

	// User fields
	"Name":             "name",
	"Username":         "username",
	"Password":         "password",
	"PhoneNumber":      "phone_number",
	"Gender":           "gender",
	"DateOfBirth":      "date_of_birth",
	"MembershipStatus": "membership_status",
	"Address":          "address",
	"ProfilePicture":   "profile_picture",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins every validation failure into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := fieldLabel(e)
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or symbols", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// fieldLabel prefers the known JSON name; nested company fields keep their path.
func fieldLabel(e validator.FieldError) string {
	field := e.Field()
	if strings.Contains(e.StructNamespace(), ".Company.") && field == "Name" {
		return "company.name"
	}
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Email":              "Email",
	"Password":           "Password",
	"CurrentPassword":    "Current password",
	"NewPassword":        "New password",
	"FirstName":          "First name",
	"LastName":           "Last name",
	"Phone":              "Phone number",
	"DateOfBirth":        "Date of birth",
	"PortfolioURL":       "Portfolio URL",
	"LinkedInURL":        "LinkedIn URL",
	"PreferredJobType":   "Preferred job type",
	"PreferredLocations": "Preferred locations",
	"Experience":         "Experience",
	"Name":               "Name",
	"Title":              "Title",
	"Description":        "Description",
	"Type":               "Job type",
	"Min":                "Minimum salary",
	"Max":                "Maximum salary",
	"Currency":           "Currency",
	"CoverLetter":        "Cover letter",
	"Status":             "Status",
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

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be 7-15 digits, optionally starting with +", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "linkedin_url":
		return fmt.Sprintf("%s must be a linkedin.com URL", label)
	case "job_type":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(JobTypes, ", "))
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, getFieldLabel(param))
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", label, getFieldLabel(param))
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

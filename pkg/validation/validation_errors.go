package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"FirstName":   "First name",
	"LastName":    "Last name",
	"CompanyName": "Company name",
	"About":       "About",
	"City":        "City",
	"ReceiverID":  "Receiver",
	"VacancyID":   "Vacancy",
	"ResumeID":    "Resume",
	"Message":     "Message",
	"Type":        "Invitation type",
	"Body":        "Message body",
}

// FormatValidationErrors turns validator errors into a single
// human-readable message suitable for an API response.
func FormatValidationErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var parts []string
	for _, fe := range verrs {
		label := FieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", label))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", label, fe.Param()))
		case "uuid":
			parts = append(parts, fmt.Sprintf("%s must be a valid identifier", label))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", label, fe.Param()))
		case "valid_name":
			parts = append(parts, fmt.Sprintf("%s contains invalid characters", label))
		case "no_emoji":
			parts = append(parts, fmt.Sprintf("%s must not contain emoji", label))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(parts, "; ")
}

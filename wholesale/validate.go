package wholesale

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	// Permissive phone shape: at least seven characters drawn from digits,
	// plus, dash, parentheses and spaces.
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]{7,}$`)
)

// Validate checks a registration application against the active field set.
// It is a pure function: no I/O, no state. The returned map is keyed by
// field name and empty exactly when the values may be submitted.
func Validate(values RegistrationValues, fields FieldSet) map[string]string {
	fieldErrors := map[string]string{}

	for _, field := range fields {
		if !field.Required || field.Name == FIELD_ACCEPT_MARKETING {
			continue
		}
		if strings.TrimSpace(values.fieldValue(field.Name)) == "" {
			fieldErrors[field.Name] = fmt.Sprintf("%s is required", field.Label)
		}
	}

	if _, seen := fieldErrors[FIELD_COUNTRY_CODE]; !seen && values.CountryCode != "" {
		if !countryCodePattern.MatchString(values.CountryCode) || !IsAllowedCountryCode(values.CountryCode) {
			fieldErrors[FIELD_COUNTRY_CODE] = "Country must be a valid two-letter country code"
		}
	}

	if _, seen := fieldErrors[FIELD_PHONE]; !seen && values.Phone != "" {
		if !phonePattern.MatchString(values.Phone) {
			fieldErrors[FIELD_PHONE] = "Phone must be a valid phone number"
		}
	}

	if values.CellPhone != "" && !phonePattern.MatchString(values.CellPhone) {
		fieldErrors[FIELD_CELL_PHONE] = "Cell phone must be a valid phone number"
	}

	return fieldErrors
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldRule represents a validation rule for a field
type FieldRule struct {
	Name        string
	Description string
	Validator   func(value interface{}) error
}

// Common field validation rules
var (
	RequiredRule = FieldRule{
		Name:        "required",
		Description: "Field is required and cannot be empty",
		Validator: func(value interface{}) error {
			if value == nil {
				return fmt.Errorf("field is required")
			}
			if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
				return fmt.Errorf("field is required")
			}
			return nil
		},
	}

	EmailRule = FieldRule{
		Name:        "email",
		Description: "Field must be a valid email address",
		Validator: func(value interface{}) error {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("email must be a string")
			}
			emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
			if !emailRegex.MatchString(str) {
				return fmt.Errorf("invalid email format")
			}
			return nil
		},
	}

	PhoneRule = FieldRule{
		Name:        "phone",
		Description: "Field must be a valid phone number",
		Validator: func(value interface{}) error {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("phone must be a string")
			}
			phoneRegex := regexp.MustCompile(`^\+?[0-9][0-9 -]{6,14}$`)
			if !phoneRegex.MatchString(str) {
				return fmt.Errorf("invalid phone format")
			}
			return nil
		},
	}
)

// CreateMaxLengthRule creates a rule for maximum string length
func CreateMaxLengthRule(maxLength int) FieldRule {
	return FieldRule{
		Name:        fmt.Sprintf("maxLength_%d", maxLength),
		Description: fmt.Sprintf("Field must be at most %d characters long", maxLength),
		Validator: func(value interface{}) error {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("value must be a string")
			}
			if len(str) > maxLength {
				return fmt.Errorf("must be at most %d characters long", maxLength)
			}
			return nil
		},
	}
}

// CreateEnumRule creates a rule for enum validation
func CreateEnumRule(allowedValues []string) FieldRule {
	return FieldRule{
		Name:        fmt.Sprintf("enum_%s", strings.Join(allowedValues, "_")),
		Description: fmt.Sprintf("Field must be one of: %s", strings.Join(allowedValues, ", ")),
		Validator: func(value interface{}) error {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("value must be a string")
			}

			for _, allowed := range allowedValues {
				if str == allowed {
					return nil
				}
			}

			return fmt.Errorf("must be one of: %s", strings.Join(allowedValues, ", "))
		},
	}
}

// ValidateField applies a set of rules to a single named field
func ValidateField(fieldName string, value interface{}, rules ...FieldRule) error {
	for _, rule := range rules {
		if err := rule.Validator(value); err != nil {
			return fmt.Errorf("%s: %v", fieldName, err)
		}
	}
	return nil
}

// ValidateRequired checks that every field in the map has a non-empty value
func ValidateRequired(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Lesson category validation
	validate.RegisterValidation("lesson_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		return category == "dj" || category == "production"
	})

	// Pricing tier validation: must be one of the catalog hour counts
	validate.RegisterValidation("tier_hours", func(fl validator.FieldLevel) bool {
		switch fl.Field().Int() {
		case 1, 2, 5, 10:
			return true
		}
		return false
	})

	// Day of week: 0=Sunday .. 6=Saturday
	validate.RegisterValidation("day_of_week", func(fl validator.FieldLevel) bool {
		d := fl.Field().Int()
		return d >= 0 && d <= 6
	})

	// Time of day in HH:MM, 24-hour
	validate.RegisterValidation("time_of_day", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 5 || s[2] != ':' {
			return false
		}
		hh := int(s[0]-'0')*10 + int(s[1]-'0')
		mm := int(s[3]-'0')*10 + int(s[4]-'0')
		for _, c := range []byte{s[0], s[1], s[3], s[4]} {
			if c < '0' || c > '9' {
				return false
			}
		}
		return hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "lesson_category":
			errors[field] = "Invalid lesson category. Must be: dj or production"
		case "tier_hours":
			errors[field] = "Invalid tier. Must be: 1, 2, 5 or 10 hours"
		case "day_of_week":
			errors[field] = "Invalid day of week. Must be 0 (Sunday) to 6 (Saturday)"
		case "time_of_day":
			errors[field] = "Invalid time. Must be HH:MM in 24-hour format"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

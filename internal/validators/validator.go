// Package validators holds the process-wide request validator: struct
// validation via go-playground/validator plus sanitizing of string fields.
package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type Validator struct {
	Validate *validator.Validate
	policy   *bluemonday.Policy
}

var instance *Validator
var once sync.Once

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

func GetValidator() *Validator {
	once.Do(func() {
		instance = &Validator{
			Validate: validator.New(validator.WithRequiredStructEnabled()),
			policy:   bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func registerCustomValidators(v *validator.Validate) {
	err := v.RegisterValidation("username_validation", usernameValidation)
	if err != nil {
		return
	}
}

func usernameValidation(fl validator.FieldLevel) bool {
	// The pattern allows a-z, A-Z, 0-9, ., -, and _
	return usernamePattern.MatchString(fl.Field().String())
}

// SanitizeData strips markup from every string field of the given struct
// pointer and trims surrounding whitespace, so that validation runs on the
// value that will actually be stored. Fields tagged `sanitize:"-"` are left
// untouched; password fields carry the tag so the secret reaching the hasher
// is exactly what the client sent.
func (v *Validator) SanitizeData(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected pointer to struct, got %T", obj)
	}

	elem := value.Elem()
	for i := 0; i < elem.NumField(); i++ {
		if elem.Type().Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		field := elem.Field(i)
		if field.Kind() == reflect.String && field.CanSet() {
			sanitized := v.policy.Sanitize(field.String())
			field.SetString(strings.TrimSpace(sanitized))
		}
	}

	return nil
}

// ValidationMessage turns validator errors into a client-facing message that
// names the offending fields and rules, e.g. "password must have a minimum
// length of 4".
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "The request body is invalid."
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must have a minimum length of %s", field, fieldError.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must have a maximum length of %s", field, fieldError.Param()))
		case "username_validation":
			messages = append(messages, fmt.Sprintf("%s may only contain letters, digits, '.', '-' and '_'", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	return strings.Join(messages, "; ")
}

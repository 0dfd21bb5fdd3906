package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"monkid.com/backoffice/pkg/apperror"
)

const nonFieldErrors = "non_field_errors"

var registerOnce sync.Once

// RegisterJSONTagNames makes validation errors report JSON field names
// instead of Go struct field names.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// FromBindError converts a gin binding error into an *apperror.ValidationError.
func FromBindError(err error) error {
	if err == nil {
		return nil
	}
	return &apperror.ValidationError{Fields: FieldErrors(err)}
}

// FieldErrors flattens binding errors into a field -> messages map.
func FieldErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fields[fe.Field()] = append(fields[fe.Field()], getFieldErrorMessage(fe))
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = append(fields[typeErr.Field], fmt.Sprintf("expected a value of type %s", typeErr.Type.String()))
		return fields
	}

	fields[nonFieldErrors] = []string{"malformed request body"}
	return fields
}

func getFieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("date has wrong format, use %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("ensure this list has at least %s items", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	default:
		return "invalid value"
	}
}

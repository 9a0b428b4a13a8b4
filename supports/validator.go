package supports

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type (
	XValidator struct{}

	// ValidationError lists failed fields keyed by their JSON name.
	ValidationError struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
)

var validate *validator.Validate

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s (fields: %s)", e.Message, strings.Join(fields, ", "))
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(getJSONFieldName)

	if err := validate.RegisterValidation("confirmation", fieldConfirmation); err != nil {
		log.Panic(err)
	}
	if err := validate.RegisterValidation("slug", fieldSlug); err != nil {
		log.Panic(err)
	}
}

func fieldConfirmation(fl validator.FieldLevel) bool {
	parent := fl.Top()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	return fl.Field().String() == parent.FieldByName(fl.Param()).String()
}

func fieldSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

func getJSONFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}

	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}

	return name
}

// RegisterStructValidation adds a struct-level rule for the given types.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
}

func (v XValidator) Validate(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	result := &ValidationError{Errors: make(map[string]string, len(errs))}
	for index, fe := range errs {
		name := fe.Field()
		result.Errors[name] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", name, fe.Tag())
		if index == 0 {
			result.Message = result.Errors[name]
		}
	}

	return result
}

// Validate checks data against its `validate` struct tags.
func Validate(data any) error {
	return XValidator{}.Validate(data)
}

package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saturnines/reservation-exerciser/pkg/errors"
)

// TagValidator checks the `validate` struct tags on Config.
// Field names are reported with their yaml keys.
type TagValidator struct {
	validate *validator.Validate
}

// NewTagValidator creates a TagValidator
func NewTagValidator() *TagValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &TagValidator{validate: v}
}

// Validate runs the tag rules
func (v *TagValidator) Validate(cfg *Config) []ValidationError {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fieldPath(fe.Namespace()), Message: describe(fe)})
	}
	return out
}

// fieldPath drops the leading struct name: Config.log.level -> log.level
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

package util

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidateStruct runs the validate tags on a request DTO and collapses
// failures into a field->message map suitable for a FormError.
func ValidateStruct(s any) map[string]string {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[strings.ToLower(fe.Field())] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "this field is required"
	case "min":
		return "value is below the minimum of " + fe.Param()
	case "max":
		return "value exceeds the maximum of " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid4":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	default:
		return "failed validation rule: " + fe.Tag()
	}
}

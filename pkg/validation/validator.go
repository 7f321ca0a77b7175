package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Scene limits
	MaxNodes       = 10000
	MaxSlots       = 32
	MaxNameLength  = 64
	MaxSlotNameLen = 32

	colorPattern    = regexp.MustCompile(`^#?[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
	slotNamePattern = regexp.MustCompile(`^[^\x00-\x1f]*$`)
)

func init() {
	validate = validator.New()

	// Report fields by their yaml name so messages match what the user wrote.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("slotname", func(fl validator.FieldLevel) bool {
		return slotNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Struct validates v against its struct tags and returns every violation,
// joined, in a user-friendly form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateColor checks a #RRGGBB or #RRGGBBAA string.
func ValidateColor(s string) error {
	if !colorPattern.MatchString(s) {
		return fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	return nil
}

// ValidateSlotNames checks the slot list of one node column.
func ValidateSlotNames(column string, names []string) error {
	if len(names) > MaxSlots {
		return fmt.Errorf("%s: maximum %d slots allowed, got %d", column, MaxSlots, len(names))
	}
	for i, name := range names {
		if len(name) > MaxSlotNameLen {
			return fmt.Errorf("%s: slot %d exceeds maximum length of %d characters", column, i, MaxSlotNameLen)
		}
		if !slotNamePattern.MatchString(name) {
			return fmt.Errorf("%s: slot %d contains control characters", column, i)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), rootName(e))
		param := e.Param()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: field is required", field))
		case "min", "gte":
			errs = append(errs, fmt.Errorf("%s: must be at least %s", field, param))
		case "max", "lte":
			errs = append(errs, fmt.Errorf("%s: must not exceed %s", field, param))
		case "gt":
			errs = append(errs, fmt.Errorf("%s: must be greater than %s", field, param))
		case "color":
			errs = append(errs, fmt.Errorf("%s: %q is not a #RRGGBB[AA] color", field, e.Value()))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: must be one of [%s]", field, param))
		default:
			errs = append(errs, fmt.Errorf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}

// rootName is the "Type." prefix the validator puts in front of namespaces.
func rootName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

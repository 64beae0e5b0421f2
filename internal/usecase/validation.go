package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so field errors line up with the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct-tag validation and converts failures into a
// *ValidationError.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}
	return formatValidationErrors(verrs)
}

func formatValidationErrors(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}
	for _, fe := range errs {
		var message string
		switch fe.Tag() {
		case "required":
			message = "is required"
		case "email":
			message = "must be a valid email address"
		case "min":
			message = fmt.Sprintf("must have a length of at least %s", fe.Param())
		case "gte":
			message = fmt.Sprintf("must be at least %s", fe.Param())
		case "lte":
			message = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			message = fmt.Sprintf("must be one of [%s]", fe.Param())
		default:
			message = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		out.Add(fieldPath(fe.Namespace()), message)
	}
	return out
}

// fieldPath drops the root struct name: "CreateInvoiceInput.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// parseDate reads a calendar date; an empty string yields fallback.
func parseDate(field, value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}, entity.NewValidationError(field, "must be a date (YYYY-MM-DD)")
		}
	}
	return t, nil
}

// isAll treats "" and "all" as "no filter".
func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

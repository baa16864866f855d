package billing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLineItem is wrapped by every LineItemError.
var ErrInvalidLineItem = errors.New("invalid line item")

// LineItemError describes the first rule a line item broke.
type LineItemError struct {
	Line  int
	Field string
	Rule  string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("line %d: %s fails %q", e.Line, e.Field, e.Rule)
}

func (e *LineItemError) Unwrap() error {
	return ErrInvalidLineItem
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return isFinite(fl.Field().Float())
	})
	return v
}

// ValidateLineItems rejects line items that ComputeLines would have to
// sanitize. Used on write paths; rendering never calls it.
func ValidateLineItems(items []LineItem) error {
	for i := range items {
		err := validate.Struct(&items[i])
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &LineItemError{Line: i, Field: verrs[0].Field(), Rule: verrs[0].Tag()}
		}
		return fmt.Errorf("validating line %d: %w", i, err)
	}
	return nil
}

package common

import (
	"fmt"
	"strings"
	"time"
)

// FieldError is one rejected input field.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Check inspects a value and returns why it is rejected, or "" when it passes.
type Check func(value any) string

// Validator collects field errors across several inputs.
type Validator struct {
	errs []FieldError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field runs checks in order and records the first failure only.
func (v *Validator) Field(name string, value any, checks ...Check) *Validator {
	for _, check := range checks {
		if reason := check(value); reason != "" {
			shown := value
			if b, ok := value.([]byte); ok {
				shown = fmt.Sprintf("<%d bytes>", len(b))
			}
			v.errs = append(v.errs, FieldError{Field: name, Value: shown, Reason: reason})
			return v
		}
	}
	return v
}

func (v *Validator) Errors() []FieldError {
	return v.errs
}

// Error returns nil when every field passed, otherwise one error wrapping ErrInvalidInput.
func (v *Validator) Error() error {
	if len(v.errs) == 0 {
		return nil
	}
	msgs := make([]string, len(v.errs))
	for i, e := range v.errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// Required rejects nil, blank strings and empty byte slices.
func Required(value any) string {
	switch v := value.(type) {
	case nil:
		return "is required"
	case string:
		if strings.TrimSpace(v) == "" {
			return "is required"
		}
	case []byte:
		if len(v) == 0 {
			return "is required"
		}
	}
	return ""
}

// DateLabel requires a YYYY-MM-DD calendar date.
func DateLabel(value any) string {
	s, ok := value.(string)
	if !ok {
		return "must be a string"
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "must be a YYYY-MM-DD date"
	}
	return ""
}

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSupported is returned by operations that are permanently disabled.
// It must not be confused with a lookup that found nothing.
var ErrNotSupported = errors.New("login by access token not supported")

// FieldError describes a single failed field rule.
type FieldError struct {
	Field string // column name
	Rule  string // "required" or "max"
	Param string // rule parameter, e.g. the max length
}

func (f FieldError) String() string {
	label := Labels[f.Field]
	if label == "" {
		label = f.Field
	}
	switch f.Rule {
	case "required":
		return fmt.Sprintf("%s cannot be blank", label)
	case "max":
		return fmt.Sprintf("%s should contain at most %s characters", label, f.Param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, f.Rule)
	}
}

// ValidationError is returned by User.Validate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether the given column failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

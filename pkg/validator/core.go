package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Failure is the first failed rule of a field.
type Failure struct {
	Field   string
	Rule    string
	Key     string
	Args    []string
	Message string
}

// Replacements returns the placeholder values used to render the message:
// "field", "args" (all arguments joined by ", ") and "0".."n".
func (f Failure) Replacements() map[string]string {
	return replacements(f.Field, f.Args)
}

// ValidationErrors is the ordered list of field failures. It implements error.
type ValidationErrors []Failure

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, f := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve ValidationErrors) Has(field string) bool {
	for _, f := range ve {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Get returns the message recorded for field, or "".
func (ve ValidationErrors) Get(field string) string {
	for _, f := range ve {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, f := range ve {
		fields = append(fields, f.Field)
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Map returns field -> message.
func (ve ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(ve))
	for _, f := range ve {
		m[f.Field] = f.Message
	}
	return m
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return err != nil && errors.As(err, &ve)
}

func replacements(field string, args []string) map[string]string {
	r := make(map[string]string, len(args)+2)
	r["field"] = field
	r["args"] = strings.Join(args, ", ")
	for i, a := range args {
		r[strconv.Itoa(i)] = a
	}
	return r
}

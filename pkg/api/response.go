package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// ValidationResult is the body of a /validate answer.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Language string            `json:"language"`
	Errors   map[string]string `json:"errors,omitempty"`
	Failures []FailureDetail   `json:"failures,omitempty"`
}

// FailureDetail describes one failed field.
type FailureDetail struct {
	Field   string   `json:"field"`
	Rule    string   `json:"rule,omitempty"`
	Key     string   `json:"key"`
	Args    []string `json:"args,omitempty"`
	Message string   `json:"message"`
}

// RuleList is the body of a /rules answer.
type RuleList struct {
	Rules     []string `json:"rules"`
	TypeRules []string `json:"type_rules"`
	Languages []string `json:"languages"`
}

// ErrorResponse wraps an ErrorDetail for request level errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

func failureDetails(failures validator.ValidationErrors) []FailureDetail {
	out := make([]FailureDetail, len(failures))
	for i, f := range failures {
		out[i] = FailureDetail{
			Field:   f.Field,
			Rule:    f.Rule,
			Key:     f.Key,
			Args:    f.Args,
			Message: f.Message,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

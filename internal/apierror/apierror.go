// Package apierror provides the standardized error envelope for the API.
// All errors returned to clients go through this package so that every
// response carries the same {success:false, error:…} shape and internal
// details (stack traces, DB errors) never leak out.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Success is always false; the client kit relies on this invariant when
// decoding responses.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Success: false, Error: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Success: false, Error: "Validation failed", Fields: fields}
}

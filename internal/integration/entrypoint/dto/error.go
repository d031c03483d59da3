// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error in API responses. Field and Rule are set
// for validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

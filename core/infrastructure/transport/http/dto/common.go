// Package dto holds the JSON bodies of the report API.
package dto

// HealthResponse answers /heartbeat.
type HealthResponse struct {
	Success bool `json:"success"`
	// Reports is the catalog size.
	Reports int `json:"reports"`
}

// ErrorResponse is returned for every failed request. Code is an
// errors.ErrorCode when the failure has one.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// ErrorDetail names one rejected request field and the rule it broke.
type ErrorDetail struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrorResponse is a 400 with per-field details.
type ValidationErrorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

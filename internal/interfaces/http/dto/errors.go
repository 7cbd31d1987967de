package dto

import "net/http"

// Error codes surfaced by the API. Domain services emit most of these;
// the transport layer adds the auth and availability codes.
const (
	// ErrCodeValidation is used when input fails domain or request validation
	ErrCodeValidation = "VALIDATION"
	// ErrCodeNotFound is used when a resource is not found or not accessible
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodePeriodOverlap is used when a period's date range collides with another
	ErrCodePeriodOverlap = "PERIOD_OVERLAP"
	// ErrCodePeriodClosed is used when mutating a closed period
	ErrCodePeriodClosed = "PERIOD_CLOSED"
	// ErrCodePeriodActive is used when deleting or closing the active period
	ErrCodePeriodActive = "PERIOD_ACTIVE"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeChallengeRequired is used when a protected tenant switch lacks a credential
	ErrCodeChallengeRequired = "CHALLENGE_REQUIRED"
	// ErrCodeInvalidCredential is used when a tenant switch credential does not verify
	ErrCodeInvalidCredential = "INVALID_CREDENTIAL"
	// ErrCodeUnauthorized is used when authentication is required but missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeStoreUnavailable is used when the backing store cannot be reached
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodePeriodOverlap:     http.StatusConflict,
	ErrCodePeriodClosed:      http.StatusConflict,
	ErrCodePeriodActive:      http.StatusConflict,
	ErrCodeInvalidState:      http.StatusConflict,
	ErrCodeChallengeRequired: http.StatusPreconditionRequired,
	ErrCodeInvalidCredential: http.StatusUnauthorized,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeStoreUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 503 since the only unclassified failures are
// store errors propagated from the persistence layer.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusServiceUnavailable
}

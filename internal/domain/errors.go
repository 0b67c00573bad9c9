package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Configuration errors (CONFIG_*) — fatal before any network call
	ErrorCodeConfigMissingCredentials ErrorCode = "CONFIG_MISSING_CREDENTIALS"
	ErrorCodeConfigMissingMerchant    ErrorCode = "CONFIG_MISSING_MERCHANT"
	ErrorCodeConfigUnknownCurrency    ErrorCode = "CONFIG_UNKNOWN_CURRENCY"

	// Validation errors (VALIDATION_*) — fatal before the request is built
	ErrorCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationRecurringInd ErrorCode = "VALIDATION_RECURRING_IND"
	ErrorCodeValidationOverrideInd  ErrorCode = "VALIDATION_OVERRIDE_IND"

	// Gateway errors (GATEWAY_*)
	ErrorCodeGatewayConnection ErrorCode = "GATEWAY_CONNECTION"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsConfigurationError checks if an error was raised during client
// construction or currency resolution
func IsConfigurationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeConfigMissingCredentials ||
		code == ErrorCodeConfigMissingMerchant ||
		code == ErrorCodeConfigUnknownCurrency
}

// IsValidationError checks if an error is a caller-input validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationFailed ||
		code == ErrorCodeValidationRecurringInd ||
		code == ErrorCodeValidationOverrideInd
}

// IsConnectionError checks if an error is a transport-level failure that
// survived the failover retry
func IsConnectionError(err error) bool {
	return GetErrorCode(err) == ErrorCodeGatewayConnection
}

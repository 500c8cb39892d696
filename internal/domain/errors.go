package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Authentication & Authorization Errors (AUTH_*)
	// Inbound authentication never produces these; they belong to the
	// authorization layer that decides 401 vs allow.
	ErrorCodeAuthMissing      ErrorCode = "AUTH_MISSING"
	ErrorCodeAuthAccessDenied ErrorCode = "AUTH_ACCESS_DENIED"

	// Configuration Errors (CONFIG_*) - the only class allowed to stop startup
	ErrorCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// User Errors (USER_*)
	ErrorCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrorCodeUserExists   ErrorCode = "USER_EXISTS"

	// Entity Errors
	ErrorCodeMerchantNotFound ErrorCode = "MERCHANT_NOT_FOUND"
	ErrorCodePaymentNotFound  ErrorCode = "PAYMENT_NOT_FOUND"

	// Boarding Errors
	ErrorCodeGatewayNotFound     ErrorCode = "GATEWAY_NOT_FOUND"
	ErrorCodeCardMappingNotFound ErrorCode = "CARD_MAPPING_NOT_FOUND"
	ErrorCodeBoardingTransport   ErrorCode = "BOARDING_TRANSPORT"
	ErrorCodeBoardingPayload     ErrorCode = "BOARDING_PAYLOAD"

	// Internal Errors (INTERNAL_*)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
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

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsConfigError checks if an error is a startup configuration error
func IsConfigError(err error) bool {
	return GetErrorCode(err) == ErrorCodeConfigInvalid
}

// IsBoardingError checks if an error belongs to the outbound boarding path
func IsBoardingError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeGatewayNotFound ||
		code == ErrorCodeCardMappingNotFound ||
		code == ErrorCodeBoardingTransport ||
		code == ErrorCodeBoardingPayload
}

// Structured error instances
var (
	ErrAuthMissing      = NewDomainError(ErrorCodeAuthMissing, "authentication required")
	ErrAuthAccessDenied = NewDomainError(ErrorCodeAuthAccessDenied, "access denied")

	ErrUserNotFound = NewDomainError(ErrorCodeUserNotFound, "user not found")
	ErrUserExists   = NewDomainError(ErrorCodeUserExists, "user already exists")

	ErrGatewayNotFound     = NewDomainError(ErrorCodeGatewayNotFound, "no gateway registered for merchant's gateway type")
	ErrCardMappingNotFound = NewDomainError(ErrorCodeCardMappingNotFound, "no card-brand mapping for gateway")
)

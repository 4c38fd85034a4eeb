package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Fetch pipeline errors - classification of upstream failures surfaced to callers
const (
	NetworkUnreachableError ErrorType = "NETWORK_UNREACHABLE"
	RateLimitedError        ErrorType = "RATE_LIMITED"
	LocationNotFoundError   ErrorType = "LOCATION_NOT_FOUND"
	UnknownError            ErrorType = "UNKNOWN_ERROR"
)

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
)

// Infrastructure Errors - errors related to external systems and services
const (
	DatabaseError    ErrorType = "DATABASE_ERROR"
	ExternalAPIError ErrorType = "EXTERNAL_API_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	// StatusCode carries the upstream HTTP status when the error originated
	// from an HTTP response; zero otherwise.
	StatusCode int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Fetch Pipeline Error Constructors
func NewNetworkUnreachableError(message string, cause error) *AppError {
	return Wrap(NetworkUnreachableError, message, cause)
}

func NewRateLimitedError(message string) *AppError {
	return &AppError{Type: RateLimitedError, Message: message, StatusCode: 429}
}

func NewLocationNotFoundError(message string) *AppError {
	return New(LocationNotFoundError, message)
}

func NewUnknownError(message string, cause error) *AppError {
	return Wrap(UnknownError, message, cause)
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewUpstreamStatusError(message string, statusCode int) *AppError {
	return &AppError{
		Type:       ExternalAPIError,
		Message:    message,
		StatusCode: statusCode,
	}
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

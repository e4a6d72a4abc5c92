package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, machine-readable identifier sent to clients.
type ErrorCode string

const (
	// Signup
	ErrCodeDuplicateContact    ErrorCode = "SGR-001"
	ErrCodeInvalidEmail        ErrorCode = "SGR-002"
	ErrCodeInvalidContact      ErrorCode = "SGR-003"
	ErrCodeWeakPassword        ErrorCode = "SGR-004"
	ErrCodeSignupFieldsMissing ErrorCode = "SGR-005"

	// Authentication (login)
	ErrCodeNotRegistered       ErrorCode = "ATH-001"
	ErrCodeInvalidCredentials  ErrorCode = "ATH-002"
	ErrCodeBadCredentialFormat ErrorCode = "ATH-003"

	// Authorization (bearer token)
	ErrCodeNotLoggedIn      ErrorCode = "ATHR-001"
	ErrCodeAlreadyLoggedOut ErrorCode = "ATHR-002"
	ErrCodeSessionExpired   ErrorCode = "ATHR-003"
	ErrCodeAddressNotOwned  ErrorCode = "ATHR-004"

	// Customer update
	ErrCodeUpdateWeakPassword   ErrorCode = "UCR-001"
	ErrCodeFirstNameMissing     ErrorCode = "UCR-002"
	ErrCodePasswordFieldMissing ErrorCode = "UCR-003"
	ErrCodeIncorrectOldPassword ErrorCode = "UCR-004"

	// Address
	ErrCodeAddressFieldMissing ErrorCode = "SAR-001"
	ErrCodeInvalidPincode      ErrorCode = "SAR-002"
	ErrCodeStateNotFound       ErrorCode = "ANF-002"
	ErrCodeAddressNotFound     ErrorCode = "ANF-003"
	ErrCodeAddressIDMissing    ErrorCode = "ANF-005"

	// Generic
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabase          ErrorCode = "DATABASE_ERROR"
)

// AppError is a structured error that can be returned to clients
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports a match on code so sentinel-style comparisons work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Signup

func DuplicateContact() *AppError {
	return New(ErrCodeDuplicateContact, "This contact number is already registered! Try other contact number.")
}

func DuplicateEmail() *AppError {
	return New(ErrCodeDuplicateContact, "This email is already registered! Try other email.")
}

func NameTooLong() *AppError {
	return New(ErrCodeSignupFieldsMissing, "First name and last name can have at most 30 characters")
}

func InvalidEmail() *AppError {
	return New(ErrCodeInvalidEmail, "Invalid email-id format!")
}

func InvalidContact() *AppError {
	return New(ErrCodeInvalidContact, "Invalid contact number!")
}

func WeakPassword() *AppError {
	return New(ErrCodeWeakPassword, "Weak password!")
}

func SignupFieldsMissing() *AppError {
	return New(ErrCodeSignupFieldsMissing, "Except last name all fields should be filled")
}

// Authentication

func NotRegistered() *AppError {
	return New(ErrCodeNotRegistered, "This contact number has not been registered!")
}

func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Invalid Credentials")
}

func BadCredentialFormat() *AppError {
	return New(ErrCodeBadCredentialFormat, "Incorrect format of decoded customer name and password")
}

// Authorization

func NotLoggedIn() *AppError {
	return New(ErrCodeNotLoggedIn, "Customer is not Logged in.")
}

func AlreadyLoggedOut() *AppError {
	return New(ErrCodeAlreadyLoggedOut, "Customer is logged out. Log in again to access this endpoint.")
}

func SessionExpired() *AppError {
	return New(ErrCodeSessionExpired, "Your session is expired. Log in again to access this endpoint.")
}

func AddressNotOwned() *AppError {
	return New(ErrCodeAddressNotOwned, "You are not authorized to view/update/delete any one else's address")
}

// Customer update

func UpdateWeakPassword() *AppError {
	return New(ErrCodeUpdateWeakPassword, "Weak password!")
}

func FirstNameMissing() *AppError {
	return New(ErrCodeFirstNameMissing, "First name field should not be empty")
}

func UpdateNameTooLong() *AppError {
	return New(ErrCodeFirstNameMissing, "First name and last name can have at most 30 characters")
}

func PasswordFieldMissing() *AppError {
	return New(ErrCodePasswordFieldMissing, "No field should be empty")
}

func IncorrectOldPassword() *AppError {
	return New(ErrCodeIncorrectOldPassword, "Incorrect old password!")
}

// Address

func AddressFieldMissing() *AppError {
	return New(ErrCodeAddressFieldMissing, "No field can be empty")
}

func AddressFieldTooLong() *AppError {
	return New(ErrCodeAddressFieldMissing, "Address fields can have at most 255 characters")
}

func InvalidPincode() *AppError {
	return New(ErrCodeInvalidPincode, "Invalid pincode")
}

func StateNotFound() *AppError {
	return New(ErrCodeStateNotFound, "No state by this id")
}

func AddressNotFound() *AppError {
	return New(ErrCodeAddressNotFound, "No address by this id")
}

func AddressIDMissing() *AppError {
	return New(ErrCodeAddressIDMissing, "Address id can not be empty")
}

// Generic

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func RateLimitExceeded() *AppError {
	return New(ErrCodeRateLimitExceeded, "Rate limit exceeded")
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func Database(cause error) *AppError {
	return Wrap(ErrCodeDatabase, "Database error", cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if the error is an AppError, otherwise returns ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

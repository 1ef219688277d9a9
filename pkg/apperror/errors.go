package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // internal cause, never sent to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches an internal cause to a new AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAdminRequired() *AppError {
	return New("AUTH_004", "Administrator privileges required", http.StatusForbidden)
}

// ---- PIX charges (PIX) ----

func ErrInvalidAmount() *AppError {
	return New("PIX_001", "Amount must be greater than zero", http.StatusBadRequest)
}

// Validation reports a request field that cannot be encoded or is missing.
func Validation(message string) *AppError {
	return New("PIX_002", message, http.StatusBadRequest)
}

func ErrInvalidPixCode(err error) *AppError {
	return Wrap("PIX_003", "Invalid PIX code", http.StatusUnprocessableEntity, err)
}

func ErrNotFound(entity string) *AppError {
	return New("PIX_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidStatusTransition(from, to string) *AppError {
	return New("PIX_005", fmt.Sprintf("Cannot change status from %s to %s", from, to), http.StatusConflict)
}

func ErrChargeForbidden() *AppError {
	return New("PIX_006", "Charge belongs to another user", http.StatusForbidden)
}

func ErrDuplicateCharge() *AppError {
	return New("PIX_007", "Reference already used for a different charge", http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

func ErrCodeGeneration(err error) *AppError {
	return Wrap("SYS_004", "PIX code generation failed", http.StatusInternalServerError, err)
}

func ErrPayloadTooLarge() *AppError {
	return New("SYS_005", "Request body too large", http.StatusRequestEntityTooLarge)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Promotion error kinds. Every expected failure in the promotions engine is
// one of these; anything else is KindInternal.
const (
	KindNotFound            = "NOT_FOUND"
	KindExpired             = "EXPIRED"
	KindInactive            = "INACTIVE"
	KindShopMismatch        = "SHOP_MISMATCH"
	KindUsageLimitReached   = "USAGE_LIMIT_REACHED"
	KindPerUserLimitReached = "PER_USER_LIMIT_REACHED"
	KindMinimumNotMet       = "MINIMUM_NOT_MET"
	KindNotApplicable       = "NOT_APPLICABLE"
	KindAlreadyApplied      = "ALREADY_APPLIED"
	KindConflict            = "CONFLICT"
	KindValidation          = "VALIDATION_ERROR"
	KindInternal            = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message, nil)
}

// ExpiredError marks a code or event outside its validity window
func ExpiredError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindExpired, message, nil)
}

// InactiveError marks a disabled code or event
func InactiveError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInactive, message, nil)
}

// ShopMismatchError marks a code used outside its owning shop
func ShopMismatchError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindShopMismatch, message, nil)
}

// UsageLimitError marks a code whose global cap is exhausted
func UsageLimitError(message string) *AppError {
	return NewAppError(http.StatusConflict, KindUsageLimitReached, message, nil)
}

// PerUserLimitError marks a user who has hit the per-user cap
func PerUserLimitError(message string) *AppError {
	return NewAppError(http.StatusConflict, KindPerUserLimitReached, message, nil)
}

// MinimumNotMetError marks an order below the code's minimum amount
func MinimumNotMetError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindMinimumNotMet, message, nil)
}

// NotApplicableError marks a rule with no eligible items in the order
func NotApplicableError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindNotApplicable, message, nil)
}

// AlreadyAppliedError marks a duplicate redemption for the same order
func AlreadyAppliedError(message string) *AppError {
	return NewAppError(http.StatusConflict, KindAlreadyApplied, message, nil)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, message, nil)
}

// ValidationFailedError creates a 422 validation error
func ValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, KindValidation, message, nil)
}

// InternalError wraps an unexpected failure
func InternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, message, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

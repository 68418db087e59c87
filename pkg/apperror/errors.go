package apperror

import (
	"errors"
	"strings"
)

// Kind classifies an application error for the screen that triggered it
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// AppError represents an application error with a displayable message
type AppError struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on kind and message so sentinel errors work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Common errors
var (
	ErrNotFound          = &AppError{Kind: KindNotFound, Message: "Record not found"}
	ErrInternal          = &AppError{Kind: KindInternal, Message: "Something went wrong, please try again"}
	ErrDuplicateIMEI     = &AppError{Kind: KindConflict, Message: "A phone with this IMEI already exists"}
	ErrInsufficientStock = &AppError{Kind: KindValidation, Message: "Not enough stock"}
	ErrPinMismatch       = &AppError{Kind: KindUnauthorized, Message: "Wrong PIN"}
	ErrSetupRequired     = &AppError{Kind: KindUnauthorized, Message: "Shop setup has not been completed"}
	ErrSessionExpired    = &AppError{Kind: KindUnauthorized, Message: "Session expired, unlock again"}
)

// NewAppError creates a new application error
func NewAppError(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a validation error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
	}
}

// Wrap hides a persistence failure behind the generic message
func Wrap(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: ErrInternal.Message,
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err)
}

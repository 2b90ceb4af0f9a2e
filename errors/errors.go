package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type returned by container operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// ProgrammerError marks failures caused by incorrect wiring in the caller.
	ProgrammerError bool `json:"programmer_error"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrNotRegistered) matches any not-registered failure.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic programmer-error detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:            code,
		Message:         message,
		ProgrammerError: IsProgrammerErrorCode(code),
	}
}

// Sentinels for errors.Is. They carry only a code and must not be mutated.
var (
	ErrNotRegistered             = &AppError{Code: ErrCodeNotRegistered}
	ErrArityMismatch             = &AppError{Code: ErrCodeArityMismatch}
	ErrArgumentMismatch          = &AppError{Code: ErrCodeArgumentMismatch}
	ErrResultMismatch            = &AppError{Code: ErrCodeResultMismatch}
	ErrSingletonArgumentsChanged = &AppError{Code: ErrCodeSingletonArgumentsChanged}
	ErrInvalidConfig             = &AppError{Code: ErrCodeInvalidConfig}
)

// --- Container Error Constructors ---

// NotRegistered creates a new AppError for a type with no registration.
func NotRegistered(typeName string) *AppError {
	return &AppError{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("no registration for type %s", typeName),
		ProgrammerError: true,
		Details:         map[string]any{"type": typeName},
	}
}

// ArityMismatch creates a new AppError for a resolve call whose argument
// count differs from the registered builder.
func ArityMismatch(typeName string, registered, requested int) *AppError {
	return &AppError{
		Code: ErrCodeArityMismatch,
		Message: fmt.Sprintf("type %s is registered with %d argument(s), resolved with %d",
			typeName, registered, requested),
		ProgrammerError: true,
		Details: map[string]any{
			"type":       typeName,
			"registered": registered,
			"requested":  requested,
		},
	}
}

// ArgumentMismatch creates a new AppError for an argument whose type differs
// from the registered builder's parameter at the same position.
func ArgumentMismatch(typeName string, position int, registered, requested string) *AppError {
	return &AppError{
		Code: ErrCodeArgumentMismatch,
		Message: fmt.Sprintf("argument %d of type %s must be %s, got %s",
			position, typeName, registered, requested),
		ProgrammerError: true,
		Details: map[string]any{
			"type":       typeName,
			"position":   position,
			"registered": registered,
			"requested":  requested,
		},
	}
}

// ResultMismatch creates a new AppError for an instance that cannot be
// returned as the requested type.
func ResultMismatch(typeName string, instance any) *AppError {
	return &AppError{
		Code:            ErrCodeResultMismatch,
		Message:         fmt.Sprintf("instance for type %s is %T", typeName, instance),
		ProgrammerError: true,
		Details:         map[string]any{"type": typeName, "instance": fmt.Sprintf("%T", instance)},
	}
}

// SingletonArgumentsChanged creates a new AppError for a cached singleton
// resolved with arguments other than the ones it was built with.
func SingletonArgumentsChanged(typeName string) *AppError {
	return &AppError{
		Code:            ErrCodeSingletonArgumentsChanged,
		Message:         fmt.Sprintf("singleton %s was already built with different arguments", typeName),
		ProgrammerError: true,
		Details:         map[string]any{"type": typeName},
	}
}

// InvalidConfig creates a new AppError for a configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("invalid configuration: %s", message),
	}
}

// --- Helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

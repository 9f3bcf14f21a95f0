package apperror

import "errors"

type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation_failed"
	KindStorage    Kind = "storage_failure"
)

// AppError carries the failure kind plus a machine-readable reason code.
// Transport mapping (status codes) lives in the API layer, not here.
type AppError struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(reason, message string) *AppError {
	return &AppError{Kind: KindNotFound, Reason: reason, Message: message}
}

func Conflict(reason, message string) *AppError {
	return &AppError{Kind: KindConflict, Reason: reason, Message: message}
}

func Validation(reason, message string) *AppError {
	return &AppError{Kind: KindValidation, Reason: reason, Message: message}
}

func Storage(err error) *AppError {
	return &AppError{Kind: KindStorage, Reason: "storage_failure", Message: "storage operation failed", Err: err}
}

// From unwraps err into an *AppError if one is in the chain.
func From(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if appErr, ok := From(err); ok {
		return appErr.Kind == kind
	}
	return false
}

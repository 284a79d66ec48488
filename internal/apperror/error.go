package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation Code = "validation"
	CodeConflict   Code = "conflict"
	CodeAuth       Code = "auth"
	CodeNotFound   Code = "not_found"
	CodePermission Code = "permission"
	CodeInternal   Code = "internal"
)

// Error is a failure the web layer knows how to show to a user. Fields holds
// per-input messages for validation errors, keyed by form field name.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" && len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d invalid fields", e.Code, len(e.Fields))
	}

	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func Validation(fields map[string]string) *Error {
	return &Error{
		Code:   CodeValidation,
		Fields: fields,
	}
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Auth(message string) *Error {
	return New(CodeAuth, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundField is a not-found error raised by a form input that points at a
// missing record.
func NotFoundField(message, field, fieldMessage string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: message,
		Fields:  map[string]string{field: fieldMessage},
	}
}

func Permission(message string) *Error {
	return New(CodePermission, message)
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// FieldErrors returns the per-field messages of an app error, or nil.
func FieldErrors(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}

	return nil
}

// Message returns the user-facing message of an app error, or "" for any
// other error so internal details never reach a page.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return ""
}

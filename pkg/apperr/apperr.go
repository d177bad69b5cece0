// Package apperr defines the typed errors every workflow returns.
//
// A *Error carries a Code that maps to an HTTP status, a message that is
// safe to show to the caller, an optional wrapped cause (logged, never sent)
// and optional details (sent). Controllers render them with response.Fail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeStoreFailure       Code = "STORE_FAILURE"
	CodeOrderPersistFailed Code = "ORDER_PERSIST_FAILED"
	CodeUploadFailed       Code = "UPLOAD_FAILED"
	CodeBlobDeleteFailed   Code = "BLOB_DELETE_FAILED"
)

type metadata struct {
	status  int
	message string
	partial bool
}

var metadataByCode = map[Code]metadata{
	CodeUnauthenticated:    {http.StatusUnauthorized, "No Token", false},
	CodeInvalidToken:       {http.StatusUnauthorized, "Invalid Token", false},
	CodeForbidden:          {http.StatusForbidden, "You are not authorized to perform this action", false},
	CodeNotFound:           {http.StatusNotFound, "Not found", false},
	CodeValidation:         {http.StatusBadRequest, "Validation failed", false},
	CodeRateLimited:        {http.StatusTooManyRequests, "Too Many Requests", false},
	CodeStoreFailure:       {http.StatusInternalServerError, "Internal Server Error", false},
	CodeOrderPersistFailed: {http.StatusInternalServerError, "Failed to add order", false},
	CodeUploadFailed:       {http.StatusInternalServerError, "Failed to upload file", false},
	CodeBlobDeleteFailed:   {http.StatusInternalServerError, "Error deleting file", true},
}

// Status returns the HTTP status for code, 500 for unknown codes.
func (c Code) Status() int {
	if m, ok := metadataByCode[c]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// Partial reports whether the code describes a workflow that changed state
// before failing (PartialFailure in the taxonomy).
func (c Code) Partial() bool {
	return metadataByCode[c].partial
}

func (c Code) defaultMessage() string {
	if m, ok := metadataByCode[c]; ok {
		return m.message
	}
	return "Internal Server Error"
}

// Error is the typed error value.
type Error struct {
	code    Code
	message string
	err     error
	details any
}

// New builds an error with code and message. An empty message falls back
// to the code's default.
func New(code Code, message string) *Error {
	if message == "" {
		message = code.defaultMessage()
	}
	return &Error{code: code, message: message}
}

// Wrap attaches cause to a new typed error.
func Wrap(code Code, cause error, message string) *Error {
	e := New(code, message)
	e.err = cause
	return e
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.details = details
	return &cp
}

func (e *Error) Code() Code { return e.code }

func (e *Error) Message() string { return e.message }

func (e *Error) Details() any { return e.details }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) HTTPStatus() int { return e.code.Status() }

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Is matches another *Error by code so callers can write
// errors.Is(err, apperr.New(apperr.CodeNotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// As extracts the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// CodeOf returns the code of err, CodeStoreFailure for untyped errors and
// "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if e := As(err); e != nil {
		return e.code
	}
	return CodeStoreFailure
}

func Unauthenticated() *Error { return New(CodeUnauthenticated, "") }

func InvalidToken(cause error) *Error { return Wrap(CodeInvalidToken, cause, "") }

func Forbidden() *Error { return New(CodeForbidden, "") }

func NotFound(message string) *Error { return New(CodeNotFound, message) }

func Validation(message string) *Error { return New(CodeValidation, message) }

func Store(cause error, message string) *Error { return Wrap(CodeStoreFailure, cause, message) }

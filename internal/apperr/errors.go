package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicate
	KindValidation
	KindInvalidOperation
	KindUnauthorized
	KindForbidden
	KindFileUpload
	KindPayloadTooLarge
)

// Error is the typed failure every service returns for business rule violations.
// The HTTP layer only maps Kind to a status; it never inspects Message.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(resource, field string, value any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with %s: %v", resource, field, value)}
}

func Duplicate(resource, field string, value any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf("%s already exists with %s: %v", resource, field, value)}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Field is Validation for a single offending field.
func Field(field, message string) *Error {
	return Validation(message, map[string]string{field: message})
}

func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func FileUpload(message string, err error) *Error {
	return &Error{Kind: KindFileUpload, Message: message, Err: err}
}

func PayloadTooLarge(message string) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: message}
}

// KindOf reports the Kind of err, KindInternal for anything untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

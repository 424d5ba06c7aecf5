// Package apperr defines the error taxonomy shared by services and
// handlers: permission denials, validation failures, not-found/conflict
// lookups, and wrapped backend failures.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindValidation
	KindNotFound
	KindConflict
	KindBackend
)

type Error struct {
	Kind  Kind
	Field string // set for validation errors
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PermissionDenied reports an action attempted without the required flag.
func PermissionDenied(action string) *Error {
	return &Error{Kind: KindPermissionDenied, Msg: fmt.Sprintf("permission denied: %s", action)}
}

// Validation reports malformed input, caught before any storage call.
func Validation(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Msg: what + " not found"}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Backend wraps any failure from the storage or mail layer.
func Backend(op string, err error) *Error {
	return &Error{Kind: KindBackend, Msg: op + " failed", Err: err}
}

// KindOf classifies an error; non-taxonomy errors map to KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

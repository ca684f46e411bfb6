package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for callers: which ones are
// retryable, which need admin intervention, which are the user's
// input. Handlers map kinds to HTTP statuses; nothing else inspects
// error strings.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindPermission  ErrorKind = "permission"
	KindNotFound    ErrorKind = "not_found"
	KindTransient   ErrorKind = "transient"
	KindConsistency ErrorKind = "consistency"
)

// Error is a kind-tagged error carrying a short title and description
// suitable for surfacing to the user.
type Error struct {
	Kind   ErrorKind
	Title  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Title, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Title, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Title)
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationErr(title string, err error) *Error {
	return &Error{Kind: KindValidation, Title: title, Err: err}
}

func PermissionErr(title, detail string) *Error {
	return &Error{Kind: KindPermission, Title: title, Detail: detail}
}

func NotFoundErr(title string) *Error {
	return &Error{Kind: KindNotFound, Title: title}
}

func TransientErr(title string, err error) *Error {
	return &Error{Kind: KindTransient, Title: title, Err: err}
}

func ConsistencyErr(title, detail string) *Error {
	return &Error{Kind: KindConsistency, Title: title, Detail: detail}
}

// KindOf extracts the kind from an error chain. Untagged errors are
// treated as transient: the safe default is "retryable", never
// silently swallowed.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

// IsRetryable reports whether the caller may usefully retry.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}

package structs

import (
	"errors"
	"fmt"
)

// Error is a classified relay failure. Two errors match under errors.Is when
// their codes are equal, so sentinels below can be used as targets.
type Error struct {
	Code string
	Err  error
}

var (
	ErrConfigMissing     = &Error{Code: "ConfigMissing"}
	ErrConfigInvalid     = &Error{Code: "ConfigInvalid"}
	ErrSecretUnavailable = &Error{Code: "SecretUnavailable"}

	ErrInvalidEvent = &Error{Code: "InvalidEvent"}

	ErrObjectNotFound        = &Error{Code: "ObjectNotFound"}
	ErrAccessDenied          = &Error{Code: "AccessDenied"}
	ErrTransientStorageError = &Error{Code: "TransientStorageError"}

	ErrConnectionFailed        = &Error{Code: "ConnectionFailed"}
	ErrAuthenticationFailed    = &Error{Code: "AuthenticationFailed"}
	ErrModeNegotiationFailed   = &Error{Code: "ModeNegotiationFailed"}
	ErrRemoteDirectoryNotFound = &Error{Code: "RemoteDirectoryNotFound"}
	ErrTransferAborted         = &Error{Code: "TransferAborted"}
)

// Wrap classifies err under the code of kind
func (kind *Error) Wrap(err error) error {
	return &Error{Code: kind.Code, Err: err}
}

// Errorf classifies a formatted message under the code of kind
func (kind *Error) Errorf(format string, args ...interface{}) error {
	return kind.Wrap(fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Err)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the classification code of err, or an empty string
func ErrorCode(err error) string {
	var e *Error

	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

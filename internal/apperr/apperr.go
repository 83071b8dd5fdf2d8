// Package apperr classifies qdiff errors and maps them to exit codes.
//
// The application name used as message prefix is passed in explicitly by the
// caller; nothing here holds process-wide state.
package apperr

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	// ExitSuccess indicates the comparison ran (or was trivially skipped).
	ExitSuccess = 0

	// ExitFailure is used for errors that carry no classification.
	ExitFailure = 1

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 64

	// ExitConfig indicates configuration file errors.
	ExitConfig = 65

	// ExitInternal indicates a violated internal invariant.
	ExitInternal = 70

	// ExitIO indicates unreadable input or failed output.
	ExitIO = 74
)

// Kind classifies an error.
type Kind uint8

// Error kinds.
const (
	KindUser Kind = iota + 1
	KindConfig
	KindIO
	KindInternal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for errors of kind k.
func (k Kind) ExitCode() int {
	switch k {
	case KindUser:
		return ExitUsage
	case KindConfig:
		return ExitConfig
	case KindIO:
		return ExitIO
	case KindInternal:
		return ExitInternal
	default:
		return ExitFailure
	}
}

// Error is a classified error.
type Error struct {
	App  string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Kind == KindInternal {
		msg = "internal error: " + msg
	}
	if e.App == "" {
		return msg
	}
	return e.App + ": " + msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as an error of kind k for application app. A nil err
// yields nil. An err that is already classified keeps its kind.
func New(app string, k Kind, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{App: app, Kind: k, Err: err}
}

// User returns a user error with a formatted message.
func User(app, format string, args ...any) error {
	return &Error{App: app, Kind: KindUser, Err: fmt.Errorf(format, args...)}
}

// Internal returns an internal error with a formatted message.
func Internal(app, format string, args ...any) error {
	return &Error{App: app, Kind: KindInternal, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first classified error in err's chain, or
// zero if there is none.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return 0
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return KindOf(err).ExitCode()
}

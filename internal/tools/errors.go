package tools

import (
	"errors"
	"fmt"
)

// Kind classifies why a tool call failed.
type Kind string

const (
	// KindValidation marks bad or missing arguments, detected before any network call.
	KindValidation Kind = "validation"
	// KindConfiguration marks a missing provider credential or setting.
	KindConfiguration Kind = "configuration"
	// KindProvider marks a non-2xx or malformed response from an external API.
	KindProvider Kind = "provider"
	// KindNotFound marks a call naming a tool that is not registered.
	KindNotFound Kind = "not_found"
	// KindTimeout marks a provider that did not answer within the configured timeout.
	KindTimeout Kind = "timeout"
	// KindInternal marks a handler panic or an error that carries no kind.
	KindInternal Kind = "internal"
)

// ErrDuplicateName is returned by Register when a descriptor name is already taken.
var ErrDuplicateName = errors.New("duplicate tool name")

// Error is a classified tool failure. Msg is shown to the caller verbatim.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) error {
	return newError(KindValidation, nil, format, args...)
}

// Configurationf builds a KindConfiguration error.
func Configurationf(format string, args ...any) error {
	return newError(KindConfiguration, nil, format, args...)
}

// Providerf builds a KindProvider error.
func Providerf(format string, args ...any) error {
	return newError(KindProvider, nil, format, args...)
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) error {
	return newError(KindNotFound, nil, format, args...)
}

// Timeoutf builds a KindTimeout error.
func Timeoutf(format string, args ...any) error {
	return newError(KindTimeout, nil, format, args...)
}

// Wrap attaches a kind and a user-facing message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return newError(kind, err, format, args...)
}

// KindOf reports the kind carried by err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

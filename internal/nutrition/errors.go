package nutrition

import (
	"errors"
	"fmt"
)

// Kind classifies errors surfaced through the MCP tools.
type Kind string

const (
	// KindAuth means no session credential could be resolved or the
	// upstream rejected it.
	KindAuth Kind = "authentication"
	// KindValidation means a malformed or logically invalid date/range;
	// raised before any credential resolution or network activity.
	KindValidation Kind = "validation"
	// KindUpstream means the MyFitnessPal service or client failed; not
	// retried automatically.
	KindUpstream Kind = "upstream"
	// KindUnknown is anything unanticipated, passed through unmodified.
	KindUnknown Kind = "unknown"
)

// Error carries a kind and a human-readable message; never a stack trace.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies err under kind, preserving an existing *Error's kind.
func WrapError(kind Kind, message string, err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnknown
}

// Package errors defines the error kinds of spec.md §7. Like
// cue/errors, it is a thin wrapper over the standard library: Error
// composes with errors.Is/errors.As and errors.Unwrap, it just adds
// the Kind/Path/Span fields downstream consumers need to render a
// useful diagnostic.
package errors

import (
	"errors"
	"fmt"

	"github.com/linkml-go/linkml/token"
)

// Is is a re-export of the standard library's errors.Is, so callers
// need only import this package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is a re-export of the standard library's errors.As.
func As(err error, target any) bool { return errors.As(err, target) }

// Kind enumerates the error kinds of spec.md §7.
type Kind int

const (
	Unknown Kind = iota
	IoError
	NotFound
	ParseError
	SchemaValidationError
	ImportError
	PatternError
	InstanceResolutionError
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case NotFound:
		return "NotFound"
	case ParseError:
		return "ParseError"
	case SchemaValidationError:
		return "SchemaValidationError"
	case ImportError:
		return "ImportError"
	case PatternError:
		return "PatternError"
	case InstanceResolutionError:
		return "InstanceResolutionError"
	default:
		return "Unknown"
	}
}

// Error is the core's error type. Every error the core returns to a
// caller is an *Error (spec.md §7's "Policy": all errors propagate to
// the caller of load).
type Error struct {
	Kind Kind

	// Ref is the reference being resolved when the error occurred: a
	// file path, URL, or import target, depending on Kind.
	Ref string

	// Span is the source location, when the error kind is span-shaped
	// (ParseError, SchemaValidationError, PatternError).
	Span token.Span

	// HTTPStatus is set for IoError/NotFound originating from a
	// network fetch.
	HTTPStatus int

	Message string
	Cause   error
}

func (e *Error) Error() string {
	var loc string
	if e.Span.IsValid() {
		loc = e.Span.String() + ": "
	} else if e.Ref != "" {
		loc = e.Ref + ": "
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	s := fmt.Sprintf("%s%s: %s", loc, e.Kind, msg)
	if e.HTTPStatus != 0 {
		s = fmt.Sprintf("%s (http status %d)", s, e.HTTPStatus)
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// Path returns the reference the error occurred on, for diagnostics.
func (e *Error) Path() string { return e.Ref }

// New builds an *Error for Kind k with a plain message.
func New(kind Kind, ref, message string) *Error {
	return &Error{Kind: kind, Ref: ref, Message: message}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, ref, format string, args ...any) *Error {
	return &Error{Kind: kind, Ref: ref, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of Kind k wrapping cause.
func Wrap(kind Kind, ref string, cause error) *Error {
	return &Error{Kind: kind, Ref: ref, Cause: cause}
}

// AtSpan attaches a span, returning e for chaining.
func (e *Error) AtSpan(span token.Span) *Error {
	e.Span = span
	return e
}

// WithHTTPStatus attaches an HTTP status, returning e for chaining.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// ParseErrorAt is a convenience constructor for the parser (spec.md
// §4.2 "a parse error is fatal for that document and carries
// {message, span}").
func ParseErrorAt(span token.Span, format string, args ...any) *Error {
	return &Error{Kind: ParseError, Span: span, Message: fmt.Sprintf(format, args...)}
}

// SchemaValidationErrorAt is a convenience constructor for the
// promoter (spec.md §4.3).
func SchemaValidationErrorAt(span token.Span, format string, args ...any) *Error {
	return &Error{Kind: SchemaValidationError, Span: span, Message: fmt.Sprintf(format, args...)}
}

// ImportErrorFor builds an ImportError naming the offending import
// (spec.md §4.4, §7).
func ImportErrorFor(target string, cause error) *Error {
	return &Error{Kind: ImportError, Ref: target, Cause: cause}
}

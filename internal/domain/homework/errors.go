// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Kind classifies every failure a poll cycle can end with.
type Kind int

const (
	KindUnknown        Kind = iota
	KindTransport           // API unreachable
	KindEndpoint            // API reachable but answered with a non-success status
	KindDecode              // body is not valid JSON
	KindType                // payload value of the wrong type
	KindSchema              // required key missing
	KindUnknownVerdict      // status code outside the verdict table
	KindUnsendable          // Telegram delivery failed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindEndpoint:
		return "endpoint"
	case KindDecode:
		return "decode"
	case KindType:
		return "type"
	case KindSchema:
		return "schema"
	case KindUnknownVerdict:
		return "unknown_verdict"
	case KindUnsendable:
		return "unsendable"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the polling core.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind that keeps err as its cause.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind
	}
	return KindUnknown
}

// SameError reports whether a and b are equal by value: same kind and same text.
func SameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return KindOf(a) == KindOf(b) && a.Error() == b.Error()
}

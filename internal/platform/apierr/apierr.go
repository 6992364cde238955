package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies engine errors so callers can branch without string
// matching. Computation errors are degraded-but-usable: the result carries
// neutral-defaulted signals rather than failing the whole computation.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindComputation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindComputation:
		return "computation"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("engine error (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Validation(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Err: fmt.Errorf(format, args...)}
}

func NotFound(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

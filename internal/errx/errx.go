// Package errx provides operation-scoped application errors with a Kind that
// the HTTP layer maps to a status code and the CLI maps to an exit message.
package errx

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	Unknown Kind = iota
	NotFound
	Conflict
	Invalid
	Forbidden
	Unavailable
	Internal
)

// Error records the operation that failed and what kind of failure it was.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

// E wraps err with op and kind. It returns nil when err is nil.
func E(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// Ef is E with a formatted message as the inner error.
func Ef(op string, kind Kind, format string, args ...any) error {
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// Wrap adds op to err and keeps the kind of the innermost errx.Error.
func Wrap(op string, err error) error {
	return E(op, KindOf(err), err)
}

var kindNames = [...]string{
	Unknown:     "Unknown",
	NotFound:    "NotFound",
	Conflict:    "Conflict",
	Invalid:     "Invalid",
	Forbidden:   "Forbidden",
	Unavailable: "Unavailable",
	Internal:    "Internal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the outermost errx.Error in the chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// OpOf returns the op of the outermost errx.Error in the chain.
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Ops lists every op in the chain from outermost to innermost.
func Ops(err error) []string {
	var ops []string
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if e.Op != "" {
			ops = append(ops, e.Op)
		}
		err = e.Err
	}
	return ops
}

// Root strips the leading errx layers and returns the error they wrap, so a
// caller-facing message does not carry op prefixes. It returns err itself when
// err is not an *Error.
func Root(err error) error {
	for {
		e, ok := err.(*Error)
		if !ok || e.Err == nil {
			return err
		}
		err = e.Err
	}
}

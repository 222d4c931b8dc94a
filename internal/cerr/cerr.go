// Package cerr implements CEL's first-class Error carrier (spec.md §3, §7)
// and its message catalog, grounded on the teacher's internal/interp/errors
// package: a catalog of named message-format constants plus a position-
// aware formatter (internal/errors/errors.go's CompilerError.Format).
package cerr

import (
	"fmt"

	"github.com/cwbudde/go-cel/internal/token"
)

// Kind classifies an Error by its fixed-vocabulary message, so callers can
// branch on error category without string matching (spec.md §9 supplement:
// evaluation.py's exception ladder driven off distinct exception types).
type Kind int

const (
	KindUnknown Kind = iota
	KindNoSuchOverload
	KindNoSuchKey
	KindNoSuchField
	KindNoSuchMember
	KindInvalidArgument
	KindOverflow
	KindDivideByZero
	KindModOrDivideByZero
	KindInvalidUTF8
	KindNoMatchingOverload
	KindUndeclaredReference
	KindRangeError
	KindUnsupportedKeyType
	KindBadKeyType
	KindSyntax
	KindUnsupported
)

// Catalog messages, named the way the teacher's catalog.go names its
// ErrMsg* constants. These are the fixed vocabulary entries from spec.md §6.
const (
	MsgNoSuchOverload       = "no such overload"
	MsgNoSuchKey            = "no such key"
	MsgNoSuchField          = "no such field"
	MsgNoSuchMemberFmt      = "no such member in mapping: '%s'"
	MsgInvalidArgument      = "invalid_argument"
	MsgOverflow             = "return error for overflow"
	MsgDivideByZero         = "divide by zero"
	MsgModOrDivideByZero    = "modulus or divide by zero"
	MsgInvalidUTF8          = "invalid UTF-8"
	MsgNoMatchingOverload   = "no matching overload"
	MsgUndeclaredRefFmt     = "undeclared reference to '%s' (in container '%s')"
	MsgRangeError           = "range error"
	MsgUnsupportedKeyType   = "unsupported key type"
	MsgBadKeyType           = "bad key type"
	MsgDoesNotSupportFields = "does not support field selection"
)

// Error is CEL's distinguished Eval error: a sibling of Value carrying a
// message and an optional cause, plus an optional source position.
// Every Value-returning operation may return *Error instead of a Value
// (spec.md §3).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Pos     token.Position
	HasPos  bool
}

// Error implements the standard error interface so *Error is usable at the
// pkg/cel API boundary (spec.md §6 Runner.evaluate raises Error-as-exception).
func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

// Unwrap exposes Cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a bare Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error from a host-level Go error, used at operator call
// sites the way the Evaluator catches TypeError/KeyError/... (spec.md §4.4).
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithPos attaches a source position, used for parse-time Syntax errors.
func (e *Error) WithPos(pos token.Position) *Error {
	e.Pos = pos
	e.HasPos = true
	return e
}

// Matches reports whether e's message equals or starts with prefix. Used
// sparingly (tests, host diagnostics); core dispatch should branch on Kind.
func (e *Error) Matches(prefix string) bool {
	if e == nil {
		return false
	}
	if e.Message == prefix {
		return true
	}
	return len(e.Message) >= len(prefix) && e.Message[:len(prefix)] == prefix
}

// NoSuchOverload builds the "no such overload" error for a binary/unary op
// applied to incompatible operand kinds.
func NoSuchOverload() *Error { return New(KindNoSuchOverload, MsgNoSuchOverload) }

// NoSuchKey builds the "no such key" error for lookups of a key a map does
// not contain.
func NoSuchKey() *Error { return New(KindNoSuchKey, MsgNoSuchKey) }

// NoSuchField builds the "no such field" error for unknown Message fields.
func NoSuchField() *Error { return New(KindNoSuchField, MsgNoSuchField) }

// NoSuchMember builds the "no such member in mapping: 'k'" error for map
// field-selection sugar misses (spec.md §4.4).
func NoSuchMember(key string) *Error {
	return Newf(KindNoSuchMember, MsgNoSuchMemberFmt, key)
}

// InvalidArgument builds the "invalid_argument" error for bad list indices.
func InvalidArgument() *Error { return New(KindInvalidArgument, MsgInvalidArgument) }

// Overflow builds the "return error for overflow" error.
func Overflow() *Error { return New(KindOverflow, MsgOverflow) }

// DivideByZero builds the "divide by zero" error.
func DivideByZero() *Error { return New(KindDivideByZero, MsgDivideByZero) }

// ModOrDivideByZero builds the "modulus or divide by zero" error.
func ModOrDivideByZero() *Error { return New(KindModOrDivideByZero, MsgModOrDivideByZero) }

// InvalidUTF8 builds the "invalid UTF-8" error.
func InvalidUTF8() *Error { return New(KindInvalidUTF8, MsgInvalidUTF8) }

// NoMatchingOverload builds the "no matching overload" error for function
// calls whose argument types don't match any registered overload.
func NoMatchingOverload() *Error { return New(KindNoMatchingOverload, MsgNoMatchingOverload) }

// UndeclaredReference builds the "undeclared reference to 'name' (in
// container 'pkg')" error (spec.md §4.4).
func UndeclaredReference(name, container string) *Error {
	return Newf(KindUndeclaredReference, MsgUndeclaredRefFmt, name, container)
}

// RangeError builds the "range error" error for out-of-range conversions.
func RangeError() *Error { return New(KindRangeError, MsgRangeError) }

// UnsupportedKeyType builds the "unsupported key type" error for unhashable
// map keys.
func UnsupportedKeyType() *Error { return New(KindUnsupportedKeyType, MsgUnsupportedKeyType) }

// BadKeyType builds the "bad key type" error for map literals with a
// non-hashable key expression.
func BadKeyType() *Error { return New(KindBadKeyType, MsgBadKeyType) }

// DoesNotSupportFieldSelection builds the error for `a.b` where a is
// neither a NameContainer, Map, nor Message.
func DoesNotSupportFieldSelection() *Error {
	return New(KindUnknown, MsgDoesNotSupportFields)
}

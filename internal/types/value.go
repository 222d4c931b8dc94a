// Package types implements CEL's Value sum type (spec.md §3, §4.1): scalar
// and container kinds with CEL-specific arithmetic, comparison, and
// conversion semantics, including the exact 64-bit overflow and
// divide/modulus-by-zero rules.
//
// Grounded on the teacher's internal/interp/runtime value hierarchy
// (variant.go, primitives.go) for the "tagged struct implementing a small
// Value interface" shape, and on internal/types/type_system.go for the
// reflective Type handle concept — generalized here from DWScript's
// class/record type graph to CEL's flat, stable type-name registry.
package types

import "fmt"

// Value is the tagged sum over every CEL runtime value kind. Concrete
// implementations are immutable once constructed (spec.md §3 Lifecycle).
type Value interface {
	// Kind reports which CEL type this value belongs to.
	Kind() Kind
	// String renders the value the way CEL's `string()` conversion or a
	// debug dump would.
	String() string
	// CELType returns the reflective Type handle for this value's kind,
	// the result of the `type()` builtin (spec.md §4.1).
	CELType() *TypeValue
}

// Kind enumerates CEL's value kinds (spec.md §3).
type Kind int

const (
	KindInt Kind = iota
	KindUint
	KindDouble
	KindBool
	KindString
	KindBytes
	KindNull
	KindDuration
	KindTimestamp
	KindList
	KindMap
	KindType
	KindMessage
	KindFunction
	KindError
)

var kindNames = map[Kind]string{
	KindInt:       "int",
	KindUint:      "uint",
	KindDouble:    "double",
	KindBool:      "bool",
	KindString:    "string",
	KindBytes:     "bytes",
	KindNull:      "null_type",
	KindDuration:  "duration",
	KindTimestamp: "timestamp",
	KindList:      "list",
	KindMap:       "map",
	KindType:      "type",
	KindMessage:   "message",
	KindFunction:  "function",
	KindError:     "error",
}

// String returns the stable type name used by the `type()` builtin
// (spec.md §4.1): "int", "uint", "double", "string", "bytes", "bool",
// "null_type", "list", "map", "type", plus message-type names.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TypeValue is the reflective handle returned by `type()`. Types are
// themselves values (spec.md §4.1): a TypeValue compares equal to another
// TypeValue with the same Name.
type TypeValue struct {
	Name string
	Of   Kind
}

func (t *TypeValue) Kind() Kind      { return KindType }
func (t *TypeValue) String() string  { return t.Name }
func (t *TypeValue) CELType() *TypeValue {
	return &TypeValue{Name: "type", Of: KindType}
}

// NewType constructs the TypeValue for a base Kind.
func NewType(k Kind) *TypeValue {
	return &TypeValue{Name: k.String(), Of: k}
}

// NewMessageType constructs the TypeValue naming a Message's registered
// type name (e.g. "google.protobuf.Struct" style dotted names).
func NewMessageType(name string) *TypeValue {
	return &TypeValue{Name: name, Of: KindMessage}
}

// Equal reports whether two TypeValues name the same type.
func (t *TypeValue) Equal(other *TypeValue) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Name == other.Name
}

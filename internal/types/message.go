package types

import (
	"strings"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// FieldDescriptor describes one field of a Message's schema.
type FieldDescriptor struct {
	Name     string
	Zero     Value // the proto3 zero value for this field's type
	Singular bool  // true for scalar fields (presence-tracked), false for repeated/map
}

// MessageDescriptor is the schema for a Message type: its registered name
// and field list. Host applications register descriptors through
// pkg/cel.Environment; for a message literal whose type name has no
// registered descriptor, the evaluator and planner synthesize an ad-hoc one
// from the literal's own fields.
type MessageDescriptor struct {
	TypeName string
	Fields   []FieldDescriptor
}

// Message is CEL's structured record value (spec.md §3, §4.4). Unlike a
// Map, Message field access is schema-driven and tracks explicit presence
// separately from the field's zero value, resolving the open question in
// spec.md §9 about proto3 has() on singular primitives (see DESIGN.md
// decision 2): a field is "set" iff it was explicitly assigned, not
// whenever its value happens to differ from the type's zero value.
type Message struct {
	Descriptor *MessageDescriptor
	values     map[string]Value
	present    map[string]bool
}

// NewMessage constructs an empty Message for the given descriptor.
func NewMessage(desc *MessageDescriptor) *Message {
	return &Message{Descriptor: desc, values: map[string]Value{}, present: map[string]bool{}}
}

func (*Message) Kind() Kind { return KindMessage }

func (m *Message) CELType() *TypeValue {
	if m.Descriptor == nil {
		return NewMessageType("message")
	}
	return NewMessageType(m.Descriptor.TypeName)
}

func (m *Message) String() string {
	var sb strings.Builder
	if m.Descriptor != nil {
		sb.WriteString(m.Descriptor.TypeName)
	}
	sb.WriteByte('{')
	first := true
	for _, f := range m.fields() {
		if v, ok := m.values[f.Name]; ok {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(v.String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m *Message) fields() []FieldDescriptor {
	if m.Descriptor == nil {
		return nil
	}
	return m.Descriptor.Fields
}

func (m *Message) field(name string) (FieldDescriptor, bool) {
	for _, f := range m.fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Set assigns a field value and marks it explicitly present.
func (m *Message) Set(name string, v Value) *cerr.Error {
	if _, ok := m.field(name); !ok {
		return cerr.NoSuchField()
	}
	m.values[name] = v
	m.present[name] = true
	return nil
}

// Get implements `a.b` field selection on a Message (spec.md §4.4): returns
// the zero value for an unset singular field, nil for an unset singular
// message field, and "no such field" for an unknown name.
func (m *Message) Get(name string) (Value, *cerr.Error) {
	fd, ok := m.field(name)
	if !ok {
		return nil, cerr.NoSuchField()
	}
	if v, set := m.values[name]; set {
		return v, nil
	}
	return fd.Zero, nil
}

// IsSet reports whether a field was explicitly assigned, the predicate
// behind has(e.f) for Message operands (spec.md §4.4, §9).
func (m *Message) IsSet(name string) (bool, *cerr.Error) {
	if _, ok := m.field(name); !ok {
		return false, cerr.NoSuchField()
	}
	return m.present[name], nil
}

// Function is CEL's callable handle value (spec.md §3): a named Go
// function usable as a first-class value (e.g. returned by a host
// extension, or compared by identity/name).
type Function struct {
	Name string
	Impl func(args []Value) Value
}

func (*Function) Kind() Kind          { return KindFunction }
func (f *Function) String() string    { return "function(" + f.Name + ")" }
func (*Function) CELType() *TypeValue { return NewType(KindFunction) }

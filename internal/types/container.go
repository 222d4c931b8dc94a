package types

import (
	"strings"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// List is CEL's ordered, heterogeneous container (spec.md §3, §4.1).
type List struct {
	Elements []Value
}

func NewList(elements []Value) *List { return &List{Elements: elements} }

func (*List) Kind() Kind       { return KindList }
func (*List) CELType() *TypeValue { return NewType(KindList) }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Size returns the number of elements.
func (l *List) Size() Int { return Int(len(l.Elements)) }

// Get implements 0-based list indexing (spec.md §4.4): negative or
// out-of-range indices produce "invalid_argument".
func (l *List) Get(index int64) (Value, *cerr.Error) {
	if index < 0 || index >= int64(len(l.Elements)) {
		return nil, cerr.InvalidArgument()
	}
	return l.Elements[index], nil
}

// mapPair is one entry of a Map, kept in insertion order so macro
// iteration and String() are stable within a single evaluation (spec.md §5;
// see DESIGN.md "Map key ordering for macro iteration").
type mapPair struct {
	key   Value
	value Value
}

// Map is CEL's container with hashable keys (spec.md §3, §4.1). Backed by
// an insertion-ordered slice of pairs rather than a Go map, so iteration
// order is deterministic within one evaluation even though CEL does not
// promise cross-evaluation stability.
type Map struct {
	pairs []mapPair
}

// NewMap builds an empty Map.
func NewMap() *Map { return &Map{} }

func (*Map) Kind() Kind       { return KindMap }
func (*Map) CELType() *TypeValue { return NewType(KindMap) }

func (m *Map) String() string {
	parts := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		parts[i] = p.key.String() + ": " + p.value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Size returns the number of entries.
func (m *Map) Size() Int { return Int(len(m.pairs)) }

// Insert adds key/value, failing if key already exists (spec.md §4.1: "Maps
// fail at construction on duplicate keys").
func (m *Map) Insert(key, value Value) *cerr.Error {
	hk, err := hashKey(key)
	if err != nil {
		return err
	}
	for _, p := range m.pairs {
		pk, _ := hashKey(p.key)
		if pk == hk {
			return cerr.Newf(cerr.KindInvalidArgument, "duplicate map key: %s", key.String())
		}
	}
	m.pairs = append(m.pairs, mapPair{key: key, value: value})
	return nil
}

// Get looks up key, returning a "no such key" error on miss and
// "unsupported key type" on an unhashable key (spec.md §4.4).
func (m *Map) Get(key Value) (Value, *cerr.Error) {
	hk, err := hashKey(key)
	if err != nil {
		return nil, err
	}
	for _, p := range m.pairs {
		pk, _ := hashKey(p.key)
		if pk == hk {
			return p.value, nil
		}
	}
	return nil, cerr.NoSuchKey()
}

// Contains reports whether key is present, per the `in` membership
// operator's Map case (spec.md §4.4).
func (m *Map) Contains(key Value) (Bool, *cerr.Error) {
	_, err := m.Get(key)
	if err != nil {
		if err.Kind == cerr.KindNoSuchKey {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Pairs returns the entries in insertion order, for macro iteration.
func (m *Map) Pairs() []struct {
	Key   Value
	Value Value
} {
	out := make([]struct {
		Key   Value
		Value Value
	}, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = struct {
			Key   Value
			Value Value
		}{p.key, p.value}
	}
	return out
}

// hashKey produces a comparable Go value for a CEL map key. Only scalar
// kinds are hashable; List, Map, Message, Function, Null, and Type keys are
// rejected with "unsupported key type" (spec.md §3: "keys must be
// hashable").
func hashKey(key Value) (any, *cerr.Error) {
	switch k := key.(type) {
	case Int:
		return k, nil
	case Uint:
		return k, nil
	case Double:
		return k, nil
	case Bool:
		return k, nil
	case String:
		return k, nil
	case Bytes:
		return string(k), nil
	default:
		return nil, cerr.UnsupportedKeyType()
	}
}

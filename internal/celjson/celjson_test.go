package celjson

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/types"
)

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		doc  string
		want types.Value
	}{
		{"null", types.NullValue},
		{"true", types.Bool(true)},
		{"false", types.Bool(false)},
		{"1.5", types.Double(1.5)},
		{`"hi"`, types.String("hi")},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			got, err := Decode(tt.doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Decode(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode("{not json"); err == nil {
		t.Fatal("want error for invalid JSON document")
	}
}

func TestDecodeObjectAndArray(t *testing.T) {
	v, err := Decode(`{"a": [1, 2, "x"], "b": null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(*types.Map)
	if !ok {
		t.Fatalf("want *types.Map, got %T", v)
	}
	a, err := m.Get(types.String("a"))
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	list, ok := a.(*types.List)
	if !ok || list.Size() != 3 {
		t.Fatalf("want a 3-element list, got %v", a)
	}
	if list.Elements[2] != types.String("x") {
		t.Fatalf("want third element 'x', got %v", list.Elements[2])
	}
}

func TestDecodeAt(t *testing.T) {
	v, err := DecodeAt(`{"a": {"b": 42}}`, "a.b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != types.Double(42) {
		t.Fatalf("want 42, got %v", v)
	}

	if _, err := DecodeAt(`{"a": 1}`, "missing.path"); err == nil {
		t.Fatal("want error for a path that does not exist")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := types.NewMap()
	if err := m.Insert(types.String("name"), types.String(`quote " and \ backslash`)); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := m.Insert(types.String("items"), types.NewList([]types.Value{types.Int(1), types.Int(2)})); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	doc, encErr := Encode(m)
	if encErr != nil {
		t.Fatalf("unexpected encode error: %v", encErr)
	}

	back, decErr := Decode(doc)
	if decErr != nil {
		t.Fatalf("re-decoding encoded JSON failed: %v (doc: %s)", decErr, doc)
	}
	backMap, ok := back.(*types.Map)
	if !ok {
		t.Fatalf("want *types.Map after round trip, got %T", back)
	}
	name, err := backMap.Get(types.String("name"))
	if err != nil || name != types.String(`quote " and \ backslash`) {
		t.Fatalf("round-tripped name mismatch: %v, err=%v", name, err)
	}
}

func TestEncodeUnsupportedKind(t *testing.T) {
	fn := &types.Function{Name: "f"}
	if _, err := Encode(fn); err == nil {
		t.Fatal("want error encoding a Function value as JSON")
	}
}

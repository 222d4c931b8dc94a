// Package celjson binds CEL Values to JSON text, the domain-stack
// counterpart of the teacher's internal/jsonvalue package. Where the
// teacher hand-rolls a tagged Value tree over encoding/json, this package
// parses with tidwall/gjson and serializes with tidwall/sjson, since
// gjson's no-allocation-on-read Result walk is a closer match to CEL's
// read-mostly "bind external data into an Activation" use (spec.md's
// JSON domain-stack entry) than unmarshaling into interface{} would be.
package celjson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// Decode parses a JSON document into a CEL Value tree: objects become
// *types.Map (string keys), arrays become *types.List, numbers become
// types.Double (JSON has no integer/float distinction, spec.md §3 "no
// implicit numeric widening" applies only once the value is already a CEL
// Value), and JSON null becomes types.NullValue.
func Decode(document string) (types.Value, *cerr.Error) {
	if !gjson.Valid(document) {
		return nil, cerr.New(cerr.KindInvalidArgument, "invalid JSON document")
	}
	return fromResult(gjson.Parse(document)), nil
}

// DecodeAt parses the value at a gjson path expression within document,
// the adapter's equivalent of a single ObjectGet/ArrayGet traversal in the
// teacher's jsonvalue tree, but resolved in one gjson query instead of a
// chain of Go method calls.
func DecodeAt(document, path string) (types.Value, *cerr.Error) {
	if !gjson.Valid(document) {
		return nil, cerr.New(cerr.KindInvalidArgument, "invalid JSON document")
	}
	res := gjson.Get(document, path)
	if !res.Exists() {
		return nil, cerr.NoSuchKey()
	}
	return fromResult(res), nil
}

func fromResult(res gjson.Result) types.Value {
	switch res.Type {
	case gjson.Null:
		return types.NullValue
	case gjson.False:
		return types.Bool(false)
	case gjson.True:
		return types.Bool(true)
	case gjson.Number:
		return types.Double(res.Num)
	case gjson.String:
		return types.String(res.Str)
	case gjson.JSON:
		if res.IsArray() {
			var elems []types.Value
			res.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromResult(v))
				return true
			})
			return types.NewList(elems)
		}
		m := types.NewMap()
		res.ForEach(func(k, v gjson.Result) bool {
			m.Insert(types.String(k.String()), fromResult(v))
			return true
		})
		return m
	}
	return types.NullValue
}

// Encode renders a CEL Value as a JSON document, walking the Value tree
// and threading sjson.SetRaw calls the way the teacher's MarshalJSON
// (jsonvalue's encoding/json integration) walks its own tree, but emitting
// text directly instead of building an intermediate tree first.
func Encode(v types.Value) (string, *cerr.Error) {
	return encodeValue(v)
}

// quoteJSON produces a correctly escaped JSON string literal by round-
// tripping through sjson/gjson rather than hand-rolling escape rules.
func quoteJSON(s string) (string, *cerr.Error) {
	doc, err := sjson.Set(`{}`, "v", s)
	if err != nil {
		return "", cerr.Newf(cerr.KindUnknown, "json encode: %v", err)
	}
	return gjson.Get(doc, "v").Raw, nil
}

func encodeValue(v types.Value) (string, *cerr.Error) {
	switch x := v.(type) {
	case types.Null:
		return "null", nil
	case types.Bool:
		if x {
			return "true", nil
		}
		return "false", nil
	case types.Int:
		return fmt.Sprintf("%d", int64(x)), nil
	case types.Uint:
		return fmt.Sprintf("%d", uint64(x)), nil
	case types.Double:
		return fmt.Sprintf("%g", float64(x)), nil
	case types.String:
		return quoteJSON(string(x))
	case types.Bytes:
		return quoteJSON(string(x))
	case *types.List:
		doc := "[]"
		for i, e := range x.Elements {
			enc, err := encodeValue(e)
			if err != nil {
				return "", err
			}
			var setErr error
			doc, setErr = sjson.SetRaw(doc, fmt.Sprintf("%d", i), enc)
			if setErr != nil {
				return "", cerr.Newf(cerr.KindUnknown, "json encode: %v", setErr)
			}
		}
		return doc, nil
	case *types.Map:
		doc := "{}"
		for _, pr := range x.Pairs() {
			key, ok := pr.Key.(types.String)
			if !ok {
				return "", cerr.New(cerr.KindInvalidArgument, "json encode: map key must be string")
			}
			enc, err := encodeValue(pr.Value)
			if err != nil {
				return "", err
			}
			var setErr error
			doc, setErr = sjson.SetRaw(doc, string(key), enc)
			if setErr != nil {
				return "", cerr.Newf(cerr.KindUnknown, "json encode: %v", setErr)
			}
		}
		return doc, nil
	}
	return "", cerr.Newf(cerr.KindInvalidArgument, "value of kind %s is not JSON-representable", v.Kind())
}

package celfunc

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/types"
)

// TestInLaterMatchWinsOverEarlierTypeMismatch is the regression for
// spec.md §4.4's `in` semantics (and the Python reference's operator_in,
// original_source/src/celpy/evaluation.py): a later element that equals
// the needle must produce `true` even if an earlier element's comparison
// against the needle raised a type-mismatch error.
func TestInLaterMatchWinsOverEarlierTypeMismatch(t *testing.T) {
	haystack := types.NewList([]types.Value{
		types.String("not a number"),
		types.Int(3),
	})
	got := fnIn([]types.Value{types.Int(3), haystack})
	if got != types.Bool(true) {
		t.Fatalf("want true (later element matches), got %v", got)
	}
}

// TestInNoMatchReportsFirstError: when nothing matches, the scan's first
// type-mismatch error is still surfaced instead of a bare `false`.
func TestInNoMatchReportsFirstError(t *testing.T) {
	haystack := types.NewList([]types.Value{
		types.String("not a number"),
		types.String("also not a number"),
	})
	got := fnIn([]types.Value{types.Int(3), haystack})
	if !types.IsError(got) {
		t.Fatalf("want an error when every comparison mismatches and nothing equals the needle, got %v", got)
	}
}

func TestInNoMismatchesNoMatch(t *testing.T) {
	haystack := types.NewList([]types.Value{types.Int(1), types.Int(2)})
	got := fnIn([]types.Value{types.Int(3), haystack})
	if got != types.Bool(false) {
		t.Fatalf("want false when nothing matches and nothing errors, got %v", got)
	}
}

func TestInMap(t *testing.T) {
	m := types.NewMap()
	if err := m.Insert(types.String("k"), types.Int(1)); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	got := fnIn([]types.Value{types.String("k"), m})
	if got != types.Bool(true) {
		t.Fatalf("want true for present map key, got %v", got)
	}
	got = fnIn([]types.Value{types.String("missing"), m})
	if got != types.Bool(false) {
		t.Fatalf("want false for absent map key, got %v", got)
	}
}

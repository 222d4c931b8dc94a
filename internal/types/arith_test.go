package types

import (
	"math"
	"testing"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// TestOverflowClosure exercises spec.md §8's overflow-closure property:
// int/uint arithmetic stays within range or returns a distinguished
// Overflow error, it never silently wraps (unlike plain Go int64/uint64).
func TestOverflowClosure(t *testing.T) {
	tests := []struct {
		name    string
		run     func() (Value, *cerr.Error)
		wantErr bool
		want    Value
	}{
		{"add within range", func() (Value, *cerr.Error) { return AddInt(1, 2) }, false, Int(3)},
		{"add overflow", func() (Value, *cerr.Error) { return AddInt(math.MaxInt64, 1) }, true, nil},
		{"add underflow", func() (Value, *cerr.Error) { return AddInt(math.MinInt64, -1) }, true, nil},
		{"sub overflow", func() (Value, *cerr.Error) { return SubInt(math.MinInt64, 1) }, true, nil},
		{"mul overflow", func() (Value, *cerr.Error) { return MulInt(math.MaxInt64, 2) }, true, nil},
		{"uint add overflow", func() (Value, *cerr.Error) { return AddUint(math.MaxUint64, 1) }, true, nil},
		{"uint sub underflow", func() (Value, *cerr.Error) { return SubUint(0, 1) }, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want overflow error, got value %v", got)
				}
				if err.Kind != cerr.KindOverflow {
					t.Fatalf("want KindOverflow, got %v", err.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

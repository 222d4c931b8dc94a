package types

// Truthy reports whether v is CEL's Bool true. Short-circuit operators
// (spec.md §4.4) only treat Bool values as truthy/falsey signals; any
// other kind reaching a condition position is a "no such overload" at the
// evaluator layer, not decided here.
func Truthy(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// Package activation implements CEL's Activation (spec.md §3, §4.3): a
// composite of a NameContainer chain for variables/annotations plus a
// function table layered as user overrides over a fixed base set, with an
// optional package prefix driving name resolution.
//
// Grounded on the teacher's evaluator Context/env_adapter pairing
// (internal/interp/evaluator/context.go, env_adapter.go), which likewise
// bundles a variable scope with a function-lookup surface the evaluator
// consumes through a narrow interface.
package activation

import (
	"github.com/cwbudde/go-cel/internal/namespace"
	"github.com/cwbudde/go-cel/internal/types"
)

// Function is a host or base-table callable: given already-evaluated
// arguments, returns a Value or a types.ErrorValue (spec.md §4.3).
type Function func(args []types.Value) types.Value

// Activation holds a root NameContainer for variables/type annotations, a
// two-layer function table (user overrides over base), and an optional
// package prefix used by name resolution (spec.md §3).
type Activation struct {
	Names    *namespace.NameContainer
	Package  string
	base     map[string]Function
	override map[string]Function
	parent   *Activation
}

// New creates a root Activation with the given package prefix and base
// function table. Base is typically internal/celfunc.BaseTable().
func New(pkg string, base map[string]Function) *Activation {
	return &Activation{
		Names:    namespace.New(),
		Package:  pkg,
		base:     base,
		override: map[string]Function{},
	}
}

// BasedOn creates a new Activation whose parent chain includes base,
// matching spec.md §3 Lifecycle: "An Activation may be based-on another,
// producing a parent chain."
func BasedOn(base *Activation) *Activation {
	return &Activation{
		Names:    namespace.New(),
		Package:  base.Package,
		base:     base.base,
		override: map[string]Function{},
		parent:   base,
	}
}

// Clone shallow-copies the NameContainer and function table (spec.md §4.3).
func (a *Activation) Clone() *Activation {
	names := new(namespace.NameContainer)
	*names = *a.Names // shallow: shares the same entries map and nested containers
	cloned := &Activation{
		Names:    names,
		Package:  a.Package,
		base:     a.base,
		override: copyFuncMap(a.override),
		parent:   a.parent,
	}
	return cloned
}

func copyFuncMap(m map[string]Function) map[string]Function {
	out := make(map[string]Function, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NewChildFrame creates a nested Activation for one macro invocation
// (spec.md §3, §4.3): a child NameContainer parented to the current one
// with bindVar bound to bindVal, reusing the same function table and
// package.
func (a *Activation) NewChildFrame(bindVar string, bindVal types.Value) *Activation {
	child := a.Names.NewChild()
	child.LoadValue(bindVar, bindVal)
	return &Activation{
		Names:    child,
		Package:  a.Package,
		base:     a.base,
		override: a.override,
		parent:   a.parent,
	}
}

// WithFunctions returns an Activation with extra user-supplied functions
// layered over the base table (spec.md §4.3 "user-supplied overrides").
// This is the host extension point spec.md §9 calls for in place of a
// thread-global filter object.
func (a *Activation) WithFunctions(extra map[string]Function) *Activation {
	merged := copyFuncMap(a.override)
	for k, v := range extra {
		merged[k] = v
	}
	return &Activation{
		Names:    a.Names,
		Package:  a.Package,
		base:     a.base,
		override: merged,
		parent:   a.parent,
	}
}

// LookupFunction resolves name, preferring a user override over the base
// table (spec.md §4.3).
func (a *Activation) LookupFunction(name string) (Function, bool) {
	if fn, ok := a.override[name]; ok {
		return fn, true
	}
	if fn, ok := a.base[name]; ok {
		return fn, true
	}
	return nil, false
}

// Resolve looks up an identifier using the longest-prefix search over
// Names (spec.md §4.2 Resolve-name), trying self then each parent in the
// activation chain, the way NameContainer.ResolveName tries each scope in
// its own parent chain but now also across Activation.parent boundaries
// (for nested macro frames whose NameContainer chain has already ended at
// the macro's bind point, spec.md §3 nested-activation lifecycle).
func (a *Activation) Resolve(name string, skipPackage bool) (*namespace.Referent, bool) {
	for act := a; act != nil; act = act.parent {
		if ref, ok := act.Names.ResolveName(act.Package, name, skipPackage); ok {
			return ref, true
		}
	}
	return nil, false
}

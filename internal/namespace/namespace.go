// Package namespace implements CEL's NameContainer / Referent model
// (spec.md §3, §4.2): a nested map from identifier to Referent supporting
// longest-prefix name resolution over dotted packages.
//
// Grounded on the teacher's internal/interp/runtime/environment.go symbol
// table (a map-backed scope with an outer pointer for nested lookup),
// generalized from a flat variable scope chain into a nested, dotted
// namespace tree — the "a.b.c" path is walked/created as a chain of
// NameContainers rather than stored as a single flat key.
package namespace

import (
	"strings"

	"github.com/cwbudde/go-cel/internal/types"
)

// maxResolveDepth bounds resolve-name's parent-chain walk defensively
// (spec.md §9: "No cycles exist by construction; use a bounded depth
// counter during resolve_name as a defensive measure").
const maxResolveDepth = 1024

// Referent is the tuple (annotation, container, value) stored at each name
// in a NameContainer (spec.md §3). Each field is independently optional.
type Referent struct {
	Annotation any
	Container  *NameContainer
	Value      types.Value
}

// hasContainer reports whether this referent resolves further through a
// nested NameContainer (preferred over Value, per spec.md §3).
func (r *Referent) hasContainer() bool { return r != nil && r.Container != nil }

// NameContainer is a mapping from identifier to Referent, with an optional
// parent pointer (spec.md §3).
type NameContainer struct {
	entries map[string]*Referent
	parent  *NameContainer
}

// New creates an empty, parentless NameContainer.
func New() *NameContainer {
	return &NameContainer{entries: map[string]*Referent{}}
}

// NewChild creates a NameContainer parented to nc, used for macro frame
// nesting (spec.md §3 Activation lifecycle).
func (nc *NameContainer) NewChild() *NameContainer {
	return &NameContainer{entries: map[string]*Referent{}, parent: nc}
}

// Parent returns nc's parent, or nil at the root.
func (nc *NameContainer) Parent() *NameContainer { return nc.parent }

func splitPath(dotted string) []string {
	return strings.Split(dotted, ".")
}

func (nc *NameContainer) entry(name string) *Referent {
	if r, ok := nc.entries[name]; ok {
		return r
	}
	r := &Referent{}
	nc.entries[name] = r
	return r
}

// LoadAnnotation walks/creates the chain for a dotted path, storing
// annotation at the leaf's Annotation field (spec.md §4.2 "Load-
// annotations"). Never overwrites an existing annotation silently:
// repeated loads at the same leaf keep the newer annotation, matching
// "multiple loads at the same leaf are merged by keeping the newer one's
// annotation."
func (nc *NameContainer) LoadAnnotation(dotted string, annotation any) {
	path := splitPath(dotted)
	cur := nc
	for i, seg := range path {
		ref := cur.entry(seg)
		if i == len(path)-1 {
			ref.Annotation = annotation
			return
		}
		if ref.Container == nil {
			ref.Container = cur.NewChild()
		}
		cur = ref.Container
	}
}

// LoadValue walks/creates the chain for a dotted path, storing val at the
// leaf's Value field, leaving any existing Annotation untouched (spec.md
// §4.2 "Load-values").
func (nc *NameContainer) LoadValue(dotted string, val types.Value) {
	path := splitPath(dotted)
	cur := nc
	for i, seg := range path {
		ref := cur.entry(seg)
		if i == len(path)-1 {
			ref.Value = val
			return
		}
		if ref.Container == nil {
			ref.Container = cur.NewChild()
		}
		cur = ref.Container
	}
}

// valueAsContainer reports whether v behaves like a namespace for the
// purpose of FindName recursion (spec.md §4.2: "else into self[h].value
// when it is a container-like value (Map, Message, or package-like)"),
// returning a lookup function for the next path segment.
func valueAsContainer(v types.Value) (lookup func(name string) (types.Value, bool), ok bool) {
	switch val := v.(type) {
	case *types.Map:
		return func(name string) (types.Value, bool) {
			found, err := val.Get(types.String(name))
			if err != nil {
				return nil, false
			}
			return found, true
		}, true
	case *types.Message:
		return func(name string) (types.Value, bool) {
			found, err := val.Get(name)
			if err != nil {
				return nil, false
			}
			return found, true
		}, true
	}
	return nil, false
}

// FindName performs the single-pass lookup described in spec.md §4.2
// ("Find-name"): looks up path[0] locally; if there's more path, recurses
// into the child NameContainer when present, else into a container-like
// Value, else fails.
func (nc *NameContainer) FindName(path []string) (*Referent, bool) {
	if len(path) == 0 {
		return nil, false
	}
	ref, ok := nc.entries[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return ref, true
	}
	rest := path[1:]
	if ref.hasContainer() {
		return ref.Container.FindName(rest)
	}
	if lookup, ok := valueAsContainer(ref.Value); ok {
		return findInValueChain(lookup, rest)
	}
	return nil, false
}

// findInValueChain continues a FindName walk once resolution has dropped
// into a container-like Value (a Map or Message acting as a namespace).
func findInValueChain(lookup func(string) (types.Value, bool), path []string) (*Referent, bool) {
	v, ok := lookup(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return &Referent{Value: v}, true
	}
	nextLookup, ok := valueAsContainer(v)
	if !ok {
		return nil, false
	}
	return findInValueChain(nextLookup, path[1:])
}

// ResolveName implements spec.md §4.2 "Resolve-name (search)": forms
// candidate paths from longest (package-prefixed) to shortest (bare name),
// walking self and then each parent in the chain for each candidate, and
// returns the first match at the longest candidate. skipPackage implements
// the leading-dot escape (spec.md §4.2): when true, only `[name]` from the
// root scope is tried.
func (nc *NameContainer) ResolveName(pkg, name string, skipPackage bool) (*Referent, bool) {
	candidates := candidatePaths(pkg, name, skipPackage)
	depth := 0
	for _, cand := range candidates {
		for scope := nc; scope != nil; scope = scope.parent {
			depth++
			if depth > maxResolveDepth {
				return nil, false
			}
			if ref, ok := scope.FindName(cand); ok {
				return ref, true
			}
		}
	}
	return nil, false
}

// candidatePaths builds [p1..pk, n], [p1..pk-1, n], ..., [n] for package
// prefix pkg and name n (spec.md §4.2). The leading-dot escape collapses
// this to just [n].
func candidatePaths(pkg, name string, skipPackage bool) [][]string {
	if skipPackage || pkg == "" {
		return [][]string{{name}}
	}
	segs := splitPath(pkg)
	candidates := make([][]string, 0, len(segs)+1)
	for k := len(segs); k >= 0; k-- {
		cand := make([]string, 0, k+1)
		cand = append(cand, segs[:k]...)
		cand = append(cand, name)
		candidates = append(candidates, cand)
	}
	return candidates
}

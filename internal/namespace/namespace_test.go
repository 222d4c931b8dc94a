package namespace

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/types"
)

// TestResolveNameLongestPrefix exercises spec.md §8's longest-prefix name
// resolution property: given a package prefix "a.b" and bare name "c",
// a binding at the fully package-qualified path "a.b.c" wins over shorter
// candidates "a.c" and "c" when all three are loaded.
func TestResolveNameLongestPrefix(t *testing.T) {
	root := New()
	root.LoadValue("a.b.c", types.Int(3))
	root.LoadValue("a.c", types.Int(2))
	root.LoadValue("c", types.Int(1))

	ref, ok := root.ResolveName("a.b", "c", false)
	if !ok {
		t.Fatal("expected c to resolve under package a.b")
	}
	if ref.Value != types.Int(3) {
		t.Fatalf("want longest candidate a.b.c = 3, got %v", ref.Value)
	}
}

func TestResolveNameFallsBackToShorterCandidate(t *testing.T) {
	root := New()
	root.LoadValue("a.c", types.Int(2))
	root.LoadValue("c", types.Int(1))

	// a.b.c isn't loaded; the search must fall through to the next
	// shorter candidate, a.c, rather than stopping at the longest one.
	ref, ok := root.ResolveName("a.b", "c", false)
	if !ok {
		t.Fatal("expected c to resolve via the a.c fallback candidate")
	}
	if ref.Value != types.Int(2) {
		t.Fatalf("want fallback candidate a.c = 2, got %v", ref.Value)
	}
}

func TestResolveNamePackagePrefixPreferredOverBareName(t *testing.T) {
	root := New()
	root.LoadValue("pkg.x", types.Int(100))
	root.LoadValue("x", types.Int(1))

	ref, ok := root.ResolveName("pkg", "x", false)
	if !ok {
		t.Fatal("expected x to resolve under package pkg")
	}
	if ref.Value != types.Int(100) {
		t.Fatalf("want package-qualified pkg.x = 100 preferred over bare x, got %v", ref.Value)
	}
}

func TestResolveNameLeadingDotSkipsPackage(t *testing.T) {
	root := New()
	root.LoadValue("pkg.x", types.Int(100))
	root.LoadValue("x", types.Int(1))

	ref, ok := root.ResolveName("pkg", "x", true)
	if !ok {
		t.Fatal("expected bare x to resolve with skipPackage")
	}
	if ref.Value != types.Int(1) {
		t.Fatalf("want leading-dot escape to resolve bare x = 1, got %v", ref.Value)
	}
}

func TestResolveNameSearchesParentChain(t *testing.T) {
	parent := New()
	parent.LoadValue("c", types.Int(9))
	child := parent.NewChild()

	ref, ok := child.ResolveName("", "c", false)
	if !ok {
		t.Fatal("expected c to resolve through the parent NameContainer")
	}
	if ref.Value != types.Int(9) {
		t.Fatalf("want c = 9 from parent scope, got %v", ref.Value)
	}
}

func TestFindNameThroughMapValue(t *testing.T) {
	root := New()
	m := types.NewMap()
	if err := m.Insert(types.String("y"), types.Int(7)); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	root.LoadValue("a", m)

	ref, ok := root.FindName([]string{"a", "y"})
	if !ok {
		t.Fatal("expected a.y to resolve through the Map value")
	}
	if ref.Value != types.Int(7) {
		t.Fatalf("want a.y = 7, got %v", ref.Value)
	}
}

package strata

import "testing"

func named(kind string, bounds Rect) *Component {
	return NewComponent(kind, WithBounds(bounds))
}

func stackKinds(z *zorder) []string {
	kinds := make([]string, len(z.stack))
	for i, c := range z.stack {
		kinds[i] = c.kind
	}
	return kinds
}

func assertStack(t *testing.T, z *zorder, want ...string) {
	t.Helper()
	got := stackKinds(z)
	if len(got) != len(want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack = %v, want %v", got, want)
		}
	}
}

func TestRaisePreservesSetAndOrder(t *testing.T) {
	a := named("a", Rect{})
	b := named("b", Rect{})
	c := named("c", Rect{})
	d := named("d", Rect{})

	z := &zorder{}
	for _, comp := range []*Component{a, b, c, d} {
		if err := z.add(comp); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	// Raising the middle rotates the tail and keeps everyone else in
	// relative order.
	z.raise(b)
	assertStack(t, z, "a", "c", "d", "b")

	z.raise(a)
	assertStack(t, z, "c", "d", "b", "a")

	// Raising the topmost is a no-op.
	z.raise(a)
	assertStack(t, z, "c", "d", "b", "a")

	// Raising an unregistered component is a no-op.
	z.raise(named("ghost", Rect{}))
	assertStack(t, z, "c", "d", "b", "a")

	// Cardinality never changes, whatever the raise sequence.
	for _, comp := range []*Component{d, d, c, b, a, c} {
		z.raise(comp)
		if z.len() != 4 {
			t.Fatalf("len = %d after raise, want 4", z.len())
		}
		if z.stack[z.len()-1] != comp {
			t.Fatalf("raised %q is not topmost", comp.kind)
		}
	}
}

func TestRaiseSingleMember(t *testing.T) {
	a := named("a", Rect{})
	z := &zorder{}
	if err := z.add(a); err != nil {
		t.Fatalf("add: %v", err)
	}
	z.raise(a)
	assertStack(t, z, "a")
}

func TestHitTest(t *testing.T) {
	bottom := named("bottom", NewRect(0, 0, 20, 10))
	left := named("left", NewRect(2, 2, 5, 5))
	right := named("right", NewRect(10, 2, 5, 5))

	z := &zorder{}
	for _, c := range []*Component{bottom, left, right} {
		if err := z.add(c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	tests := []struct {
		name string
		x, y int
		want *Component
	}{
		{"inside left only", 3, 3, left},
		{"inside right only", 12, 4, right},
		{"inside bottom only", 8, 9, bottom},
		{"outside everything", 50, 50, nil},
		{"negative point", -1, 3, nil},
		{"left right edge inclusive", 7, 4, left},
		{"left bottom edge inclusive", 4, 7, left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.hitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("hitTest(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestOverlapScenario(t *testing.T) {
	// Three overlapping components raised A, B, C: the common point
	// resolves to C; raising A again moves it on top and the same point
	// resolves to A.
	a := named("a", NewRect(0, 0, 10, 10))
	b := named("b", NewRect(5, 0, 10, 10))
	c := named("c", NewRect(0, 5, 10, 10))

	z := &zorder{}
	for _, comp := range []*Component{a, b, c} {
		if err := z.add(comp); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	z.raise(a)
	z.raise(b)
	z.raise(c)

	// (6, 6) is inside all three.
	if got := z.hitTest(6, 6); got != c {
		t.Fatalf("hitTest after raising c = %v, want c", got)
	}

	z.raise(a)
	if got := z.hitTest(6, 6); got != a {
		t.Fatalf("hitTest after raising a = %v, want a", got)
	}
}

func TestRegistryCapacity(t *testing.T) {
	z := &zorder{}
	for i := 0; i < maxComponents; i++ {
		if err := z.add(named("c", Rect{})); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if err := z.add(named("overflow", Rect{})); err != ErrRegistryFull {
		t.Fatalf("add past capacity = %v, want ErrRegistryFull", err)
	}
}

func TestAddTreeAllOrNothing(t *testing.T) {
	z := &zorder{}
	for i := 0; i < maxComponents-1; i++ {
		if err := z.add(named("c", Rect{})); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	parent := named("parent", Rect{})
	child := named("child", Rect{})
	if err := parent.Append(child); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Two components, one slot: nothing may be registered.
	if err := z.addTree(parent); err != ErrRegistryFull {
		t.Fatalf("addTree = %v, want ErrRegistryFull", err)
	}
	if z.len() != maxComponents-1 {
		t.Fatalf("len = %d after failed addTree, want %d", z.len(), maxComponents-1)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	a := named("a", Rect{})
	b := named("b", Rect{})
	c := named("c", Rect{})

	z := &zorder{}
	for _, comp := range []*Component{a, b, c} {
		if err := z.add(comp); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	z.remove(b)
	assertStack(t, z, "a", "c")

	// Removing an absent component is a no-op.
	z.remove(b)
	assertStack(t, z, "a", "c")
}

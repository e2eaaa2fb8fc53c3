package strata

// maxComponents caps how many components can be attached at once. The
// stacking registry has a fixed capacity; blowing past it is a
// configuration error, not something to grow around.
const maxComponents = 64

// zorder tracks the stacking order of every attached component. Index 0 is
// the bottom of the stack and the last index is topmost. A component
// appears at most once.
type zorder struct {
	stack []*Component
}

func (z *zorder) len() int { return len(z.stack) }

// index returns c's slot, or -1 if c is not registered.
func (z *zorder) index(c *Component) int {
	for i, e := range z.stack {
		if e == c {
			return i
		}
	}
	return -1
}

// add registers c above everything else. The caller is responsible for
// checking capacity first when registering several components atomically.
func (z *zorder) add(c *Component) error {
	if len(z.stack) >= maxComponents {
		return ErrRegistryFull
	}
	if z.index(c) >= 0 {
		return nil
	}
	z.stack = append(z.stack, c)
	return nil
}

// addTree registers c and its descendants, parents before children so that
// children stack above them. If the subtree does not fit, nothing is
// registered.
func (z *zorder) addTree(c *Component) error {
	if len(z.stack)+countTree(c) > maxComponents {
		return ErrRegistryFull
	}
	var walk func(*Component)
	walk = func(n *Component) {
		z.stack = append(z.stack, n)
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(c)
	return nil
}

// remove unregisters c, preserving the relative order of the rest.
func (z *zorder) remove(c *Component) {
	i := z.index(c)
	if i < 0 {
		return
	}
	z.stack = append(z.stack[:i], z.stack[i+1:]...)
}

// removeTree unregisters c and its descendants.
func (z *zorder) removeTree(c *Component) {
	z.remove(c)
	for _, child := range c.children {
		z.removeTree(child)
	}
}

// raise moves c to the top of the stack with one cyclic rotation: every
// component that was above c shifts down a slot and c takes the top. The
// relative order of all other components is preserved. Raising the topmost
// component, an unregistered component, or within a stack of one is a no-op.
func (z *zorder) raise(c *Component) {
	i := z.index(c)
	if i < 0 || i == len(z.stack)-1 || len(z.stack) <= 1 {
		return
	}
	copy(z.stack[i:], z.stack[i+1:])
	z.stack[len(z.stack)-1] = c
}

// hitTest returns the topmost component whose bounds contain (x, y), or
// nil when the point lands on no component. Containment includes all four
// edges of the bounds.
func (z *zorder) hitTest(x, y int) *Component {
	for i := len(z.stack) - 1; i >= 0; i-- {
		if z.stack[i].bounds.Contains(x, y) {
			return z.stack[i]
		}
	}
	return nil
}

// countTree returns the number of components in the subtree rooted at c.
func countTree(c *Component) int {
	n := 1
	for _, child := range c.children {
		n += countTree(child)
	}
	return n
}

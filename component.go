package strata

import "fmt"

// Component is a node in the UI tree. It owns a rectangular region of the
// screen, an ordered list of children, and up to four optional handlers.
// A handler that is absent simply means the component does not participate
// in that operation.
//
// Components are not safe for concurrent use; the runtime dispatches all
// events and renders from a single goroutine.
type Component struct {
	kind     string
	bounds   Rect
	parent   *Component
	children []*Component
	rt       *Runtime

	onClick    func(*Component, MouseEvent) bool
	onKeypress func(*Component, KeyEvent) bool
	onRender   func(*Component, Screen)
	onResize   func(*Component, Rect)
}

// ComponentOption configures a Component at construction time.
type ComponentOption func(*Component)

// OnClick sets the mouse handler. Return true to consume the event, false
// to let it bubble to the parent.
func OnClick(fn func(*Component, MouseEvent) bool) ComponentOption {
	return func(c *Component) {
		c.onClick = fn
	}
}

// OnKeypress sets the keyboard handler. Return true to consume the event,
// false to let it bubble to the parent.
func OnKeypress(fn func(*Component, KeyEvent) bool) ComponentOption {
	return func(c *Component) {
		c.onKeypress = fn
	}
}

// OnRender sets the draw handler. It writes the component's content into
// the screen; children are drawn afterward, in order, on top.
func OnRender(fn func(*Component, Screen)) ComponentOption {
	return func(c *Component) {
		c.onRender = fn
	}
}

// OnResize sets the layout handler. It runs after the component's own
// bounds are updated and is responsible for calling Resize on each child
// with its sub-region.
func OnResize(fn func(*Component, Rect)) ComponentOption {
	return func(c *Component) {
		c.onResize = fn
	}
}

// WithBounds sets the component's initial bounds. Attached components get
// their bounds from the layout pass; this mainly serves detached use and
// tests.
func WithBounds(r Rect) ComponentOption {
	return func(c *Component) {
		c.bounds = r
	}
}

// NewComponent creates a detached component. The kind tag names what the
// component is ("statusbar", "editor") and shows up in debug output.
func NewComponent(kind string, opts ...ComponentOption) *Component {
	c := &Component{kind: kind}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind returns the component's kind tag.
func (c *Component) Kind() string { return c.kind }

// Bounds returns the component's current screen region.
func (c *Component) Bounds() Rect { return c.bounds }

// Parent returns the parent component, or nil for the root and for
// detached components.
func (c *Component) Parent() *Component { return c.parent }

// Children returns the ordered child list. The slice is owned by the
// component and must not be mutated.
func (c *Component) Children() []*Component { return c.children }

// Append adds children to this component. A child that already has a
// parent is rejected: components have exactly one owner. If this component
// is attached to a runtime, the new subtrees are registered in the
// stacking order above everything else; when they do not all fit, nothing
// is attached.
func (c *Component) Append(children ...*Component) error {
	for _, child := range children {
		if child == nil {
			return fmt.Errorf("append to %q: nil child", c.kind)
		}
		if child.parent != nil {
			return fmt.Errorf("append to %q: component %q already has a parent", c.kind, child.kind)
		}
		if child == c {
			return fmt.Errorf("append to %q: cannot append a component to itself", c.kind)
		}
	}

	if c.rt != nil {
		total := 0
		for _, child := range children {
			total += countTree(child)
		}
		if c.rt.zo.len()+total > maxComponents {
			return ErrRegistryFull
		}
	}

	for _, child := range children {
		child.parent = c
		c.children = append(c.children, child)
		if c.rt != nil {
			child.setRuntime(c.rt)
			// Capacity was checked above; addTree cannot fail here.
			_ = c.rt.zo.addTree(child)
		}
	}
	return nil
}

// Remove detaches the component from its parent and unregisters its whole
// subtree from the stacking order. Removing an already detached component
// is a no-op.
func (c *Component) Remove() {
	if c.parent == nil {
		return
	}
	siblings := c.parent.children
	for i, s := range siblings {
		if s == c {
			c.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	c.parent = nil
	if c.rt != nil {
		c.rt.zo.removeTree(c)
		c.setRuntime(nil)
	}
}

// Raise moves the component to the top of the stacking order. Components
// stacked above it each drop one slot; everything else keeps its relative
// order. Raising the topmost component is a no-op. Children are not moved:
// stacking is per component, not per subtree.
func (c *Component) Raise() {
	if c.rt == nil {
		return
	}
	c.rt.zo.raise(c)
}

// Resize sets the component's bounds and runs its layout handler, which
// recursively sizes the children. Without a handler the children keep
// their previous bounds.
func (c *Component) Resize(bounds Rect) {
	c.bounds = bounds
	if c.onResize != nil {
		c.onResize(c, bounds)
	}
}

// Render draws the component and then its children, in order, so later
// children paint over earlier ones.
func (c *Component) Render(scr Screen) {
	if c.onRender != nil {
		c.onRender(c, scr)
	}
	for _, child := range c.children {
		child.Render(scr)
	}
}

// setRuntime points the whole subtree at rt (or detaches it with nil).
func (c *Component) setRuntime(rt *Runtime) {
	c.rt = rt
	for _, child := range c.children {
		child.setRuntime(rt)
	}
}

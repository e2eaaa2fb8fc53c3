package strata

import "fmt"

// Rect is a rectangle in screen cells. X and Y are the top-left corner;
// Width and Height are dimensions.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) is inside the rectangle.
// All four edges count as inside: a point with x == r.X+r.Width or
// y == r.Y+r.Height is contained. Components that share a border both
// contain the boundary cells, and hit testing resolves the tie by
// stacking order.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Intersect returns the overlap of two rectangles, or an empty Rect if
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	width := right - x
	height := bottom - y
	if width <= 0 || height <= 0 {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// String formats the rectangle as "x,y wxh".
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Package core contains the fundamental geometric types shared by the
// layout engine and the rendering backends.
package core

// Point represents a 2D coordinate in character cells.
type Point struct {
	X, Y int
}

// Vec represents a 2D coordinate or offset in pixels.
type Vec struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in pixels.
// X, Y is the top-left corner; Y increases downward.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// OverlapsX reports whether the x-ranges of two rectangles intersect.
func (r Rect) OverlapsX(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right()
}

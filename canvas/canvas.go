// Package canvas implements a rune-matrix drawing surface used by the
// terminal rendering backend.
package canvas

import (
	"errors"
	"strings"

	"treedraw/core"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// BoxStyle defines the characters used to draw a rectangle.
type BoxStyle struct {
	TopLeft, TopRight       rune
	BottomLeft, BottomRight rune
	Horizontal, Vertical    rune
}

// UnicodeBoxStyle draws boxes with light box-drawing characters.
var UnicodeBoxStyle = BoxStyle{
	TopLeft: '┌', TopRight: '┐',
	BottomLeft: '└', BottomRight: '┘',
	Horizontal: '─', Vertical: '│',
}

// MatrixCanvas is a fixed-size grid of runes.
//
// Coordinate system: origin (0,0) top-left, X rightward, Y downward,
// all coordinates in character cells. Not safe for concurrent writes.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
}

// NewMatrixCanvas creates a canvas filled with spaces.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = make([]rune, width)
		for x := range matrix[y] {
			matrix[y][x] = ' '
		}
	}
	return &MatrixCanvas{matrix: matrix, width: width, height: height}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the character at p, or ' ' when p is out of bounds.
func (c *MatrixCanvas) Get(p core.Point) rune {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set places a character at p. Positions outside the canvas are
// silently dropped so callers can draw shapes that touch the border.
func (c *MatrixCanvas) Set(p core.Point, char rune) {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return
	}
	c.matrix[p.Y][p.X] = merge(c.matrix[p.Y][p.X], char)
}

// DrawBox draws a rectangle with the given style.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return ErrInvalidSize
	}

	c.Set(core.Point{X: x, Y: y}, style.TopLeft)
	c.Set(core.Point{X: x + width - 1, Y: y}, style.TopRight)
	c.Set(core.Point{X: x, Y: y + height - 1}, style.BottomLeft)
	c.Set(core.Point{X: x + width - 1, Y: y + height - 1}, style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.Set(core.Point{X: x + i, Y: y}, style.Horizontal)
		c.Set(core.Point{X: x + i, Y: y + height - 1}, style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.Set(core.Point{X: x, Y: y + i}, style.Vertical)
		c.Set(core.Point{X: x + width - 1, Y: y + i}, style.Vertical)
	}
	return nil
}

// DrawHorizontalLine draws a horizontal line between two columns,
// inclusive.
func (c *MatrixCanvas) DrawHorizontalLine(x1, x2, y int, char rune) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.Set(core.Point{X: x, Y: y}, char)
	}
}

// DrawVerticalLine draws a vertical line between two rows, inclusive.
func (c *MatrixCanvas) DrawVerticalLine(x, y1, y2 int, char rune) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.Set(core.Point{X: x, Y: y}, char)
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
func (c *MatrixCanvas) DrawLine(p1, p2 core.Point, char rune) {
	dx := core.Abs(p2.X - p1.X)
	dy := core.Abs(p2.Y - p1.Y)

	xInc, yInc := 1, 1
	if p1.X > p2.X {
		xInc = -1
	}
	if p1.Y > p2.Y {
		yInc = -1
	}

	x, y := p1.X, p1.Y
	if dx >= dy {
		err := dx / 2
		for i := 0; i <= dx; i++ {
			c.Set(core.Point{X: x, Y: y}, char)
			x += xInc
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
		}
	} else {
		err := dy / 2
		for i := 0; i <= dy; i++ {
			c.Set(core.Point{X: x, Y: y}, char)
			y += yInc
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
		}
	}
}

// DrawText writes a string starting at p. Text outside the canvas is
// clipped.
func (c *MatrixCanvas) DrawText(p core.Point, text string) {
	x := p.X
	for _, r := range text {
		c.Set(core.Point{X: x, Y: p.Y}, r)
		x++
	}
}

// String returns the canvas as newline-separated rows with trailing
// spaces trimmed.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := 0; y < c.height; y++ {
		line := strings.TrimRight(string(c.matrix[y]), " ")
		sb.WriteString(line)
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// merge resolves what happens when a new character lands on an
// occupied cell. Crossing box-drawing lines produce junctions; any
// other collision lets the newer character win.
func merge(existing, incoming rune) rune {
	if existing == ' ' || existing == incoming {
		return incoming
	}
	switch {
	case existing == '─' && incoming == '│', existing == '│' && incoming == '─':
		return '┼'
	case existing == '─' && incoming == '┬', existing == '┬' && incoming == '─':
		return '┬'
	case existing == '─' && incoming == '┴', existing == '┴' && incoming == '─':
		return '┴'
	}
	return incoming
}

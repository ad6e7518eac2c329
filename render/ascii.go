package render

import (
	"math"

	"treedraw/canvas"
	"treedraw/config"
	"treedraw/core"
	"treedraw/layout"
)

// Cell geometry for the terminal backend: one key slot maps to a fixed
// number of character cells, one key row to a fixed number of lines.
const (
	cellsPerSlot = 7
	rowsPerBlock = 3
)

// ASCIIRenderer rasterizes the layout onto a rune matrix using
// box-drawing characters. Pixel coordinates are mapped linearly onto
// cells, so relative spacing survives the projection.
type ASCIIRenderer struct {
	style canvas.BoxStyle
}

// NewASCIIRenderer creates a renderer using Unicode box drawing.
func NewASCIIRenderer() *ASCIIRenderer {
	return &ASCIIRenderer{style: canvas.UnicodeBoxStyle}
}

func (r *ASCIIRenderer) Render(res *layout.Result, cfg config.Settings) ([]byte, error) {
	mapX := func(px float64) int {
		return int(math.Round(px * cellsPerSlot / cfg.BlockWidth))
	}
	mapY := func(px float64) int {
		return int(math.Round(px * rowsPerBlock / cfg.BlockHeight))
	}

	c, err := canvas.NewMatrixCanvas(mapX(float64(res.Width))+1, mapY(float64(res.Height))+1)
	if err != nil {
		return nil, err
	}

	for _, e := range res.Edges {
		r.drawEdge(c, mapX(e.Start.X), mapY(e.Start.Y), mapX(e.End.X), mapY(e.End.Y))
	}
	for _, l := range res.Links {
		c.DrawHorizontalLine(mapX(l.Start.X), mapX(l.End.X), mapY(l.Start.Y), '─')
	}

	for i := range res.Boxes {
		b := &res.Boxes[i]
		x1, y1 := mapX(b.X), mapY(b.Y)
		x2, y2 := mapX(b.Right()), mapY(b.Bottom())
		if err := c.DrawBox(x1, y1, x2-x1+1, y2-y1+1, r.style); err != nil {
			return nil, err
		}

		keyTop := mapY(b.Y + b.H - cfg.BlockHeight)
		if cfg.ShowName {
			for x := x1 + 1; x < x2; x++ {
				c.Set(core.Point{X: x, Y: keyTop}, '─')
			}
			c.Set(core.Point{X: x1, Y: keyTop}, '├')
			c.Set(core.Point{X: x2, Y: keyTop}, '┤')
			r.textCentered(c, (x1+x2)/2, (y1+keyTop)/2, b.Node.Name)
		}
		for s := 1; s < b.Node.Size(); s++ {
			x := mapX(b.X + float64(s)*cfg.BlockWidth)
			c.DrawVerticalLine(x, keyTop+1, y2-1, '│')
			c.Set(core.Point{X: x, Y: keyTop}, '┬')
			c.Set(core.Point{X: x, Y: y2}, '┴')
		}
		for ki, key := range b.Node.Keys {
			r.textCentered(c, mapX(b.Anchors[ki].X), mapY(b.Anchors[ki].Y), key.Value)
		}
	}

	return []byte(c.String() + "\n"), nil
}

// drawEdge draws a parent-child connector with a slope-appropriate
// character and an arrow tip just above the child's border.
func (r *ASCIIRenderer) drawEdge(c *canvas.MatrixCanvas, x1, y1, x2, y2 int) {
	char := '│'
	switch {
	case x2 > x1:
		char = '╲'
	case x2 < x1:
		char = '╱'
	}
	c.DrawLine(core.Point{X: x1, Y: y1}, core.Point{X: x2, Y: y2 - 1}, char)
	c.Set(core.Point{X: x2, Y: y2 - 1}, 'v')
}

func (r *ASCIIRenderer) textCentered(c *canvas.MatrixCanvas, x, y int, text string) {
	c.DrawText(core.Point{X: x - len(text)/2, Y: y}, text)
}

package render

import (
	"fmt"
	"strings"

	"treedraw/config"
	"treedraw/layout"
)

// SVGRenderer emits a standalone vector document with the same
// geometry the raster backend draws.
type SVGRenderer struct{}

// NewSVGRenderer creates a new SVG renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

func (r *SVGRenderer) Render(res *layout.Result, cfg config.Settings) ([]byte, error) {
	fg := cfg.Foreground().Hex()
	bg := cfg.BackgroundColor().Hex()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	fmt.Fprintf(&sb, `  <defs><marker id="arrow" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto"><path d="M0,0 L10,4 L0,8 z" fill="%s"/></marker></defs>`+"\n", fg)
	fmt.Fprintf(&sb, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", res.Width, res.Height, bg)

	for _, e := range res.Edges {
		fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" marker-end="url(#arrow)"/>`+"\n",
			num(e.Start.X), num(e.Start.Y), num(e.End.X), num(e.End.Y), fg)
	}
	for _, l := range res.Links {
		fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(l.Start.X), num(l.Start.Y), num(l.End.X), num(l.End.Y), fg)
	}

	for i := range res.Boxes {
		b := &res.Boxes[i]
		fmt.Fprintf(&sb, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s"/>`+"\n",
			num(b.X), num(b.Y), num(b.W), num(b.H), bg, fg)

		keyTop := b.Y + b.H - cfg.BlockHeight
		if cfg.ShowName {
			fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				num(b.X), num(keyTop), num(b.Right()), num(keyTop), fg)
			r.text(&sb, b.CenterX(), b.Y+cfg.BlockHeight/2, b.Node.Name, fg, cfg.FontSize)
		}
		for i := 1; i < b.Node.Size(); i++ {
			x := b.X + float64(i)*cfg.BlockWidth
			fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				num(x), num(keyTop), num(x), num(b.Bottom()), fg)
		}
		for ki, key := range b.Node.Keys {
			r.text(&sb, b.Anchors[ki].X, b.Anchors[ki].Y, key.Value, cfg.ParseColor(key.Color).Hex(), cfg.FontSize)
		}
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String()), nil
}

func (r *SVGRenderer) text(sb *strings.Builder, x, y float64, s, fill string, size float64) {
	fmt.Fprintf(sb, `  <text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		num(x), num(y), num(size), fill, s)
}

// num formats a coordinate without a trailing ".0" for whole values.
func num(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
}

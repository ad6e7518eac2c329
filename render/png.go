package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"treedraw/config"
	"treedraw/layout"
)

// PNGRenderer rasterizes the layout. Drawing happens at a multiple of
// the target size and is downsampled with CatmullRom interpolation,
// which keeps line and text edges smooth without a path rasterizer.
type PNGRenderer struct {
	scale int
}

// NewPNGRenderer returns a renderer with 2x supersampling.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{scale: 2}
}

func (r *PNGRenderer) Render(res *layout.Result, cfg config.Settings) ([]byte, error) {
	s := float64(r.scale)
	big := image.NewRGBA(image.Rect(0, 0, res.Width*r.scale, res.Height*r.scale))
	xdraw.Draw(big, big.Bounds(), image.NewUniform(cfg.BackgroundColor()), image.Point{}, xdraw.Src)

	face, err := newFace(cfg.FontSize*s, cfg.FontFamily)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	p := &painter{img: big, face: face, thickness: s}
	fg := cfg.Foreground()

	// Edges and leaf links first so boxes cover the line ends.
	for _, e := range res.Edges {
		p.arrowLine(e.Start.X*s, e.Start.Y*s, e.End.X*s, e.End.Y*s, fg)
	}
	for _, l := range res.Links {
		p.line(l.Start.X*s, l.Start.Y*s, l.End.X*s, l.End.Y*s, fg)
	}

	for i := range res.Boxes {
		r.drawBox(p, &res.Boxes[i], cfg, s)
	}

	final := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	xdraw.CatmullRom.Scale(final, final.Bounds(), big, big.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PNGRenderer) drawBox(p *painter, b *layout.Box, cfg config.Settings, s float64) {
	fg := cfg.Foreground()
	x, y, w, h := b.X*s, b.Y*s, b.W*s, b.H*s

	p.fillRect(x, y, w, h, cfg.BackgroundColor())
	p.strokeRect(x, y, w, h, fg)

	keyTop := y + h - cfg.BlockHeight*s
	if cfg.ShowName {
		p.hline(x, x+w, keyTop, fg)
		p.textCentered(x+w/2, y+cfg.BlockHeight*s/2, b.Node.Name, fg)
	}
	for i := 1; i < b.Node.Size(); i++ {
		p.vline(x+float64(i)*cfg.BlockWidth*s, keyTop, y+h, fg)
	}
	for i, key := range b.Node.Keys {
		p.textCentered(b.Anchors[i].X*s, b.Anchors[i].Y*s, key.Value, cfg.ParseColor(key.Color))
	}
}

// newFace builds a face at the given size from the font file at path,
// or from the bundled Go Regular when path is empty.
func newFace(size float64, path string) (font.Face, error) {
	ttf := goregular.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ttf = data
	}
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// painter draws primitives onto an RGBA image.
type painter struct {
	img       *image.RGBA
	face      font.Face
	thickness float64
}

func (p *painter) fillRect(x, y, w, h float64, c color.Color) {
	rect := image.Rect(int(x), int(y), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	xdraw.Draw(p.img, rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func (p *painter) hline(x1, x2, y float64, c color.Color) {
	p.fillRect(x1, y-p.thickness/2, x2-x1, p.thickness, c)
}

func (p *painter) vline(x, y1, y2 float64, c color.Color) {
	p.fillRect(x-p.thickness/2, y1, p.thickness, y2-y1, c)
}

func (p *painter) strokeRect(x, y, w, h float64, c color.Color) {
	p.hline(x, x+w, y, c)
	p.hline(x, x+w, y+h, c)
	p.vline(x, y, y+h, c)
	p.vline(x+w, y, y+h, c)
}

// line steps along the segment painting a square of thickness pixels,
// which is good enough at supersampled resolution.
func (p *painter) line(x1, y1, x2, y2 float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	half := p.thickness / 2
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx, cy := x1+dx*t, y1+dy*t
		p.fillRect(cx-half, cy-half, p.thickness, p.thickness, c)
	}
}

// arrowLine draws a line ending in a filled arrowhead.
func (p *painter) arrowLine(x1, y1, x2, y2 float64, c color.Color) {
	p.line(x1, y1, x2, y2, c)

	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx, ny := dx/dist, dy/dist

	arrowLen := 5 * p.thickness
	arrowWidth := 2.5 * p.thickness
	ax1 := x2 - nx*arrowLen + ny*arrowWidth
	ay1 := y2 - ny*arrowLen - nx*arrowWidth
	ax2 := x2 - nx*arrowLen - ny*arrowWidth
	ay2 := y2 - ny*arrowLen + nx*arrowWidth

	for t := 0.0; t <= 1.0; t += 0.05 {
		p.line(x2, y2, ax1+(ax2-ax1)*t, ay1+(ay2-ay1)*t, c)
	}
}

// textCentered draws text centered on (x, y).
func (p *painter) textCentered(x, y float64, text string, c color.Color) {
	width := font.MeasureString(p.face, text).Ceil()
	metrics := p.face.Metrics()
	baseline := int(y) + int(float64(metrics.Ascent.Ceil())*0.35)

	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: p.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x) - width/2),
			Y: fixed.I(baseline),
		},
	}
	d.DrawString(text)
}

package render

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"treedraw/config"
	"treedraw/layout"
	"treedraw/tree"
)

func testLayout(t *testing.T, cfg config.Settings, input string) *layout.Result {
	t.Helper()
	tr, err := tree.Load(strings.NewReader(input), cfg.NodeName)
	if err != nil {
		t.Fatal(err)
	}
	res, err := layout.New(cfg).Layout(tr)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	cfg := config.Default()
	cfg.D = 3
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestFormats(t *testing.T) {
	t.Run("ParseFormat", func(t *testing.T) {
		cases := map[string]Format{
			"png": FormatPNG, "PNG": FormatPNG,
			"svg": FormatSVG,
			"ascii": FormatASCII, "text": FormatASCII, "txt": FormatASCII,
		}
		for in, want := range cases {
			got, err := ParseFormat(in)
			if err != nil || got != want {
				t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
			}
		}
		if _, err := ParseFormat("jpeg"); err == nil {
			t.Error("unknown format accepted")
		}
	})

	t.Run("FormatForPath", func(t *testing.T) {
		if FormatForPath("out.svg") != FormatSVG {
			t.Error("svg extension")
		}
		if FormatForPath("out.txt") != FormatASCII {
			t.Error("txt extension")
		}
		if FormatForPath("out.png") != FormatPNG || FormatForPath("out") != FormatPNG {
			t.Error("png default")
		}
	})

	t.Run("New covers every format", func(t *testing.T) {
		for _, f := range Formats() {
			if r, err := New(f); err != nil || r == nil {
				t.Errorf("New(%s) = %v, %v", f, r, err)
			}
		}
		if _, err := New(Format("bmp")); err == nil {
			t.Error("unknown format accepted")
		}
	})
}

func TestPNGRenderer(t *testing.T) {
	cfg := testSettings(t)
	res := testLayout(t, cfg, `[[[10]], [[1,2],[15,20]]]`)

	data, err := NewPNGRenderer().Render(res, cfg)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != res.Width || bounds.Dy() != res.Height {
		t.Errorf("image %dx%d, canvas %dx%d", bounds.Dx(), bounds.Dy(), res.Width, res.Height)
	}

	// The corner sits inside the margin and must be background.
	r, g, b, _ := img.At(1, 1).RGBA()
	if r < 60000 || g < 60000 || b < 60000 {
		t.Errorf("corner pixel not background white: %d %d %d", r, g, b)
	}

	t.Run("Leaf chain drawn", func(t *testing.T) {
		if len(res.Links) != 1 {
			t.Fatalf("%d links for two leaves", len(res.Links))
		}
		l := res.Links[0]
		found := false
		for x := int(l.Start.X) + 4; x <= int(l.End.X)-4 && !found; x++ {
			for dy := -2; dy <= 2 && !found; dy++ {
				r, g, b, _ := img.At(x, int(l.Start.Y)+dy).RGBA()
				if r < 30000 && g < 30000 && b < 30000 {
					found = true
				}
			}
		}
		if !found {
			t.Error("no foreground pixel along the leaf link")
		}
	})
}

func TestPNGRendererFontFamily(t *testing.T) {
	cfg := testSettings(t)
	res := testLayout(t, cfg, `[[[5]]]`)

	t.Run("Custom font file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.ttf")
		if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
			t.Fatal(err)
		}
		cfg := cfg
		cfg.FontFamily = path
		if err := cfg.Validate(); err != nil {
			t.Fatal(err)
		}
		data, err := NewPNGRenderer().Render(res, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Fatalf("output is not a PNG: %v", err)
		}
	})

	t.Run("Unparseable font file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.ttf")
		if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg := cfg
		cfg.FontFamily = path
		if _, err := NewPNGRenderer().Render(res, cfg); err == nil {
			t.Error("expected an error for a file that is not a font")
		}
	})
}

func TestSVGRenderer(t *testing.T) {
	cfg := testSettings(t)
	res := testLayout(t, cfg, `[[[10]], [[1,2],[15,20]]]`)

	data, err := NewSVGRenderer().Render(res, cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"<svg", "</svg>", "marker-end=\"url(#arrow)\"",
		">10<", ">15<", ">20<",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.Count(out, "marker-end"); got != len(res.Edges) {
		t.Errorf("%d arrows for %d edges", got, len(res.Edges))
	}

	t.Run("Deterministic", func(t *testing.T) {
		again, err := NewSVGRenderer().Render(res, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, again) {
			t.Error("two renders differ")
		}
	})

	t.Run("Per-key colors", func(t *testing.T) {
		res := testLayout(t, cfg, `[[[[7, "#ff0000"]]]]`)
		data, err := NewSVGRenderer().Render(res, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `fill="#ff0000"`) {
			t.Error("key color override not applied")
		}
	})

	t.Run("Leaf chain", func(t *testing.T) {
		if len(res.Links) != 1 {
			t.Fatalf("%d links for two leaves", len(res.Links))
		}
		l := res.Links[0]
		want := fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"`,
			num(l.Start.X), num(l.Start.Y), num(l.End.X), num(l.End.Y))
		if !strings.Contains(out, want) {
			t.Errorf("output missing leaf link %q", want)
		}
	})
}

func TestASCIIRenderer(t *testing.T) {
	cfg := testSettings(t)
	res := testLayout(t, cfg, `[[[10]], [[1,2],[15,20]]]`)

	data, err := NewASCIIRenderer().Render(res, cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{"┌", "┘", "│", "10", "15", "20", "v"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q in:\n%s", want, out)
		}
	}

	// Two keys in one leaf produce a slot separator junction.
	if !strings.Contains(out, "┬") {
		t.Errorf("missing slot separator:\n%s", out)
	}

	t.Run("Leaf chain", func(t *testing.T) {
		if len(res.Links) != 1 {
			t.Fatalf("%d links for two leaves", len(res.Links))
		}
		l := res.Links[0]
		row := int(math.Round(l.Start.Y * rowsPerBlock / cfg.BlockHeight))
		col := int(math.Round((l.Start.X + l.End.X) / 2 * cellsPerSlot / cfg.BlockWidth))
		lines := strings.Split(out, "\n")
		if row >= len(lines) {
			t.Fatalf("link row %d beyond output:\n%s", row, out)
		}
		cells := []rune(lines[row])
		if col >= len(cells) || cells[col] != '─' {
			t.Errorf("no connector between leaves at %d,%d:\n%s", col, row, out)
		}
	})
}

func TestASCIIRendererShowName(t *testing.T) {
	cfg := testSettings(t)
	cfg.ShowName = true
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	res := testLayout(t, cfg, `[[[5]]]`)

	data, err := NewASCIIRenderer().Render(res, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "n0") {
		t.Errorf("node name missing:\n%s", data)
	}
}

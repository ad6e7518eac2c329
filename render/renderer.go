// Package render turns a computed layout into an output document. The
// layout engine stays independent of any backend; every backend only
// sees geometry plus style settings.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"treedraw/config"
	"treedraw/layout"
)

// Format identifies an output backend.
type Format string

const (
	// FormatPNG renders a raster image.
	FormatPNG Format = "png"
	// FormatSVG renders a standalone vector document.
	FormatSVG Format = "svg"
	// FormatASCII renders box-drawing text for terminals.
	FormatASCII Format = "ascii"
)

// Renderer converts a layout into the bytes of one output document.
type Renderer interface {
	Render(res *layout.Result, cfg config.Settings) ([]byte, error)
}

// New creates the renderer for a format.
func New(format Format) (Renderer, error) {
	switch format {
	case FormatPNG:
		return NewPNGRenderer(), nil
	case FormatSVG:
		return NewSVGRenderer(), nil
	case FormatASCII:
		return NewASCIIRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ParseFormat converts a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// FormatForPath infers the format from a file extension, defaulting to
// PNG for unknown extensions.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".txt", ".text":
		return FormatASCII
	default:
		return FormatPNG
	}
}

// Formats lists every available format.
func Formats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatASCII}
}

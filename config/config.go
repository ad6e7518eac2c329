// Package config loads the JSON settings document that controls fanout,
// colors and spacing. Settings are read once at startup, validated
// eagerly, and passed by value into the layout engine and renderers.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Error reports a missing or out-of-range configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Settings holds every recognized configuration option. Zero values in
// the settings file fall back to Default().
type Settings struct {
	// D is the fanout: the maximum number of children per internal
	// node. Max keys per node is D-1.
	D int `json:"d"`

	// Color and Background are hex colors ("#rrggbb" or "#rgb") for the
	// foreground (boxes, text, edges) and the canvas background.
	Color      string `json:"color"`
	Background string `json:"background"`

	// BlockWidth and BlockHeight size one key slot in pixels.
	BlockWidth  float64 `json:"block-width"`
	BlockHeight float64 `json:"block-height"`

	// Margin is the blank border around the whole drawing.
	Margin float64 `json:"margin"`

	// HSep and VSep are the fixed gaps between sibling boxes and
	// between levels.
	HSep float64 `json:"horizontal-separation"`
	VSep float64 `json:"vertical-separation"`

	// FontSize is the text size in points for raster output.
	FontSize float64 `json:"font-size"`

	// FontFamily is a path to a TrueType font file for raster output.
	// Empty selects the bundled Go Regular face.
	FontFamily string `json:"font-family"`

	// ShowName adds a header row with the node's generated name.
	ShowName bool `json:"show-name"`

	// NodeName is the fmt pattern (one %d verb) for generated node names.
	NodeName string `json:"node-name"`

	fg, bg colorful.Color
}

// Default returns the settings used when no file or field is given.
func Default() Settings {
	return Settings{
		D:           4,
		Color:       "#000000",
		Background:  "#ffffff",
		BlockWidth:  44,
		BlockHeight: 28,
		Margin:      24,
		HSep:        28,
		VSep:        48,
		FontSize:    14,
		NodeName:    "n%d",
	}
}

// Load reads settings from path, merging over the defaults. A missing
// file is only an error when required is true; otherwise the defaults
// are returned. The result is already validated.
func Load(path string, required bool) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			err = s.Validate()
			return s, err
		}
		return s, &Error{Field: path, Reason: err.Error()}
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, &Error{Field: path, Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks ranges and resolves the color fields. It must be
// called before Foreground or BackgroundColor are used.
func (s *Settings) Validate() error {
	if s.D < 2 {
		return &Error{Field: "d", Reason: fmt.Sprintf("fanout %d is below the minimum of 2", s.D)}
	}
	if s.BlockWidth <= 0 || s.BlockHeight <= 0 {
		return &Error{Field: "block-width/block-height", Reason: "must be positive"}
	}
	if s.Margin < 0 || s.HSep < 0 || s.VSep < 0 {
		return &Error{Field: "margin/separation", Reason: "must not be negative"}
	}
	if s.FontSize <= 0 {
		return &Error{Field: "font-size", Reason: "must be positive"}
	}
	if s.FontFamily != "" {
		if _, err := os.Stat(s.FontFamily); err != nil {
			return &Error{Field: "font-family", Reason: fmt.Sprintf("cannot read %q: %v", s.FontFamily, err)}
		}
	}
	if !strings.Contains(s.NodeName, "%d") {
		return &Error{Field: "node-name", Reason: "pattern needs a %d verb"}
	}

	var err error
	if s.fg, err = colorful.Hex(normalizeHex(s.Color)); err != nil {
		return &Error{Field: "color", Reason: fmt.Sprintf("%q is not a hex color", s.Color)}
	}
	if s.bg, err = colorful.Hex(normalizeHex(s.Background)); err != nil {
		return &Error{Field: "background", Reason: fmt.Sprintf("%q is not a hex color", s.Background)}
	}
	return nil
}

// Foreground returns the resolved foreground color.
func (s Settings) Foreground() colorful.Color { return s.fg }

// BackgroundColor returns the resolved background color.
func (s Settings) BackgroundColor() colorful.Color { return s.bg }

// ParseColor resolves a per-key color override, falling back to the
// foreground when the value is empty or unparseable.
func (s Settings) ParseColor(hex string) colorful.Color {
	if hex == "" {
		return s.fg
	}
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return s.fg
	}
	return c
}

// normalizeHex tolerates colors written without the leading '#'.
func normalizeHex(s string) string {
	if s != "" && s[0] != '#' {
		return "#" + s
	}
	return s
}

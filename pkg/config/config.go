// Package config holds the tunables of the porthole renderer and loads
// optional overrides from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// RGB is a colour written as "#rrggbb" in config files.
type RGB struct {
	R, G, B uint8
}

// RGBA returns the colour with the given alpha, non-premultiplied.
func (c RGB) RGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, alpha}
}

func (c RGB) Opaque() color.NRGBA { return c.RGBA(255) }

func (c *RGB) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(b)), "#")
	if len(s) != 6 {
		return fmt.Errorf("colour %q: want #rrggbb", string(b))
	}
	_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil {
		return fmt.Errorf("colour %q: %w", string(b), err)
	}
	return nil
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

type Colors struct {
	Background RGB `toml:"background"`
	Street     RGB `toml:"street"`
	Origin     RGB `toml:"origin"`
	Dest       RGB `toml:"destination"`
	Border     RGB `toml:"border"`
	Text       RGB `toml:"text"`
	Agent      RGB `toml:"agent"`
}

type Canvas struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	TPS         int     `toml:"tps"`
	Zoom        float64 `toml:"zoom"`
	CircleRatio float64 `toml:"circle_ratio"`
	FontPath    string  `toml:"font_path"`
	FontSize    float64 `toml:"font_size"`
}

type View struct {
	Padding float64 `toml:"padding"`
	MinSpan float64 `toml:"min_span"`
}

type Fade struct {
	EdgeStart    float64 `toml:"edge_start"`
	Intensity    float64 `toml:"intensity"`
	BufferFactor float64 `toml:"buffer_factor"`
	MinOpacity   int     `toml:"min_opacity"`
	StrokeWidth  float64 `toml:"stroke_width"`
}

type Pulse struct {
	Speed     float64 `toml:"speed"`
	Amplitude float64 `toml:"amplitude"`
	BaseSize  float64 `toml:"base_size"`
	Rings     int     `toml:"rings"`
	GlowScale float64 `toml:"glow_scale"`
	RingAlpha int     `toml:"ring_alpha"`
}

type Agents struct {
	Count  int     `toml:"count"`
	Speed  float64 `toml:"speed"`
	Size   float64 `toml:"size"`
	Spread bool    `toml:"spread"`
}

type Diagnostics struct {
	Enabled bool `toml:"enabled"`
	Window  int  `toml:"window"`
}

type Config struct {
	Canvas      Canvas      `toml:"canvas"`
	View        View        `toml:"view"`
	Fade        Fade        `toml:"fade"`
	Pulse       Pulse       `toml:"pulse"`
	Agents      Agents      `toml:"agents"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Colors      Colors      `toml:"colors"`
	CaptureDir  string      `toml:"capture_dir"`
}

// Default returns the settings the viewer ships with.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:       800,
			Height:      800,
			TPS:         60,
			Zoom:        0.92,
			CircleRatio: 0.49,
			FontSize:    14,
		},
		View: View{Padding: 0.3, MinSpan: 1000},
		Fade: Fade{
			EdgeStart:    0.75,
			Intensity:    2.0,
			BufferFactor: 1.8,
			MinOpacity:   3,
			StrokeWidth:  1.2,
		},
		Pulse: Pulse{
			Speed:     0.08,
			Amplitude: 4,
			BaseSize:  10,
			Rings:     5,
			GlowScale: 3,
			RingAlpha: 150,
		},
		Agents:      Agents{Count: 15, Speed: 120, Size: 6},
		Diagnostics: Diagnostics{Enabled: true, Window: 60},
		Colors: Colors{
			Background: RGB{40, 42, 46},
			Street:     RGB{70, 72, 76},
			Origin:     RGB{50, 180, 220},
			Dest:       RGB{220, 50, 180},
			Border:     RGB{30, 32, 36},
			Text:       RGB{220, 220, 220},
			Agent:      RGB{240, 240, 50},
		},
		CaptureDir: ".",
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	md, err := toml.Decode(string(data), &base)
	if err != nil {
		return base, fmt.Errorf("decoding config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("%w: unknown keys %v", ErrInvalid, undecoded)
	}
	return base, base.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Canvas.TPS)
	case c.Canvas.Zoom <= 0 || c.Canvas.Zoom > 1:
		return fmt.Errorf("%w: zoom %v not in (0,1]", ErrInvalid, c.Canvas.Zoom)
	case c.Canvas.CircleRatio <= 0 || c.Canvas.CircleRatio > 0.5:
		return fmt.Errorf("%w: circle_ratio %v not in (0,0.5]", ErrInvalid, c.Canvas.CircleRatio)
	case c.View.Padding < 0:
		return fmt.Errorf("%w: padding %v", ErrInvalid, c.View.Padding)
	case c.View.MinSpan <= 0:
		return fmt.Errorf("%w: min_span %v", ErrInvalid, c.View.MinSpan)
	case c.Fade.EdgeStart < 0 || c.Fade.EdgeStart >= 1:
		return fmt.Errorf("%w: edge_start %v not in [0,1)", ErrInvalid, c.Fade.EdgeStart)
	case c.Fade.Intensity <= 0:
		return fmt.Errorf("%w: intensity %v must be positive", ErrInvalid, c.Fade.Intensity)
	case c.Fade.StrokeWidth <= 0:
		return fmt.Errorf("%w: stroke_width %v must be positive", ErrInvalid, c.Fade.StrokeWidth)
	case c.Fade.BufferFactor <= 1:
		return fmt.Errorf("%w: buffer_factor %v must exceed 1", ErrInvalid, c.Fade.BufferFactor)
	case c.Fade.MinOpacity < 0 || c.Fade.MinOpacity > 255:
		return fmt.Errorf("%w: min_opacity %d", ErrInvalid, c.Fade.MinOpacity)
	case c.Pulse.Rings < 0:
		return fmt.Errorf("%w: rings %d", ErrInvalid, c.Pulse.Rings)
	case c.Agents.Count < 0:
		return fmt.Errorf("%w: agent count %d", ErrInvalid, c.Agents.Count)
	case c.Diagnostics.Window <= 0:
		return fmt.Errorf("%w: diagnostics window %d", ErrInvalid, c.Diagnostics.Window)
	}
	return nil
}

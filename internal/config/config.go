package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/worldwind/render"
)

// Config describes a demo scene and the picks to run against it.
type Config struct {
	// Surface
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ClearColor string `json:"clear_color"`

	// Terrain
	TileSize             int      `json:"tile_size"`
	Elevation            float64  `json:"elevation"`
	VerticalExaggeration float64  `json:"vertical_exaggeration"`
	TerrainColors        []string `json:"terrain_colors"`
	TerrainImage         string   `json:"terrain_image"`
	DegreesPerPixel      float64  `json:"degrees_per_pixel"`

	// Layers
	Shapes  []Shape `json:"shapes"`
	Overlay string  `json:"overlay"`

	// Picks
	PickPoints [][2]int `json:"pick_points"`
	PickRects  [][4]int `json:"pick_rects"`

	// Output
	Output   string  `json:"output"`
	Scale    float64 `json:"scale"`
	LogLevel string  `json:"log_level"`
}

// Shape is one rectangle of the shape layer.
type Shape struct {
	Name   string  `json:"name"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Color  string  `json:"color"`
	Order  float64 `json:"order"`
}

// Bounds returns the shape's pixel rectangle.
func (s Shape) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width    int
	Height   int
	Output   string
	Scale    float64
	LogLevel string
}

// Load reads a JSON config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag overrides and fills empty fields with defaults.
// Flags take priority when non-zero.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = 512
	}
	if c.ClearColor == "" {
		c.ClearColor = "#000000"
	}
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.DegreesPerPixel <= 0 {
		c.DegreesPerPixel = 0.1
	}
	if c.Output == "" {
		c.Output = "frame.webp"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Width > 8192 || c.Height > 8192 {
		errs = append(errs, fmt.Errorf("config: surface %dx%d exceeds 8192", c.Width, c.Height))
	}
	if c.Scale > 8 {
		errs = append(errs, fmt.Errorf("config: scale %v exceeds 8", c.Scale))
	}
	if _, err := ParseColor(c.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("config: clear_color: %w", err))
	}
	if c.Overlay != "" {
		if _, err := ParseColor(c.Overlay); err != nil {
			errs = append(errs, fmt.Errorf("config: overlay: %w", err))
		}
	}
	for i, s := range c.TerrainColors {
		if _, err := ParseColor(s); err != nil {
			errs = append(errs, fmt.Errorf("config: terrain_colors[%d]: %w", i, err))
		}
	}
	for i, s := range c.Shapes {
		if s.Width <= 0 || s.Height <= 0 {
			errs = append(errs, fmt.Errorf("config: shapes[%d] %q: empty bounds", i, s.Name))
		}
		if _, err := ParseColor(s.Color); err != nil {
			errs = append(errs, fmt.Errorf("config: shapes[%d] %q: %w", i, s.Name, err))
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ErrBadColor is returned by ParseColor for malformed colors.
var ErrBadColor = errors.New("bad color")

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (render.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return render.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return render.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return render.Color{
		R: float64(v>>24&0xFF) / 255,
		G: float64(v>>16&0xFF) / 255,
		B: float64(v>>8&0xFF) / 255,
		A: float64(v&0xFF) / 255,
	}, nil
}

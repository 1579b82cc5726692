// Command wwdemo renders a flat-terrain scene, picks points and rectangles
// in it and writes the displayed frame as a WebP snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/worldwind"
	"github.com/gogpu/worldwind/internal/config"
	"github.com/gogpu/worldwind/layer"
	"github.com/gogpu/worldwind/render"
	"github.com/gogpu/worldwind/terrain"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config.json file")
		width      = flag.Int("width", 0, "surface width (default: 512)")
		height     = flag.Int("height", 0, "surface height (default: 512)")
		output     = flag.String("output", "", "snapshot file (default: frame.webp)")
		scale      = flag.Float64("scale", 0, "snapshot scale factor (default: 1)")
		logLevel   = flag.String("log", "", "log level: debug, info, warn, error, off")
	)
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		Width:    *width,
		Height:   *height,
		Output:   *output,
		Scale:    *scale,
		LogLevel: *logLevel,
	})
	if len(cfg.Shapes) == 0 {
		cfg.Shapes = defaultShapes(cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	setupLogging(cfg.LogLevel)

	target := render.NewPixmapTarget(cfg.Width, cfg.Height)
	drawn := make(chan struct{}, 1)
	window, err := newWindow(target, &cfg, drawn)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- window.Run(ctx) }()

	for _, line := range runPicks(window, &cfg, drawn) {
		fmt.Println(line)
	}

	// Redraw once the loops have stopped so the snapshot is a normal frame.
	cancel()
	if err := <-done; err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	if err := window.RedrawNow(); err != nil {
		log.Fatalf("Redraw failed: %v", err)
	}

	if err := writeSnapshot(cfg.Output, target.Image(), cfg.Scale); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d, scale %.2f)\n", cfg.Output, cfg.Width, cfg.Height, cfg.Scale)
}

// newWindow builds the scene described by cfg. Each finished frame is
// reported on drawn without blocking.
func newWindow(target *render.PixmapTarget, cfg *config.Config, drawn chan<- struct{}) (*worldwind.WorldWindow, error) {
	tess := &terrain.PlaneTessellator{
		TileSize:             cfg.TileSize,
		Elevation:            cfg.Elevation,
		VerticalExaggeration: cfg.VerticalExaggeration,
	}
	for _, s := range cfg.TerrainColors {
		c, _ := config.ParseColor(s)
		tess.Colors = append(tess.Colors, c)
	}
	if cfg.TerrainImage != "" {
		img, err := terrain.LoadImagery(cfg.TerrainImage)
		if err != nil {
			return nil, err
		}
		tess.Imagery = img
	}

	shapes := layer.NewShapeLayer("shapes")
	for _, s := range cfg.Shapes {
		c, _ := config.ParseColor(s.Color)
		shapes.AddShape(&layer.Rectangle{Name: s.Name, Bounds: s.Bounds(), Color: c, Order: s.Order})
	}
	layers := []render.Layer{shapes}
	if cfg.Overlay != "" {
		c, _ := config.ParseColor(cfg.Overlay)
		layers = append(layers, layer.NewOverlayLayer("overlay", c))
	}

	clearColor, _ := config.ParseColor(cfg.ClearColor)
	return worldwind.NewWorldWindow(target,
		worldwind.WithTessellator(tess),
		worldwind.WithLayers(layers...),
		worldwind.WithClearColor(clearColor),
		worldwind.WithGlobe(terrain.PlateCarree{DegreesPerUnit: cfg.DegreesPerPixel}),
		worldwind.WithFrameCallback(func(fi worldwind.FrameInfo) {
			for _, err := range fi.Diagnostics {
				log.Printf("frame %d: %v", fi.Number, err)
			}
			select {
			case drawn <- struct{}{}:
			default:
			}
		}),
	)
}

// runPicks waits for the window's first frame, then runs the configured
// picks and returns one line per pick.
func runPicks(window *worldwind.WorldWindow, cfg *config.Config, drawn <-chan struct{}) []string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-drawn:
	case <-ctx.Done():
		return []string{fmt.Sprintf("no frame drawn: %v", ctx.Err())}
	}

	points := cfg.PickPoints
	if len(points) == 0 && len(cfg.PickRects) == 0 {
		points = [][2]int{{cfg.Width / 2, cfg.Height / 2}}
	}
	var lines []string
	for _, p := range points {
		list, err := window.Pick(ctx, image.Pt(p[0], p[1]))
		if err != nil {
			lines = append(lines, fmt.Sprintf("pick (%d,%d): %v", p[0], p[1], err))
			continue
		}
		lines = append(lines, fmt.Sprintf("pick (%d,%d): %s", p[0], p[1], describe(list)))
	}
	for _, r := range cfg.PickRects {
		rect := image.Rect(r[0], r[1], r[2], r[3])
		list, err := window.PickRect(ctx, rect)
		if err != nil {
			lines = append(lines, fmt.Sprintf("pick %v: %v", rect, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("pick %v: %s", rect, describe(list)))
	}
	return lines
}

func describe(list *render.PickedObjectList) string {
	if list.Count() == 0 {
		return "nothing"
	}
	var b strings.Builder
	for i, po := range list.Objects() {
		if i > 0 {
			b.WriteString(", ")
		}
		switch obj := po.UserObject().(type) {
		case *layer.Rectangle:
			b.WriteString(obj.Name)
		default:
			fmt.Fprintf(&b, "%v", obj)
		}
		if po.IsOnTop() {
			b.WriteString(" (top)")
		}
	}
	return b.String()
}

func writeSnapshot(path string, img *image.RGBA, scale float64) error {
	var out image.Image = img
	if scale != 1 {
		b := img.Bounds()
		w := max(1, int(float64(b.Dx())*scale))
		h := max(1, int(float64(b.Dy())*scale))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		out = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, out, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp encode: %w", err)
	}
	return f.Close()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "off":
		return
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	worldwind.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func defaultShapes(w, h int) []config.Shape {
	return []config.Shape{
		{Name: "north", X: w / 8, Y: h / 8, Width: w / 3, Height: h / 4, Color: "#d94f30", Order: 1},
		{Name: "centre", X: w / 3, Y: h / 3, Width: w / 3, Height: h / 3, Color: "#f2c14e", Order: 2},
		{Name: "south", X: w / 2, Y: h * 5 / 8, Width: w / 3, Height: h / 4, Color: "#4d7ea8", Order: 1},
	}
}

package worldwind

import (
	"github.com/gogpu/worldwind/render"
	"github.com/gogpu/worldwind/terrain"
)

// Option configures a WorldWindow during creation.
//
// Example:
//
//	// Flat terrain with one shape layer
//	shapes := layer.NewShapeLayer("shapes")
//	w, err := worldwind.NewWorldWindow(target,
//		worldwind.WithTessellator(&terrain.PlaneTessellator{}),
//		worldwind.WithLayers(shapes),
//	)
type Option func(*windowOptions)

// windowOptions holds optional configuration for WorldWindow creation.
type windowOptions struct {
	device      render.DeviceHandle
	controller  FrameController
	tessellator render.Tessellator
	navigator   Navigator
	globe       render.Globe
	layers      []render.Layer
	clearColor  render.Color
	onFrame     func(FrameInfo)
	maxPooled   int
}

// defaultWindowOptions returns the default window options.
func defaultWindowOptions() windowOptions {
	return windowOptions{
		device:     render.NullDeviceHandle{},
		navigator:  ScreenNavigator{},
		globe:      terrain.PlateCarree{DegreesPerUnit: DefaultDegreesPerPixel},
		clearColor: render.Black,
		maxPooled:  DefaultMaxPooled,
	}
}

// DefaultDegreesPerPixel is the angular size of one pixel for the default
// globe.
const DefaultDegreesPerPixel = 0.01

// DefaultMaxPooled bounds each drawable pool.
const DefaultMaxPooled = 4096

// WithDevice sets the GPU device provider. When the provider reports a
// surface format it overrides the target's for pick read-back decoding.
//
// Example:
//
//	// Share the host application's device
//	w, err := worldwind.NewWorldWindow(target, worldwind.WithDevice(app))
func WithDevice(d render.DeviceHandle) Option {
	return func(o *windowOptions) {
		if d != nil {
			o.device = d
		}
	}
}

// WithFrameController replaces the BasicFrameController. WithTessellator,
// WithLayers and WithClearColor only configure the default controller.
func WithFrameController(c FrameController) Option {
	return func(o *windowOptions) {
		o.controller = c
	}
}

// WithTessellator sets the terrain tessellator.
func WithTessellator(t render.Tessellator) Option {
	return func(o *windowOptions) {
		o.tessellator = t
	}
}

// WithNavigator sets the navigator supplying matrices and pick rays.
func WithNavigator(n Navigator) Option {
	return func(o *windowOptions) {
		if n != nil {
			o.navigator = n
		}
	}
}

// WithGlobe sets the conversion from terrain points to positions.
func WithGlobe(g render.Globe) Option {
	return func(o *windowOptions) {
		o.globe = g
	}
}

// WithLayers sets the initial layers in render order.
func WithLayers(layers ...render.Layer) Option {
	return func(o *windowOptions) {
		o.layers = append(o.layers[:0:0], layers...)
	}
}

// WithClearColor sets the background color of normal frames.
func WithClearColor(c render.Color) Option {
	return func(o *windowOptions) {
		o.clearColor = c
	}
}

// WithFrameCallback registers fn to be called on the render goroutine after
// each frame has been drawn and before it is recycled.
func WithFrameCallback(fn func(FrameInfo)) Option {
	return func(o *windowOptions) {
		o.onFrame = fn
	}
}

// WithMaxPooled bounds each drawable pool. Zero means unbounded.
func WithMaxPooled(n int) Option {
	return func(o *windowOptions) {
		if n >= 0 {
			o.maxPooled = n
		}
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/worldwind/geom"
)

// DrawContext carries the state of one draw pass on the draw goroutine.
// Its read-back buffers are reused across frames.
type DrawContext struct {
	target Target
	format gputypes.TextureFormat
	frame  *Frame

	pixels   []byte
	colorSet map[uint32]struct{}
	colors   []Color
}

// NewDrawContext returns a context drawing into target.
func NewDrawContext(target Target) *DrawContext {
	dc := &DrawContext{
		target:   target,
		colorSet: make(map[uint32]struct{}),
	}
	if target != nil {
		dc.format = target.Format()
	}
	return dc
}

// SetPixelFormat overrides the format used to decode read-back pixels, for
// hosts whose surface format differs from the target's report. Undefined
// is ignored.
func (dc *DrawContext) SetPixelFormat(f gputypes.TextureFormat) {
	if f != gputypes.TextureFormatUndefined {
		dc.format = f
	}
}

// PixelFormat returns the format read-back pixels are decoded with.
func (dc *DrawContext) PixelFormat() gputypes.TextureFormat { return dc.format }

// Begin attaches the context to f for the duration of a draw pass.
func (dc *DrawContext) Begin(f *Frame) { dc.frame = f }

// End detaches the context from its Frame.
func (dc *DrawContext) End() { dc.frame = nil }

// Target returns the surface being drawn.
func (dc *DrawContext) Target() Target { return dc.target }

// Frame returns the Frame being drawn.
func (dc *DrawContext) Frame() *Frame { return dc.frame }

// PickMode reports whether the Frame renders pick colors.
func (dc *DrawContext) PickMode() bool { return dc.frame != nil && dc.frame.PickMode() }

// Viewport returns the Frame's viewport.
func (dc *DrawContext) Viewport() image.Rectangle { return dc.frame.Viewport }

// Projection returns the Frame's projection matrix.
func (dc *DrawContext) Projection() geom.Matrix4 { return dc.frame.Projection }

// Modelview returns the Frame's modelview matrix.
func (dc *DrawContext) Modelview() geom.Matrix4 { return dc.frame.Modelview }

// InfiniteProjection returns the Frame's infinite projection matrix.
func (dc *DrawContext) InfiniteProjection() geom.Matrix4 { return dc.frame.InfiniteProjection }

// TerrainDrawableCount returns the number of terrain drawables.
func (dc *DrawContext) TerrainDrawableCount() int { return dc.frame.TerrainDrawables.Len() }

// TerrainDrawable returns the i-th terrain drawable in sort order.
func (dc *DrawContext) TerrainDrawable(i int) Drawable { return dc.frame.TerrainDrawables.At(i) }

// ReadPixelColor reads back the color of one pixel.
func (dc *DrawContext) ReadPixelColor(x, y int) (Color, error) {
	px, err := dc.target.ReadPixels(image.Rect(x, y, x+1, y+1), dc.pixels)
	dc.pixels = px
	if err != nil {
		return Color{}, fmt.Errorf("render: read pixel (%d,%d): %w", x, y, err)
	}
	return decodePixel(px, dc.format), nil
}

// ReadPixelColors reads back r and returns its distinct colors. The
// returned slice is owned by the context and valid until the next call.
func (dc *DrawContext) ReadPixelColors(r image.Rectangle) ([]Color, error) {
	px, err := dc.target.ReadPixels(r, dc.pixels)
	dc.pixels = px
	if err != nil {
		return nil, fmt.Errorf("render: read pixels %v: %w", r, err)
	}

	clear(dc.colorSet)
	dc.colors = dc.colors[:0]
	for i := 0; i+4 <= len(px); i += 4 {
		k := pixelKey(px[i:i+4], dc.format)
		if _, seen := dc.colorSet[k]; seen {
			continue
		}
		dc.colorSet[k] = struct{}{}
		dc.colors = append(dc.colors, colorFromKey(k))
	}
	return dc.colors, nil
}

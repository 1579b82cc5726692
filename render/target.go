// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// ErrEmptyReadRect is returned by ReadPixels when the requested rectangle
// does not overlap the target.
var ErrEmptyReadRect = errors.New("render: read rectangle outside target")

// ErrNotCanvas is returned by CanvasOf for targets without CPU fills.
var ErrNotCanvas = errors.New("render: target does not accept CPU fills")

// Target is the surface the draw pass renders into.
//
// A Target is owned by the draw goroutine. GPU-backed targets wrap the host
// surface; PixmapTarget is a CPU-backed implementation.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target. ReadPixels returns
	// pixels in this format.
	Format() gputypes.TextureFormat

	// Clear resets the color buffer to c and the depth buffer to its far
	// value.
	Clear(c Color) error

	// ReadPixels copies the pixels of r (clipped to the target) into dst,
	// tightly packed at 4 bytes per pixel, row by row from the top. dst is
	// grown if needed and the filled slice is returned. On a GPU this is a
	// synchronous stall; callers avoid it when nothing can be picked.
	ReadPixels(r image.Rectangle, dst []byte) ([]byte, error)
}

// Canvas is implemented by targets that accept CPU-rasterized fills.
type Canvas interface {
	// FillRect fills r with c. Opaque colors replace the destination;
	// translucent colors blend over it.
	FillRect(r image.Rectangle, c Color)
}

// CanvasOf returns the draw context's target as a Canvas.
func CanvasOf(dc *DrawContext) (Canvas, error) {
	c, ok := dc.Target().(Canvas)
	if !ok {
		return nil, ErrNotCanvas
	}
	return c, nil
}

// ImageCanvas is implemented by targets that can draw scaled images.
type ImageCanvas interface {
	// DrawImage scales the sr part of src into dst.
	DrawImage(dst image.Rectangle, src image.Image, sr image.Rectangle)
}

// ImageCanvasOf returns the draw context's target as an ImageCanvas.
func ImageCanvasOf(dc *DrawContext) (ImageCanvas, bool) {
	c, ok := dc.Target().(ImageCanvas)
	return c, ok
}

// Presenter is implemented by targets that display finished frames.
// Pick frames are never presented.
type Presenter interface {
	Present() error
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	window, _ := worldwind.NewWorldWindow(target)
//	window.RedrawNow()
//	img := target.Image()
type PixmapTarget struct {
	img     *image.RGBA
	uniform image.Uniform
	fillRGB color.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c. A pixmap has no depth buffer.
func (t *PixmapTarget) Clear(c Color) error {
	t.fill(t.img.Bounds(), c.RGBA8(), xdraw.Src)
	return nil
}

// FillRect fills r with c.
func (t *PixmapTarget) FillRect(r image.Rectangle, c Color) {
	op := xdraw.Src
	if c.A < 1 {
		op = xdraw.Over
	}
	t.fill(r.Intersect(t.img.Bounds()), premultiply(c), op)
}

func (t *PixmapTarget) fill(r image.Rectangle, c color.RGBA, op xdraw.Op) {
	if r.Empty() {
		return
	}
	t.fillRGB = c
	t.uniform.C = &t.fillRGB
	xdraw.Draw(t.img, r, &t.uniform, image.Point{}, op)
}

// DrawImage scales the sr part of src into dst with bilinear filtering.
func (t *PixmapTarget) DrawImage(dst image.Rectangle, src image.Image, sr image.Rectangle) {
	if dst.Intersect(t.img.Bounds()).Empty() || sr.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(t.img, dst, src, sr, xdraw.Src, nil)
}

// ReadPixels copies the RGBA pixels of r into dst.
func (t *PixmapTarget) ReadPixels(r image.Rectangle, dst []byte) ([]byte, error) {
	r = r.Intersect(t.img.Bounds())
	if r.Empty() {
		return dst[:0], ErrEmptyReadRect
	}
	rowBytes := r.Dx() * 4
	n := rowBytes * r.Dy()
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := t.img.PixOffset(r.Min.X, y)
		copy(dst[(y-r.Min.Y)*rowBytes:], t.img.Pix[off:off+rowBytes])
	}
	return dst, nil
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// Resize creates a new backing image with the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// premultiply converts c to the alpha-premultiplied form image.RGBA stores.
func premultiply(c Color) color.RGBA {
	a := c.A
	return Color{R: c.R * a, G: c.G * a, B: c.B * a, A: a}.RGBA8()
}

// Ensure PixmapTarget implements Target, Canvas and ImageCanvas.
var (
	_ Target      = (*PixmapTarget)(nil)
	_ Canvas      = (*PixmapTarget)(nil)
	_ ImageCanvas = (*PixmapTarget)(nil)
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"image"

	"github.com/gogpu/worldwind/pool"
	"github.com/gogpu/worldwind/render"
)

// OverlayLayer tints the whole viewport after every other surface
// drawable, like an atmosphere or night-side overlay. It is skipped in
// pick frames so it never hides pick colors.
type OverlayLayer struct {
	Base

	// Tint is the overlay color; its alpha controls the strength.
	Tint render.Color
}

// NewOverlayLayer returns an enabled overlay with the given tint.
func NewOverlayLayer(name string, tint render.Color) *OverlayLayer {
	return &OverlayLayer{Base: Base{name: name}, Tint: tint}
}

// Render offers the overlay at render.SortKeyLast.
func (l *OverlayLayer) Render(rc *render.RenderContext) {
	if rc.PickMode() || l.Tint.A <= 0 {
		return
	}
	overlays := pool.Of[*overlayDrawable](rc.Pools)
	d, ok := overlays.Acquire()
	if !ok {
		d = &overlayDrawable{}
	}
	d.pool = overlays
	d.bounds = rc.Viewport()
	d.tint = l.Tint
	rc.OfferSurfaceDrawable(d, render.SortKeyLast)
}

type overlayDrawable struct {
	bounds image.Rectangle
	tint   render.Color
	pool   *pool.Pool[*overlayDrawable]
}

func (d *overlayDrawable) Draw(dc *render.DrawContext) error {
	canvas, err := render.CanvasOf(dc)
	if err != nil {
		return err
	}
	canvas.FillRect(d.bounds, d.tint)
	return nil
}

func (d *overlayDrawable) Recycle() {
	p := d.pool
	*d = overlayDrawable{}
	if p != nil {
		p.Release(d)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terrain

import (
	"image"

	"github.com/gogpu/worldwind/geom"
	"github.com/gogpu/worldwind/pool"
	"github.com/gogpu/worldwind/render"
)

// DefaultTileSize is the tile edge length in pixels.
const DefaultTileSize = 64

// PlaneTessellator tessellates a flat plane into square tiles.
type PlaneTessellator struct {
	// TileSize is the tile edge in pixels. Zero means DefaultTileSize.
	TileSize int

	// Elevation is the plane height in meters.
	Elevation float64

	// VerticalExaggeration scales Elevation. Zero means 1.
	VerticalExaggeration float64

	// Colors alternate across tiles in a checkerboard. Empty means a single
	// land color.
	Colors []render.Color

	// Imagery, when set, is stretched over the viewport and drawn instead
	// of Colors on targets that implement render.ImageCanvas.
	Imagery image.Image

	plane Plane
}

// defaultLand is the tile color when Colors is empty.
var defaultLand = render.Color{R: 0.36, G: 0.52, B: 0.28, A: 1}

// Tessellate offers one drawable per tile covering the frame viewport.
func (t *PlaneTessellator) Tessellate(rc *render.RenderContext) render.Terrain {
	vp := rc.Viewport()
	t.plane = Plane{viewport: vp, height: t.height()}
	if vp.Empty() {
		return &t.plane
	}

	size := t.TileSize
	if size <= 0 {
		size = DefaultTileSize
	}
	tiles := pool.Of[*tileDrawable](rc.Pools)
	for y, row := vp.Min.Y, 0; y < vp.Max.Y; y, row = y+size, row+1 {
		for x, col := vp.Min.X, 0; x < vp.Max.X; x, col = x+size, col+1 {
			d, ok := tiles.Acquire()
			if !ok {
				d = &tileDrawable{}
			}
			d.pool = tiles
			d.bounds = image.Rect(x, y, x+size, y+size).Intersect(vp)
			d.color = t.tileColor(row, col)
			if t.Imagery != nil {
				d.imagery = t.Imagery
				d.source = imagerySource(d.bounds, vp, t.Imagery.Bounds())
			}
			rc.OfferTerrainDrawable(d, 0)
		}
	}
	return &t.plane
}

func (t *PlaneTessellator) height() float64 {
	ve := t.VerticalExaggeration
	if ve == 0 {
		ve = 1
	}
	return t.Elevation * ve
}

func (t *PlaneTessellator) tileColor(row, col int) render.Color {
	if len(t.Colors) == 0 {
		return defaultLand
	}
	return t.Colors[(row+col)%len(t.Colors)]
}

// imagerySource maps tile, a part of vp, to the matching part of ib.
func imagerySource(tile, vp, ib image.Rectangle) image.Rectangle {
	scale := func(v, vmin, vlen, imin, ilen int) int {
		return imin + (v-vmin)*ilen/vlen
	}
	return image.Rect(
		scale(tile.Min.X, vp.Min.X, vp.Dx(), ib.Min.X, ib.Dx()),
		scale(tile.Min.Y, vp.Min.Y, vp.Dy(), ib.Min.Y, ib.Dy()),
		scale(tile.Max.X, vp.Min.X, vp.Dx(), ib.Min.X, ib.Dx()),
		scale(tile.Max.Y, vp.Min.Y, vp.Dy(), ib.Min.Y, ib.Dy()),
	)
}

// Plane is the terrain produced by PlaneTessellator: the viewport footprint
// at a fixed height.
type Plane struct {
	viewport image.Rectangle
	height   float64
}

// Empty reports whether the plane covers no pixels.
func (p *Plane) Empty() bool { return p.viewport.Empty() }

// Height returns the exaggerated plane height.
func (p *Plane) Height() float64 { return p.height }

// Intersect returns where ray meets the plane inside the viewport.
func (p *Plane) Intersect(ray geom.Line) (geom.Vec3, bool) {
	if p.Empty() {
		return geom.Vec3{}, false
	}
	pt, ok := ray.IntersectPlaneZ(p.height)
	if !ok {
		return geom.Vec3{}, false
	}
	if !image.Pt(int(pt[0]), int(pt[1])).In(p.viewport) {
		return geom.Vec3{}, false
	}
	return pt, true
}

// tileDrawable paints one terrain tile.
type tileDrawable struct {
	bounds  image.Rectangle
	color   render.Color
	imagery image.Image
	source  image.Rectangle
	pool    *pool.Pool[*tileDrawable]
}

// Draw paints the tile's imagery. Pick frames paint terrain only through
// DrawSurfaceColor.
func (d *tileDrawable) Draw(dc *render.DrawContext) error {
	if dc.PickMode() {
		return nil
	}
	if d.imagery != nil {
		if canvas, ok := render.ImageCanvasOf(dc); ok {
			canvas.DrawImage(d.bounds, d.imagery, d.source)
			return nil
		}
	}
	return d.DrawSurfaceColor(dc, d.color)
}

// DrawSurfaceColor paints the tile in c.
func (d *tileDrawable) DrawSurfaceColor(dc *render.DrawContext, c render.Color) error {
	canvas, err := render.CanvasOf(dc)
	if err != nil {
		return err
	}
	canvas.FillRect(d.bounds, c)
	return nil
}

func (d *tileDrawable) Recycle() {
	p := d.pool
	*d = tileDrawable{}
	if p != nil {
		p.Release(d)
	}
}

var _ render.TerrainSurface = (*tileDrawable)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Drawable is a pooled unit of GPU work produced by the render pass and
// executed by the draw pass.
type Drawable interface {
	// Draw issues the drawable's graphics calls. A returned error omits
	// this drawable from the frame without affecting the others.
	Draw(dc *DrawContext) error

	// Recycle releases all references held by the drawable and returns it
	// to the pool it came from. Called on the render goroutine when the
	// owning Frame is recycled.
	Recycle()
}

// TerrainSurface is implemented by terrain drawables whose tessellated
// surface can be repainted in a solid color by surface drawables.
type TerrainSurface interface {
	DrawSurfaceColor(dc *DrawContext, c Color) error
}

// DrawError records one failed Drawable in a Frame's diagnostics.
type DrawError struct {
	// Index is the position of the drawable in draw order.
	Index int

	// SortKey is the key the drawable was offered with.
	SortKey float64

	// Drawable is the type name of the failing drawable.
	Drawable string

	// Err is the returned error or the recovered panic value.
	Err error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("render: drawable %d (%s, key %g): %v", e.Index, e.Drawable, e.SortKey, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }

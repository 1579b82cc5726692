// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/worldwind/internal/logging"
	"github.com/gogpu/worldwind/pool"
)

// RenderContext carries the state of one render pass on the render
// goroutine: the Frame being populated, the frame's terrain and the pools
// drawables come from.
type RenderContext struct {
	// Frame is the Frame being populated.
	Frame *Frame

	// Terrain is the tessellated terrain, set after tessellation.
	Terrain Terrain

	// Globe converts terrain intersections to positions.
	Globe Globe

	// Pools supplies per-type drawable pools. Use pool.Of[T](rc.Pools).
	Pools *pool.Registry

	// CurrentLayer is the layer being rendered, nil outside layer rendering.
	CurrentLayer Layer

	nextPickID    uint32
	pickExhausted bool
}

// NewRenderContext returns a context drawing its pools from pools. A nil
// registry gets a private unbounded one.
func NewRenderContext(pools *pool.Registry) *RenderContext {
	if pools == nil {
		pools = pool.NewRegistry(0)
	}
	return &RenderContext{Pools: pools}
}

// Begin prepares the context to populate f.
func (rc *RenderContext) Begin(f *Frame) {
	rc.Frame = f
	rc.Terrain = nil
	rc.CurrentLayer = nil
	rc.nextPickID = 0
	rc.pickExhausted = false
}

// End detaches the context from its Frame.
func (rc *RenderContext) End() {
	rc.Frame = nil
	rc.Terrain = nil
	rc.CurrentLayer = nil
}

// PickMode reports whether the Frame renders pick colors.
func (rc *RenderContext) PickMode() bool {
	return rc.Frame != nil && rc.Frame.PickMode()
}

// Viewport returns the Frame's viewport.
func (rc *RenderContext) Viewport() image.Rectangle {
	return rc.Frame.Viewport
}

// OfferSurfaceDrawable queues d in the surface queue.
func (rc *RenderContext) OfferSurfaceDrawable(d Drawable, sortKey float64) {
	rc.Frame.SurfaceDrawables.Offer(d, sortKey)
}

// OfferTerrainDrawable queues d in the terrain queue.
func (rc *RenderContext) OfferTerrainDrawable(d Drawable, sortKey float64) {
	rc.Frame.TerrainDrawables.Offer(d, sortKey)
}

// OfferPickedObject registers a pick candidate. Ignored outside pick mode.
func (rc *RenderContext) OfferPickedObject(po *PickedObject) {
	if list := rc.Frame.PickedObjects(); list != nil {
		list.Offer(po)
	}
}

// NextPickedObjectID returns a fresh identifier for this Frame's pick
// session. Once the 24-bit range is used up it returns 0, which callers
// treat as "not pickable", so identifiers never collide.
func (rc *RenderContext) NextPickedObjectID() uint32 {
	if rc.nextPickID >= MaxPickID {
		if !rc.pickExhausted {
			rc.pickExhausted = true
			logging.Logger().Warn("render: pick identifiers exhausted for frame",
				"max", MaxPickID)
		}
		return 0
	}
	rc.nextPickID++
	return rc.nextPickID
}

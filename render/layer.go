// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"
	"sync"

	"github.com/gogpu/worldwind/geom"
)

// Layer contributes drawables to each frame.
type Layer interface {
	// DisplayName identifies the layer in logs.
	DisplayName() string

	// Enabled reports whether the layer renders.
	Enabled() bool

	// Render offers the layer's drawables, with sort keys of its choosing,
	// to rc. In pick mode it also registers picked objects. Implementations
	// must not retain rc or its Frame after returning.
	Render(rc *RenderContext)
}

// Terrain is the tessellated terrain for one frame.
type Terrain interface {
	// Empty reports whether no terrain is visible.
	Empty() bool

	// Intersect returns the closest point where ray meets the terrain.
	Intersect(ray geom.Line) (geom.Vec3, bool)
}

// Tessellator produces the terrain for the current viewpoint. It offers
// its tile drawables to rc's terrain queue and returns the terrain used for
// pick-ray intersection.
type Tessellator interface {
	Tessellate(rc *RenderContext) Terrain
}

// Globe converts model coordinates to geographic positions.
type Globe interface {
	CartesianToGeographic(p geom.Vec3) geom.Position
}

// LayerList is an ordered list of layers. The application edits it while
// the render goroutine reads snapshots of it, so access is synchronized.
type LayerList struct {
	mu     sync.RWMutex
	layers []Layer
}

// NewLayerList returns a list holding layers in order.
func NewLayerList(layers ...Layer) *LayerList {
	return &LayerList{layers: slices.Clone(layers)}
}

// Add appends l to the end of the list.
func (ll *LayerList) Add(l Layer) {
	if l == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.layers = append(ll.layers, l)
}

// Insert places l at index i.
func (ll *LayerList) Insert(i int, l Layer) {
	if l == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	i = max(0, min(i, len(ll.layers)))
	ll.layers = slices.Insert(ll.layers, i, l)
}

// Remove deletes the first occurrence of l. It reports whether l was found.
func (ll *LayerList) Remove(l Layer) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	i := slices.Index(ll.layers, l)
	if i < 0 {
		return false
	}
	ll.layers = slices.Delete(ll.layers, i, i+1)
	return true
}

// Len returns the number of layers.
func (ll *LayerList) Len() int {
	ll.mu.RLock()
	defer ll.mu.RUnlock()
	return len(ll.layers)
}

// AppendTo appends the layers, in order, to dst and returns it.
func (ll *LayerList) AppendTo(dst []Layer) []Layer {
	ll.mu.RLock()
	defer ll.mu.RUnlock()
	return append(dst, ll.layers...)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sync"

	"github.com/gogpu/worldwind/geom"
	"github.com/gogpu/worldwind/pool"
)

// Frame is one complete rendering request handed from the render goroutine
// to the draw goroutine.
//
// Ownership: the render goroutine owns a Frame from ObtainFrame until it is
// submitted; the draw goroutine then reads it until SignalDone; after
// AwaitDone returns the render goroutine owns it again and calls Recycle.
// A Frame must never be mutated by two goroutines at once. Calling Recycle
// while another goroutine still holds the Frame is a programming error and
// is not detected.
type Frame struct {
	// Viewport is the drawable area in surface pixels.
	Viewport image.Rectangle

	// Projection, Modelview and InfiniteProjection come from the navigator.
	// InfiniteProjection has its far plane at infinity for sky rendering.
	Projection         geom.Matrix4
	Modelview          geom.Matrix4
	InfiniteProjection geom.Matrix4

	// SurfaceDrawables holds the shapes, overlays and surface passes.
	SurfaceDrawables DrawableQueue

	// TerrainDrawables holds the tessellated terrain tiles.
	TerrainDrawables DrawableQueue

	pickMode      bool
	pickPoint     image.Point
	hasPickPoint  bool
	pickViewport  image.Rectangle
	hasPickRect   bool
	pickRay       geom.Line
	hasPickRay    bool
	pickedObjects PickedObjectList
	pickAttached  bool

	diagnostics []error

	mu         sync.Mutex
	cond       *sync.Cond
	done       bool
	generation uint64

	pool *pool.Pool[*Frame]
}

// NewFrame allocates a Frame with default state that is not attached to a
// pool. Prefer ObtainFrame.
func NewFrame() *Frame {
	f := &Frame{}
	f.cond = sync.NewCond(&f.mu)
	f.reset()
	return f
}

// ObtainFrame returns a ready-to-populate Frame from p, or a new one when
// p is empty. The Frame returns to p on Recycle. A nil pool yields an
// unpooled Frame.
func ObtainFrame(p *pool.Pool[*Frame]) *Frame {
	if p != nil {
		if f, ok := p.Acquire(); ok && f != nil {
			f.pool = p
			return f
		}
	}
	f := NewFrame()
	f.pool = p
	return f
}

// SetPickMode switches the Frame between normal and pick rendering. Pick
// mode attaches an empty PickedObjectList.
func (f *Frame) SetPickMode(on bool) {
	f.pickMode = on
	if on && !f.pickAttached {
		f.pickedObjects.Clear()
		f.pickAttached = true
	}
}

// PickMode reports whether the Frame renders pick colors.
func (f *Frame) PickMode() bool { return f.pickMode }

// SetPickPoint requests a single-pixel pick at p.
func (f *Frame) SetPickPoint(p image.Point) {
	f.pickPoint = p
	f.hasPickPoint = true
}

// PickPoint returns the requested pick pixel, if any.
func (f *Frame) PickPoint() (image.Point, bool) {
	return f.pickPoint, f.hasPickPoint
}

// SetPickViewport requests a rectangular pick over r.
func (f *Frame) SetPickViewport(r image.Rectangle) {
	f.pickViewport = r
	f.hasPickRect = true
}

// PickViewport returns the requested pick rectangle, if any.
func (f *Frame) PickViewport() (image.Rectangle, bool) {
	return f.pickViewport, f.hasPickRect
}

// SetPickRay sets the ray used to locate the picked terrain position.
func (f *Frame) SetPickRay(l geom.Line) {
	f.pickRay = l
	f.hasPickRay = true
}

// PickRay returns the terrain pick ray, if any.
func (f *Frame) PickRay() (geom.Line, bool) {
	return f.pickRay, f.hasPickRay
}

// PickedObjects returns the pick candidates and results, or nil when the
// Frame is not in pick mode.
func (f *Frame) PickedObjects() *PickedObjectList {
	if !f.pickAttached {
		return nil
	}
	return &f.pickedObjects
}

// AddDiagnostic records a non-fatal failure observed while drawing.
func (f *Frame) AddDiagnostic(err error) {
	if err != nil {
		f.diagnostics = append(f.diagnostics, err)
	}
}

// Diagnostics returns the failures recorded for this Frame. The slice is
// reused after Recycle.
func (f *Frame) Diagnostics() []error {
	return f.diagnostics
}

// Generation increments on every Recycle. Holders can compare generations
// to detect use after release.
func (f *Frame) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation
}

// SignalDone marks the Frame done and wakes any waiter. Calls after the
// first, until the next Recycle, have no effect.
func (f *Frame) SignalDone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return
	}
	f.done = true
	f.cond.Broadcast()
}

// AwaitDone blocks until SignalDone has been called since the last
// Recycle. It returns immediately if that already happened. There is no
// timeout: a draw pass that never signals blocks the caller forever.
func (f *Frame) AwaitDone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for !f.done {
		f.cond.Wait()
	}
}

// IsDone reports whether SignalDone has been called since the last Recycle.
func (f *Frame) IsDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Recycle clears all state, recycling queued drawables, and returns the
// Frame to its pool.
func (f *Frame) Recycle() {
	f.SurfaceDrawables.Clear()
	f.TerrainDrawables.Clear()
	f.reset()

	f.mu.Lock()
	f.done = false
	f.generation++
	f.mu.Unlock()

	if p := f.pool; p != nil {
		f.pool = nil
		p.Release(f)
	}
}

func (f *Frame) reset() {
	f.Viewport = image.Rectangle{}
	f.Projection.SetToIdentity()
	f.Modelview.SetToIdentity()
	f.InfiniteProjection.SetToIdentity()
	f.pickMode = false
	f.pickPoint = image.Point{}
	f.hasPickPoint = false
	f.pickViewport = image.Rectangle{}
	f.hasPickRect = false
	f.pickRay = geom.Line{}
	f.hasPickRay = false
	f.pickedObjects.Clear()
	f.pickAttached = false
	clear(f.diagnostics)
	f.diagnostics = f.diagnostics[:0]
}

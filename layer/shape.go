// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/worldwind/pool"
	"github.com/gogpu/worldwind/render"
)

// Rectangle is a screen-space shape.
type Rectangle struct {
	// Name identifies the shape in pick results.
	Name string

	// Bounds is the shape's footprint in surface pixels.
	Bounds image.Rectangle

	// Color is the normal fill color.
	Color render.Color

	// Order is the sort key. Higher orders draw later, on top.
	Order float64

	// Unpickable excludes the shape from picking. It is drawn in
	// normal frames only.
	Unpickable bool
}

// ShapeLayer draws rectangles and registers them as pick candidates.
type ShapeLayer struct {
	Base

	mu     sync.RWMutex
	shapes []*Rectangle
}

// NewShapeLayer returns an empty, enabled layer.
func NewShapeLayer(name string) *ShapeLayer {
	return &ShapeLayer{Base: Base{name: name}}
}

// AddShape appends s to the layer.
func (l *ShapeLayer) AddShape(s *Rectangle) {
	if s == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shapes = append(l.shapes, s)
}

// RemoveShape deletes s. It reports whether s was present.
func (l *ShapeLayer) RemoveShape(s *Rectangle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.Index(l.shapes, s)
	if i < 0 {
		return false
	}
	l.shapes = slices.Delete(l.shapes, i, i+1)
	return true
}

// Len returns the number of shapes.
func (l *ShapeLayer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.shapes)
}

// Render offers one drawable per visible shape. In pick mode only shapes
// under the pick point, or overlapping the pick viewport, are drawn, each
// in its own pick color.
func (l *ShapeLayer) Render(rc *render.RenderContext) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	vp := rc.Viewport()
	drawables := pool.Of[*shapeDrawable](rc.Pools)
	pickMode := rc.PickMode()
	pickPoint, hasPoint := rc.Frame.PickPoint()
	pickRect, hasRect := rc.Frame.PickViewport()

	for _, s := range l.shapes {
		bounds := s.Bounds.Intersect(vp)
		if bounds.Empty() {
			continue
		}

		c := s.Color
		if pickMode {
			if s.Unpickable {
				continue
			}
			if hasPoint && !pickPoint.In(bounds) {
				continue
			}
			if hasRect && !bounds.Overlaps(pickRect) {
				continue
			}
			id := rc.NextPickedObjectID()
			if id == 0 {
				continue
			}
			var err error
			if c, err = render.EncodePickID(id); err != nil {
				continue
			}
			rc.OfferPickedObject(render.NewPickedObject(id, s, l))
		}

		d, ok := drawables.Acquire()
		if !ok {
			d = &shapeDrawable{}
		}
		d.pool = drawables
		d.bounds = bounds
		d.color = c
		rc.OfferSurfaceDrawable(d, s.Order)
	}
}

// shapeDrawable fills one rectangle.
type shapeDrawable struct {
	bounds image.Rectangle
	color  render.Color
	pool   *pool.Pool[*shapeDrawable]
}

func (d *shapeDrawable) Draw(dc *render.DrawContext) error {
	canvas, err := render.CanvasOf(dc)
	if err != nil {
		return err
	}
	canvas.FillRect(d.bounds, d.color)
	return nil
}

func (d *shapeDrawable) Recycle() {
	p := d.pool
	*d = shapeDrawable{}
	if p != nil {
		p.Release(d)
	}
}

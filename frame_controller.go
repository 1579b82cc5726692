package worldwind

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/worldwind/pool"
	"github.com/gogpu/worldwind/render"
)

// ErrDrawablePanic wraps the value recovered from a panicking Drawable.
var ErrDrawablePanic = errors.New("worldwind: drawable panicked")

// ErrLayerPanic wraps the value recovered from a panicking Layer.
var ErrLayerPanic = errors.New("worldwind: layer panicked")

// FrameController fills Frames on the render goroutine and draws them on
// the draw goroutine.
type FrameController interface {
	// RenderFrame populates rc.Frame. It makes no graphics calls.
	RenderFrame(rc *render.RenderContext)

	// DrawFrame draws f into dc's target, resolves picks and signals f done.
	// It must call f.SignalDone on every path.
	DrawFrame(dc *render.DrawContext, f *render.Frame)
}

// BasicFrameController tessellates terrain, renders layers in order and
// resolves point and rectangle picks from read-back pick colors.
//
// A BasicFrameController is used by one render goroutine and one draw
// goroutine; RenderFrame and DrawFrame are not safe to call concurrently
// with themselves.
type BasicFrameController struct {
	// Tessellator produces the terrain. Nil means no terrain.
	Tessellator render.Tessellator

	// Layers is rendered in order. Nil means no layers.
	Layers *render.LayerList

	// ClearColor is the background of normal frames. Pick frames always
	// clear to black, which decodes to "no object".
	ClearColor render.Color

	layerBuf []render.Layer
}

// RenderFrame implements FrameController.
func (c *BasicFrameController) RenderFrame(rc *render.RenderContext) {
	if c.Tessellator != nil {
		rc.Terrain = c.Tessellator.Tessellate(rc)
	}

	var terrainID uint32
	if rc.PickMode() && rc.Terrain != nil && !rc.Terrain.Empty() {
		terrainID = c.offerSurfaceColor(rc)
	}

	if c.Layers != nil {
		c.layerBuf = c.Layers.AppendTo(c.layerBuf[:0])
		for _, l := range c.layerBuf {
			if l == nil || !l.Enabled() {
				continue
			}
			rc.CurrentLayer = l
			renderLayer(rc, l)
		}
		rc.CurrentLayer = nil
		clear(c.layerBuf)
	}

	if terrainID != 0 {
		c.offerTerrainObject(rc, terrainID)
	}
}

// offerSurfaceColor queues the drawable that repaints the terrain in a
// fresh pick color and returns that color's identifier.
func (c *BasicFrameController) offerSurfaceColor(rc *render.RenderContext) uint32 {
	return c.offerSurfaceColorID(rc, rc.NextPickedObjectID())
}

func (c *BasicFrameController) offerSurfaceColorID(rc *render.RenderContext, id uint32) uint32 {
	if id == 0 {
		return 0
	}
	color, err := render.EncodePickID(id)
	if err != nil {
		Logger().Warn("worldwind: terrain pick color rejected", "id", id, "error", err)
		return 0
	}
	surfaces := pool.Of[*surfaceColorDrawable](rc.Pools)
	d, ok := surfaces.Acquire()
	if !ok {
		d = &surfaceColorDrawable{}
	}
	d.pool = surfaces
	d.color = color
	rc.OfferSurfaceDrawable(d, render.SortKeyFirst)
	return id
}

func (c *BasicFrameController) offerTerrainObject(rc *render.RenderContext, id uint32) {
	ray, ok := rc.Frame.PickRay()
	if !ok || rc.Globe == nil {
		return
	}
	pt, ok := rc.Terrain.Intersect(ray)
	if !ok {
		return
	}
	pos := rc.Globe.CartesianToGeographic(pt)
	pos.Altitude = 0
	rc.OfferPickedObject(render.NewTerrainPickedObject(id, pos))
}

func renderLayer(rc *render.RenderContext, l render.Layer) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %s: %v", ErrLayerPanic, l.DisplayName(), r)
			rc.Frame.AddDiagnostic(err)
			Logger().Warn("worldwind: layer render failed",
				"layer", l.DisplayName(), "error", err)
		}
	}()
	l.Render(rc)
}

// DrawFrame implements FrameController.
func (c *BasicFrameController) DrawFrame(dc *render.DrawContext, f *render.Frame) {
	defer f.SignalDone()

	dc.Begin(f)
	defer dc.End()

	clearColor := c.ClearColor
	if f.PickMode() {
		clearColor = render.Black
	}
	if err := dc.Target().Clear(clearColor); err != nil {
		f.AddDiagnostic(fmt.Errorf("worldwind: clear: %w", err))
		Logger().Warn("worldwind: clear failed", "error", err)
	}

	drawQueue(dc, f, &f.TerrainDrawables)
	drawQueue(dc, f, &f.SurfaceDrawables)

	if f.PickMode() {
		resolvePick(dc, f)
	}
}

func drawQueue(dc *render.DrawContext, f *render.Frame, q *render.DrawableQueue) {
	for i := 0; ; i++ {
		key, ok := q.PeekKey()
		if !ok {
			return
		}
		d := q.Poll()
		if err := drawOne(dc, d); err != nil {
			derr := &render.DrawError{
				Index:    i,
				SortKey:  key,
				Drawable: fmt.Sprintf("%T", d),
				Err:      err,
			}
			f.AddDiagnostic(derr)
			Logger().Warn("worldwind: drawable failed", "error", derr)
		}
	}
}

func drawOne(dc *render.DrawContext, d render.Drawable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDrawablePanic, r)
		}
	}()
	return d.Draw(dc)
}

// resolvePick narrows the Frame's pick list to what is visible. Nothing is
// read back when there are no candidates.
func resolvePick(dc *render.DrawContext, f *render.Frame) {
	list := f.PickedObjects()
	if list == nil || list.Count() == 0 {
		return
	}

	if p, ok := f.PickPoint(); ok {
		resolvePickPoint(dc, list, p.X, p.Y)
		return
	}
	if r, ok := f.PickViewport(); ok {
		resolvePickRect(dc, list, r)
	}
}

func resolvePickPoint(dc *render.DrawContext, list *render.PickedObjectList, x, y int) {
	c, err := dc.ReadPixelColor(x, y)
	if err != nil {
		Logger().Warn("worldwind: pick read-back failed", "error", err)
		list.Clear()
		return
	}

	top := list.PickedObject(render.DecodePickColor(c))
	if top == nil {
		list.Clear()
		return
	}
	top.MarkOnTop()
	terrain := list.TerrainPickedObject()
	list.Clear()
	list.Offer(top)
	if terrain != nil && terrain != top {
		list.Offer(terrain)
	}
	Logger().Debug("worldwind: point pick resolved",
		"top", top.Identifier(), "terrain", terrain != nil)
}

func resolvePickRect(dc *render.DrawContext, list *render.PickedObjectList, r image.Rectangle) {
	colors, err := dc.ReadPixelColors(r)
	if err != nil {
		Logger().Warn("worldwind: pick read-back failed", "error", err)
		list.Clear()
		return
	}
	for _, c := range colors {
		if po := list.PickedObject(render.DecodePickColor(c)); po != nil {
			po.MarkOnTop()
		}
	}
	list.KeepTopObjects()
	Logger().Debug("worldwind: rectangle pick resolved",
		"colors", len(colors), "objects", list.Count())
}

// surfaceColorDrawable repaints every terrain drawable in one pick color.
type surfaceColorDrawable struct {
	color render.Color
	pool  *pool.Pool[*surfaceColorDrawable]
}

func (d *surfaceColorDrawable) Draw(dc *render.DrawContext) error {
	var errs []error
	for i := 0; i < dc.TerrainDrawableCount(); i++ {
		ts, ok := dc.TerrainDrawable(i).(render.TerrainSurface)
		if !ok {
			continue
		}
		if err := ts.DrawSurfaceColor(dc, d.color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *surfaceColorDrawable) Recycle() {
	p := d.pool
	*d = surfaceColorDrawable{}
	if p != nil {
		p.Release(d)
	}
}

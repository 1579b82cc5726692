package worldwind

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/worldwind/geom"
	"github.com/gogpu/worldwind/layer"
	"github.com/gogpu/worldwind/render"
	"github.com/gogpu/worldwind/terrain"
)

// countingTarget counts pixel read-backs.
type countingTarget struct {
	*render.PixmapTarget
	reads int
}

func newCountingTarget(w, h int) *countingTarget {
	return &countingTarget{PixmapTarget: render.NewPixmapTarget(w, h)}
}

func (t *countingTarget) ReadPixels(r image.Rectangle, dst []byte) ([]byte, error) {
	t.reads++
	return t.PixmapTarget.ReadPixels(r, dst)
}

// funcLayer renders through a function.
type funcLayer struct {
	name   string
	render func(rc *render.RenderContext)
}

func (l *funcLayer) DisplayName() string             { return l.name }
func (l *funcLayer) Enabled() bool                   { return true }
func (l *funcLayer) Render(rc *render.RenderContext) { l.render(rc) }

// funcDrawable draws through a function.
type funcDrawable struct {
	draw     func(dc *render.DrawContext) error
	recycled bool
}

func (d *funcDrawable) Draw(dc *render.DrawContext) error { return d.draw(dc) }
func (d *funcDrawable) Recycle()                          { d.recycled = true }

// pickFixture renders and draws one pick frame through a BasicFrameController.
type pickFixture struct {
	controller *BasicFrameController
	target     *countingTarget
	rc         *render.RenderContext
	dc         *render.DrawContext
}

func newPickFixture(tess render.Tessellator, layers ...render.Layer) *pickFixture {
	target := newCountingTarget(16, 16)
	rc := render.NewRenderContext(nil)
	rc.Globe = terrain.PlateCarree{DegreesPerUnit: 1}
	return &pickFixture{
		controller: &BasicFrameController{
			Tessellator: tess,
			Layers:      render.NewLayerList(layers...),
			ClearColor:  render.White,
		},
		target: target,
		rc:     rc,
		dc:     render.NewDrawContext(target),
	}
}

func (fx *pickFixture) frame() *render.Frame {
	f := render.NewFrame()
	f.Viewport = image.Rect(0, 0, 16, 16)
	return f
}

func (fx *pickFixture) pickPoint(p image.Point) *render.Frame {
	f := fx.frame()
	f.SetPickMode(true)
	f.SetPickPoint(p)
	if ray, ok := (ScreenNavigator{}).PickRay(f.Viewport, p); ok {
		f.SetPickRay(ray)
	}
	fx.run(f)
	return f
}

func (fx *pickFixture) pickRect(r image.Rectangle) *render.Frame {
	f := fx.frame()
	f.SetPickMode(true)
	f.SetPickViewport(r)
	fx.run(f)
	return f
}

func (fx *pickFixture) run(f *render.Frame) {
	fx.rc.Begin(f)
	fx.controller.RenderFrame(fx.rc)
	fx.rc.End()
	fx.controller.DrawFrame(fx.dc, f)
}

func shapeLayer(shapes ...*layer.Rectangle) *layer.ShapeLayer {
	l := layer.NewShapeLayer("shapes")
	for _, s := range shapes {
		l.AddShape(s)
	}
	return l
}

func TestBasicFrameController_NoCandidatesSkipsReadBack(t *testing.T) {
	tests := []struct {
		name   string
		fx     *pickFixture
		point  bool
		expect int
	}{
		{"empty scene point", newPickFixture(nil), true, 0},
		{"empty scene rect", newPickFixture(nil), false, 0},
		{"shape elsewhere", newPickFixture(nil, shapeLayer(&layer.Rectangle{Bounds: image.Rect(10, 10, 12, 12)})), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *render.Frame
			if tt.point {
				f = tt.fx.pickPoint(image.Pt(2, 2))
			} else {
				f = tt.fx.pickRect(image.Rect(0, 0, 4, 4))
			}
			if tt.fx.target.reads != tt.expect {
				t.Errorf("ReadPixels called %d times, want %d", tt.fx.target.reads, tt.expect)
			}
			if f.PickedObjects().Count() != 0 {
				t.Errorf("Count() = %d, want 0", f.PickedObjects().Count())
			}
			if !f.IsDone() {
				t.Error("frame not signalled done")
			}
		})
	}
}

func TestBasicFrameController_PickPointShapeAndTerrain(t *testing.T) {
	box := &layer.Rectangle{Name: "box", Bounds: image.Rect(2, 2, 6, 6), Color: render.White}
	fx := newPickFixture(&terrain.PlaneTessellator{TileSize: 8}, shapeLayer(box))

	f := fx.pickPoint(image.Pt(3, 3))
	list := f.PickedObjects()
	if fx.target.reads != 1 {
		t.Errorf("ReadPixels called %d times, want 1", fx.target.reads)
	}
	if list.Count() != 2 {
		t.Fatalf("Count() = %d, want top object and terrain", list.Count())
	}

	top := list.TopPickedObject()
	if top == nil || top.UserObject() != box {
		t.Fatalf("top = %v, want the box", top)
	}

	ter := list.TerrainPickedObject()
	if ter == nil {
		t.Fatal("terrain object missing")
	}
	if ter.IsOnTop() {
		t.Error("terrain under the box marked on top")
	}
	pos, _ := ter.TerrainPosition()
	want := geom.Position{Latitude: -3.5, Longitude: 3.5}
	if pos != want {
		t.Errorf("terrain position = %v, want %v", pos, want)
	}
}

func TestBasicFrameController_PickPointTerrainOnly(t *testing.T) {
	box := &layer.Rectangle{Bounds: image.Rect(2, 2, 6, 6)}
	fx := newPickFixture(&terrain.PlaneTessellator{Elevation: 50}, shapeLayer(box))

	f := fx.pickPoint(image.Pt(12, 12))
	list := f.PickedObjects()
	if list.Count() != 1 {
		t.Fatalf("Count() = %d, want terrain only", list.Count())
	}
	top := list.TopPickedObject()
	if top == nil || !top.IsTerrain() {
		t.Fatalf("top = %v, want terrain", top)
	}
	if pos, _ := top.TerrainPosition(); pos.Altitude != 0 {
		t.Errorf("terrain altitude = %v, want 0", pos.Altitude)
	}
}

func TestBasicFrameController_PickPointNothingDrawn(t *testing.T) {
	ghost := &funcLayer{name: "ghost", render: func(rc *render.RenderContext) {
		id := rc.NextPickedObjectID()
		rc.OfferPickedObject(render.NewPickedObject(id, "ghost", nil))
	}}
	fx := newPickFixture(nil, ghost)

	f := fx.pickPoint(image.Pt(1, 1))
	if fx.target.reads != 1 {
		t.Errorf("ReadPixels called %d times, want 1", fx.target.reads)
	}
	if f.PickedObjects().Count() != 0 {
		t.Errorf("Count() = %d, want cleared list", f.PickedObjects().Count())
	}
}

func TestBasicFrameController_PickRect(t *testing.T) {
	hidden := &layer.Rectangle{Name: "hidden", Bounds: image.Rect(0, 0, 4, 4), Order: 0}
	a := &layer.Rectangle{Name: "a", Bounds: image.Rect(0, 0, 4, 4), Order: 1}
	b := &layer.Rectangle{Name: "b", Bounds: image.Rect(4, 0, 8, 4), Order: 1}
	far := &layer.Rectangle{Name: "far", Bounds: image.Rect(12, 12, 16, 16)}
	fx := newPickFixture(&terrain.PlaneTessellator{}, shapeLayer(hidden, a, b, far))

	f := fx.pickRect(image.Rect(2, 0, 10, 4))
	list := f.PickedObjects()

	got := make(map[any]bool)
	for _, po := range list.Objects() {
		if !po.IsOnTop() {
			t.Errorf("%v kept but not on top", po)
		}
		got[po.UserObject()] = true
	}
	if len(got) != 2 || !got[a] || !got[b] {
		t.Errorf("picked %v, want a and b", got)
	}
	if fx.target.reads != 1 {
		t.Errorf("ReadPixels called %d times, want 1", fx.target.reads)
	}
}

func TestBasicFrameController_DrawableFailuresIsolated(t *testing.T) {
	boom := errors.New("boom")
	failing := &funcDrawable{draw: func(*render.DrawContext) error { return boom }}
	panicking := &funcDrawable{draw: func(*render.DrawContext) error { panic("kaput") }}
	l := &funcLayer{name: "mixed", render: func(rc *render.RenderContext) {
		rc.OfferSurfaceDrawable(failing, 1)
		rc.OfferSurfaceDrawable(panicking, 2)
	}}
	box := &layer.Rectangle{Bounds: image.Rect(0, 0, 4, 4), Color: render.Black, Order: 3}
	fx := newPickFixture(nil, l, shapeLayer(box))

	f := fx.frame()
	fx.run(f)

	diags := f.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %v, want 2 entries", diags)
	}
	var derr *render.DrawError
	if !errors.As(diags[0], &derr) || derr.Index != 0 || derr.SortKey != 1 {
		t.Errorf("first diagnostic = %v", diags[0])
	}
	if !errors.Is(diags[0], boom) {
		t.Errorf("first diagnostic does not wrap the draw error: %v", diags[0])
	}
	if !errors.Is(diags[1], ErrDrawablePanic) {
		t.Errorf("second diagnostic = %v, want ErrDrawablePanic", diags[1])
	}
	if got := fx.target.GetPixel(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("drawable after failures not drawn: %v", got)
	}
	if !f.IsDone() {
		t.Error("frame not signalled done")
	}

	f.Recycle()
	if !failing.recycled || !panicking.recycled {
		t.Error("failed drawables not recycled")
	}
}

func TestBasicFrameController_LayerPanicIsolated(t *testing.T) {
	bad := &funcLayer{name: "bad", render: func(*render.RenderContext) { panic("layer") }}
	box := &layer.Rectangle{Bounds: image.Rect(0, 0, 4, 4)}
	fx := newPickFixture(nil, bad, shapeLayer(box))

	f := fx.frame()
	fx.rc.Begin(f)
	fx.controller.RenderFrame(fx.rc)
	fx.rc.End()

	if f.SurfaceDrawables.Len() != 1 {
		t.Errorf("queued %d drawables, want the layer after the panic", f.SurfaceDrawables.Len())
	}
	diags := f.Diagnostics()
	if len(diags) != 1 || !errors.Is(diags[0], ErrLayerPanic) {
		t.Errorf("diagnostics = %v, want one ErrLayerPanic", diags)
	}
}

// panicTarget panics on Clear.
type panicTarget struct {
	*render.PixmapTarget
}

func (panicTarget) Clear(render.Color) error { panic("device lost") }

func TestBasicFrameController_SignalsDoneOnPanic(t *testing.T) {
	c := &BasicFrameController{}
	dc := render.NewDrawContext(panicTarget{render.NewPixmapTarget(4, 4)})
	f := render.NewFrame()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		c.DrawFrame(dc, f)
	}()
	if !f.IsDone() {
		t.Error("frame not signalled done after panic")
	}
	if dc.Frame() != nil {
		t.Error("draw context still attached")
	}
}

func TestBasicFrameController_ClearColor(t *testing.T) {
	fx := newPickFixture(nil)

	f := fx.frame()
	fx.run(f)
	if got := fx.target.GetPixel(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("normal frame background = %v, want white", got)
	}

	fx.pickPoint(image.Pt(0, 0))
	if got := fx.target.GetPixel(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pick frame background = %v, want black", got)
	}
}

func TestSurfaceColorDrawable_RepaintsTerrain(t *testing.T) {
	fx := newPickFixture(&terrain.PlaneTessellator{TileSize: 4})
	f := fx.frame()
	f.SetPickMode(true)
	f.SetPickPoint(image.Pt(100, 100))
	fx.run(f)

	c, err := fx.dc.ReadPixelColor(15, 15)
	if err != nil {
		t.Fatal(err)
	}
	if got := render.DecodePickColor(c); got != 1 {
		t.Errorf("terrain pick color decodes to %d, want 1", got)
	}
}

func TestBasicFrameController_SurfaceColorIDOutOfRange(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	fx := newPickFixture(nil)
	f := fx.pickPoint(image.Pt(1, 1))
	fx.rc.Begin(f)
	defer fx.rc.End()

	if id := fx.controller.offerSurfaceColorID(fx.rc, render.MaxPickID+1); id != 0 {
		t.Errorf("id = %d, want 0", id)
	}
	if n := f.SurfaceDrawables.Len(); n != 0 {
		t.Errorf("queued %d drawables, want 0", n)
	}
	if !strings.Contains(buf.String(), "terrain pick color rejected") {
		t.Errorf("no warning logged, got: %s", buf.String())
	}
}

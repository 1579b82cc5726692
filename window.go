package worldwind

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gogpu/worldwind/pool"
	"github.com/gogpu/worldwind/render"
)

var (
	// ErrNilTarget is returned by NewWorldWindow for a nil target.
	ErrNilTarget = errors.New("worldwind: nil target")

	// ErrRunning is returned when the window is already running, or when a
	// synchronous call overlaps Run.
	ErrRunning = errors.New("worldwind: window is running")

	// ErrNotRunning is returned by Pick and PickRect when Run is not active.
	ErrNotRunning = errors.New("worldwind: window is not running")
)

// FrameInfo describes a finished frame.
type FrameInfo struct {
	// Number counts frames since the window was created, starting at 1.
	Number uint64

	// Pick reports whether the frame was a pick frame.
	Pick bool

	// Diagnostics holds the frame's draw failures. It is valid only during
	// the callback.
	Diagnostics []error
}

// WorldWindow schedules frames for one surface. A render goroutine builds
// Frames and a draw goroutine draws them, with at most one Frame in flight.
// Frames are produced on demand: after RequestRedraw or a pick, never in a
// continuous loop.
type WorldWindow struct {
	target     render.Target
	device     render.DeviceHandle
	controller FrameController
	navigator  Navigator
	layers     *render.LayerList
	clearColor render.Color
	onFrame    func(FrameInfo)

	frames *pool.Pool[*render.Frame]
	pools  *pool.Registry
	rc     *render.RenderContext
	dc     *render.DrawContext

	redraw chan struct{}
	picks  chan *pickRequest

	running atomic.Bool
	mu      sync.Mutex
	stopped chan struct{}

	frameNumber uint64
}

type pickRequest struct {
	point  image.Point
	rect   image.Rectangle
	isRect bool
	result chan *render.PickedObjectList
}

// NewWorldWindow returns a window drawing into target.
func NewWorldWindow(target render.Target, opts ...Option) (*WorldWindow, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	o := defaultWindowOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &WorldWindow{
		target:     target,
		device:     o.device,
		navigator:  o.navigator,
		layers:     render.NewLayerList(o.layers...),
		clearColor: o.clearColor,
		onFrame:    o.onFrame,
		frames:     pool.New[*render.Frame](1),
		pools:      pool.NewRegistry(o.maxPooled),
		redraw:     make(chan struct{}, 1),
		picks:      make(chan *pickRequest, 4),
	}
	w.controller = o.controller
	if w.controller == nil {
		w.controller = &BasicFrameController{
			Tessellator: o.tessellator,
			Layers:      w.layers,
			ClearColor:  o.clearColor,
		}
	}
	w.rc = render.NewRenderContext(w.pools)
	w.rc.Globe = o.globe
	w.dc = render.NewDrawContext(target)
	w.dc.SetPixelFormat(w.device.SurfaceFormat())
	return w, nil
}

// Target returns the surface the window draws into.
func (w *WorldWindow) Target() render.Target { return w.target }

// Device returns the GPU device provider.
func (w *WorldWindow) Device() render.DeviceHandle { return w.device }

// Layers returns the window's layers. The list may be edited while the
// window runs; edits take effect from the next frame.
func (w *WorldWindow) Layers() *render.LayerList { return w.layers }

// Pools returns the drawable pool registry.
func (w *WorldWindow) Pools() *pool.Registry { return w.pools }

// RequestRedraw asks for a new frame. Requests made before the frame
// starts are coalesced.
func (w *WorldWindow) RequestRedraw() {
	select {
	case w.redraw <- struct{}{}:
	default:
	}
}

// Run starts the render and draw goroutines and blocks until ctx is done
// and both have exited. It draws one frame on start. A frame in flight
// when ctx is cancelled is drawn and recycled before Run returns.
func (w *WorldWindow) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer w.running.Store(false)

	stopped := make(chan struct{})
	w.mu.Lock()
	w.stopped = stopped
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.stopped = nil
		w.mu.Unlock()
		close(stopped)
	}()

	Logger().Info("worldwind: window started",
		"width", w.target.Width(), "height", w.target.Height(),
		"device", render.HasDevice(w.device))

	handoff := make(chan *render.Frame, 1)
	drawExited := make(chan struct{})
	go func() {
		defer close(drawExited)
		w.drawLoop(handoff)
	}()

	w.RequestRedraw()
	w.renderLoop(ctx, handoff)
	<-drawExited

	Logger().Info("worldwind: window stopped", "frames", w.frameNumber)
	return nil
}

// renderLoop populates a Frame only after the previous one has signalled
// done, so at most one Frame exists at a time.
func (w *WorldWindow) renderLoop(ctx context.Context, handoff chan<- *render.Frame) {
	defer close(handoff)

	for {
		var req *pickRequest
		select {
		case <-ctx.Done():
			return
		case req = <-w.picks:
		case <-w.redraw:
		}

		f := w.renderFrame(req)
		handoff <- f
		f.AwaitDone()
		w.finish(f, req)
		if req != nil {
			w.RequestRedraw()
		}
	}
}

func (w *WorldWindow) drawLoop(handoff <-chan *render.Frame) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for f := range handoff {
		present := !f.PickMode()
		w.controller.DrawFrame(w.dc, f)
		if present {
			w.present()
		}
	}
}

func (w *WorldWindow) present() {
	p, ok := w.target.(render.Presenter)
	if !ok {
		return
	}
	if err := p.Present(); err != nil {
		Logger().Warn("worldwind: present failed", "error", err)
	}
}

// renderFrame obtains a Frame and populates it for req, or for a normal
// redraw when req is nil.
func (w *WorldWindow) renderFrame(req *pickRequest) *render.Frame {
	f := render.ObtainFrame(w.frames)
	vp := image.Rect(0, 0, w.target.Width(), w.target.Height())
	f.Viewport = vp
	f.Projection, f.Modelview, f.InfiniteProjection = w.navigator.Matrices(vp)

	if req != nil {
		f.SetPickMode(true)
		if req.isRect {
			f.SetPickViewport(req.rect.Intersect(vp))
		} else {
			f.SetPickPoint(req.point)
			if ray, ok := w.navigator.PickRay(vp, req.point); ok {
				f.SetPickRay(ray)
			}
		}
	}

	w.rc.Begin(f)
	w.controller.RenderFrame(w.rc)
	w.rc.End()
	return f
}

// finish delivers a drawn Frame's results and recycles it.
func (w *WorldWindow) finish(f *render.Frame, req *pickRequest) {
	w.frameNumber++
	if req != nil {
		var result *render.PickedObjectList
		if list := f.PickedObjects(); list != nil {
			result = list.Clone()
		} else {
			result = render.NewPickedObjectList()
		}
		req.result <- result
	}
	if w.onFrame != nil {
		w.onFrame(FrameInfo{
			Number:      w.frameNumber,
			Pick:        f.PickMode(),
			Diagnostics: f.Diagnostics(),
		})
	}
	f.Recycle()
}

// Pick returns the objects at screen point p: the top object and, when
// the terrain is under p, the terrain position. The list is empty when
// nothing is under p.
func (w *WorldWindow) Pick(ctx context.Context, p image.Point) (*render.PickedObjectList, error) {
	return w.pick(ctx, &pickRequest{point: p})
}

// PickRect returns every object visible inside r, each marked on top.
func (w *WorldWindow) PickRect(ctx context.Context, r image.Rectangle) (*render.PickedObjectList, error) {
	return w.pick(ctx, &pickRequest{rect: r, isRect: true})
}

func (w *WorldWindow) pick(ctx context.Context, req *pickRequest) (*render.PickedObjectList, error) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped == nil {
		return nil, ErrNotRunning
	}

	req.result = make(chan *render.PickedObjectList, 1)
	select {
	case w.picks <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-stopped:
		return nil, ErrNotRunning
	}

	select {
	case list := <-req.result:
		return list, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-stopped:
		// The last frame is finished before Run returns.
		select {
		case list := <-req.result:
			return list, nil
		default:
			return nil, ErrNotRunning
		}
	}
}

// RedrawNow renders and draws one frame on the calling goroutine. It
// returns ErrRunning while Run is active.
func (w *WorldWindow) RedrawNow() error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer w.running.Store(false)
	w.runOnce(nil)
	return nil
}

// PickNow is the synchronous form of Pick. The displayed image is redrawn
// after the pick frame.
func (w *WorldWindow) PickNow(p image.Point) (*render.PickedObjectList, error) {
	return w.pickNow(&pickRequest{point: p})
}

// PickRectNow is the synchronous form of PickRect.
func (w *WorldWindow) PickRectNow(r image.Rectangle) (*render.PickedObjectList, error) {
	return w.pickNow(&pickRequest{rect: r, isRect: true})
}

func (w *WorldWindow) pickNow(req *pickRequest) (*render.PickedObjectList, error) {
	if !w.running.CompareAndSwap(false, true) {
		return nil, ErrRunning
	}
	defer w.running.Store(false)

	req.result = make(chan *render.PickedObjectList, 1)
	w.runOnce(req)
	w.runOnce(nil)
	return <-req.result, nil
}

// runOnce keeps the pipeline order on one goroutine: render, draw, await,
// recycle.
func (w *WorldWindow) runOnce(req *pickRequest) {
	f := w.renderFrame(req)
	present := !f.PickMode()
	w.controller.DrawFrame(w.dc, f)
	if present {
		w.present()
	}
	f.AwaitDone()
	w.finish(f, req)
}

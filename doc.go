// Package worldwind renders tiled geodetic scenes on demand and identifies
// the objects under a screen point or inside a screen rectangle.
//
// # Overview
//
// A WorldWindow runs two goroutines. The render goroutine builds a Frame:
// it tessellates the terrain, asks each Layer for drawables and queues them
// by sort key. The draw goroutine drains the Frame's queues into the
// Target, resolves picks and signals the Frame done. At most one Frame is
// in flight; the render goroutine waits for it before submitting the next,
// then recycles it. Frames and drawables come from pools, so a steady
// scene renders without allocating.
//
// # Quick Start
//
//	target := render.NewPixmapTarget(800, 600)
//	shapes := layer.NewShapeLayer("shapes")
//	shapes.AddShape(&layer.Rectangle{Name: "box", Bounds: image.Rect(100, 100, 200, 200), Color: render.White})
//
//	w, err := worldwind.NewWorldWindow(target,
//		worldwind.WithTessellator(&terrain.PlaneTessellator{}),
//		worldwind.WithLayers(shapes),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	go w.Run(ctx)
//	picked, err := w.Pick(ctx, image.Pt(150, 150))
//
// # Picking
//
// A pick renders a Frame in pick mode: every candidate object is drawn in
// a color encoding its 24-bit identifier and the draw goroutine reads the
// pixels back. A point pick keeps the object on top and the terrain
// position; a rectangle pick keeps every object with a visible pixel. When
// a Frame has no candidates nothing is read back.
//
// # Architecture
//
//   - worldwind: WorldWindow, FrameController, Navigator
//   - render: Frame, DrawableQueue, PickedObjectList, pick color codec, Target
//   - pool: typed free lists for Frames and drawables
//   - terrain, layer: a flat terrain and basic layers
//   - geom: vectors, matrices, rays and positions
//
// # Logging
//
// worldwind is silent by default. Call SetLogger to enable log output.
package worldwind

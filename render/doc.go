// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the frame handed from the render goroutine to the
// draw goroutine and the picking model that resolves what a user touched.
//
// # Frames
//
// A Frame is populated through a RenderContext: the tessellator fills the
// terrain queue, layers fill the surface queue with Drawables and sort keys,
// and in pick mode they register PickedObjects under identifiers from
// RenderContext.NextPickedObjectID. The draw goroutine then reads the Frame
// through a DrawContext, executes its Drawables in sort order and calls
// SignalDone. The render goroutine blocks in AwaitDone, then Recycles the
// Frame, which recycles every queued Drawable.
//
//	f := render.ObtainFrame(framePool)
//	rc.Begin(f)
//	// ... tessellate, render layers ...
//	frames <- f
//	f.AwaitDone()
//	f.Recycle()
//
// # Picking
//
// Each pickable object is drawn in the unique opaque color returned by
// EncodePickID. After drawing, the pixel (or rectangle) under the pick
// point is read back with DrawContext.ReadPixelColor or ReadPixelColors and
// decoded with DecodePickColor. Identifier 0 (opaque black) means nothing
// was hit.
//
// # Targets
//
// Target abstracts the surface the draw pass renders into. PixmapTarget is
// a CPU implementation backed by *image.RGBA; GPU hosts provide their own
// Target and a DeviceHandle.
//
// # Thread Safety
//
// Frame completion signaling (SignalDone, AwaitDone, IsDone, Generation)
// and LayerList are safe for concurrent use. Everything else is confined to
// whichever goroutine currently owns the Frame.
package render

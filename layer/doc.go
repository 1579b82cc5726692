// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer provides layers that contribute drawables to frames.
//
//   - ShapeLayer: pickable screen-space rectangles ordered by sort key
//   - OverlayLayer: a whole-viewport tint composited after everything else
//
// Drawables come from per-type pools in the render context's registry and
// return to them when the frame is recycled.
package layer

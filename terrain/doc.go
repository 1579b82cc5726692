// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package terrain provides a flat tiled terrain for the frame pipeline.
//
// PlaneTessellator covers the viewport with square tiles lying on a
// horizontal plane in model space, where model x and y equal surface pixels
// and z is height. It is the terrain used by the demo and by tests; real
// globes supply their own render.Tessellator.
package terrain

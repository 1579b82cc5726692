// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import "sync/atomic"

// Base holds the name and enabled flag shared by layers. The flag may be
// toggled from any goroutine.
type Base struct {
	name     string
	disabled atomic.Bool
}

// DisplayName returns the layer name.
func (b *Base) DisplayName() string { return b.name }

// Enabled reports whether the layer renders.
func (b *Base) Enabled() bool { return !b.disabled.Load() }

// SetEnabled turns rendering on or off.
func (b *Base) SetEnabled(on bool) { b.disabled.Store(!on) }

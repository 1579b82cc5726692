// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA8 converts c to 8-bit channels, rounding each component to the
// nearest integer after clamping to [0, 1].
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

// ColorFromRGBA8 converts 8-bit channels to a Color.
func ColorFromRGBA8(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func unitToByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}

// MaxPickID is the largest identifier representable by a pick color.
// Identifiers occupy the red, green and blue channels, 8 bits each.
const MaxPickID uint32 = 0xFFFFFF

// ErrPickIDRange is returned by EncodePickID for identifiers that do not
// fit in 24 bits.
var ErrPickIDRange = errors.New("render: pick identifier exceeds 24 bits")

// EncodePickID returns the unique opaque color for a pick identifier:
// red carries bits 16-23, green bits 8-15 and blue bits 0-7, each divided
// by 255. Alpha is always 1 so blending cannot leak a partial pick color.
// Identifier 0 encodes to opaque black, the "no object" color.
func EncodePickID(id uint32) (Color, error) {
	if id > MaxPickID {
		return Color{}, fmt.Errorf("%w: %#x", ErrPickIDRange, id)
	}
	return Color{
		R: float64((id>>16)&0xFF) / 255,
		G: float64((id>>8)&0xFF) / 255,
		B: float64(id&0xFF) / 255,
		A: 1,
	}, nil
}

// DecodePickColor reverses EncodePickID. Each channel is scaled by 255 and
// rounded before reassembly; alpha is ignored.
func DecodePickColor(c Color) uint32 {
	return uint32(unitToByte(c.R))<<16 | uint32(unitToByte(c.G))<<8 | uint32(unitToByte(c.B))
}

// decodePixel converts one 4-byte pixel in the given format to a Color.
// Formats other than BGRA are read as RGBA.
func decodePixel(px []byte, format gputypes.TextureFormat) Color {
	r, g, b, a := px[0], px[1], px[2], px[3]
	if isBGRA(format) {
		r, b = b, r
	}
	return ColorFromRGBA8(color.RGBA{R: r, G: g, B: b, A: a})
}

// pixelKey packs a 4-byte pixel into a map key in RGBA order.
func pixelKey(px []byte, format gputypes.TextureFormat) uint32 {
	r, g, b, a := px[0], px[1], px[2], px[3]
	if isBGRA(format) {
		r, b = b, r
	}
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

func colorFromKey(k uint32) Color {
	return ColorFromRGBA8(color.RGBA{
		R: uint8(k >> 24),
		G: uint8(k >> 16),
		B: uint8(k >> 8),
		A: uint8(k),
	})
}

func isBGRA(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8Unorm
}

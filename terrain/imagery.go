// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// ErrImageryFormat is returned by LoadImagery for unsupported file
// extensions.
var ErrImageryFormat = errors.New("terrain: unsupported imagery format")

// LoadImagery decodes a PNG, JPEG, TGA or WebP file for use as
// PlaneTessellator.Imagery. The decoder is chosen by file extension: the
// TGA decoder registers an empty signature and would claim every file
// passed to image.Decode.
func LoadImagery(path string) (image.Image, error) {
	decode, err := imageryDecoder(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: read imagery %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("terrain: decode imagery %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("terrain: imagery %s is empty", path)
	}
	return img, nil
}

func imageryDecoder(path string) (func(io.Reader) (image.Image, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Decode, nil
	case ".jpg", ".jpeg":
		return jpeg.Decode, nil
	case ".webp":
		return webp.Decode, nil
	case ".tga":
		return tga.Decode, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrImageryFormat, ext)
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"bytes"
	"fmt"
	"image"
	"math"
)

// dataAlign is the alignment of image and palette data.
const dataAlign = 0x20

// Texture is a header with its pixel and palette bytes.
type Texture struct {
	// Header describes the texture. Offsets are recomputed on encode.
	Header Header
	// ImageData holds all mipmap levels.
	ImageData []byte
	// PaletteData holds NumColors 16-bit palette entries.
	PaletteData []byte
}

// Decode parses a standalone BTI file.
func Decode(data []byte) (*Texture, error) {
	return decodeAt(data, 0)
}

// decodeAt parses a texture whose header starts at off; data offsets are
// relative to the header.
func decodeAt(data []byte, off int) (*Texture, error) {
	if off < 0 || off > len(data) {
		return nil, fmt.Errorf("%w: header offset 0x%X", ErrMalformedTexture, off)
	}

	h, err := ParseHeader(data[off:])
	if err != nil {
		return nil, err
	}

	imageSize, err := h.imageSize()
	if err != nil {
		return nil, err
	}

	imageData, err := sliceAt(data, off, h.ImageOffset, imageSize, "image")
	if err != nil {
		return nil, err
	}

	t := &Texture{Header: h, ImageData: imageData}
	if h.NumColors > 0 {
		t.PaletteData, err = sliceAt(data, off, h.PaletteOffset, int(h.NumColors)*2, "palette")
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Encode serializes a standalone BTI file: header, palette, then image data,
// each data block aligned to 32 bytes.
func (t *Texture) Encode() ([]byte, error) {
	h := t.Header
	out := make([]byte, HeaderSize, HeaderSize+len(t.PaletteData)+len(t.ImageData)+2*dataAlign)

	h.PaletteOffset = uint32(len(out))
	if len(t.PaletteData) > 0 {
		out = append(out, t.PaletteData...)
		out = pad(out, dataAlign)
	}

	h.ImageOffset = uint32(len(out)) //nolint:gosec // bounded by texture size limits
	out = append(out, t.ImageData...)

	encodedHeader, err := h.AppendBinary(nil)
	if err != nil {
		return nil, err
	}
	copy(out, encodedHeader)

	return out, nil
}

// ReplaceImage re-encodes img in the header's format and palette format.
// Size, palette and mipmap fields follow the new image; other attributes are kept.
func (t *Texture) ReplaceImage(img image.Image) error {
	encoded, err := encodePixels(img, t.Header.Format, t.Header.PaletteFormat)
	if err != nil {
		return err
	}

	b := img.Bounds()
	t.Header.Width = uint16(b.Dx())  //nolint:gosec // bounded by maxTextureSize
	t.Header.Height = uint16(b.Dy()) //nolint:gosec // bounded by maxTextureSize
	t.Header.MipmapCount = 1
	t.Header.NumColors = uint16(encoded.numColors) //nolint:gosec // at most 256
	t.Header.PalettesEnabled = encoded.numColors > 0
	t.ImageData = encoded.image
	t.PaletteData = encoded.palette

	return nil
}

// Clone returns a deep copy of t.
func (t *Texture) Clone() *Texture {
	return &Texture{
		Header:      t.Header,
		ImageData:   bytes.Clone(t.ImageData),
		PaletteData: bytes.Clone(t.PaletteData),
	}
}

// sliceAt copies size bytes at base+rel with bounds checks.
func sliceAt(data []byte, base int, rel uint32, size int, what string) ([]byte, error) {
	start := uint64(base) + uint64(rel)
	end := start + uint64(size)
	if end > uint64(len(data)) || end > math.MaxInt {
		return nil, fmt.Errorf("%w: %s data 0x%X..0x%X beyond 0x%X bytes", ErrMalformedTexture, what, start, end, len(data))
	}

	return bytes.Clone(data[start:end]), nil
}

// pad appends zero bytes until len(b) is a multiple of align.
func pad(b []byte, align int) []byte {
	if rem := len(b) % align; rem != 0 {
		b = append(b, make([]byte, align-rem)...)
	}

	return b
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of a BTI header in bytes.
const HeaderSize = 0x20

// Header is the 32-byte texture header shared by BTI files and TEX1 tables.
// Data offsets are relative to the header's own position.
type Header struct {
	Format          ImageFormat   `json:"format" yaml:"format"`
	AlphaSetting    uint8         `json:"alpha_setting" yaml:"alpha_setting"`
	Width           uint16        `json:"width" yaml:"width"`
	Height          uint16        `json:"height" yaml:"height"`
	WrapS           WrapMode      `json:"wrap_s" yaml:"wrap_s"`
	WrapT           WrapMode      `json:"wrap_t" yaml:"wrap_t"`
	PalettesEnabled bool          `json:"palettes_enabled" yaml:"palettes_enabled"`
	PaletteFormat   PaletteFormat `json:"palette_format" yaml:"palette_format"`
	NumColors       uint16        `json:"num_colors" yaml:"num_colors"`
	PaletteOffset   uint32        `json:"palette_offset" yaml:"palette_offset"`
	Unknown1        uint32        `json:"unknown1" yaml:"unknown1"`
	MinFilter       FilterMode    `json:"min_filter" yaml:"min_filter"`
	MagFilter       FilterMode    `json:"mag_filter" yaml:"mag_filter"`
	Unknown2        uint16        `json:"unknown2" yaml:"unknown2"`
	MipmapCount     uint8         `json:"mipmap_count" yaml:"mipmap_count"`
	Unknown3        uint8         `json:"unknown3" yaml:"unknown3"`
	LODBias         uint16        `json:"lod_bias" yaml:"lod_bias"`
	ImageOffset     uint32        `json:"image_offset" yaml:"image_offset"`
}

// ParseHeader decodes a header from the first 32 bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrMalformedTexture, HeaderSize, len(b))
	}

	be := binary.BigEndian
	return Header{
		Format:          ImageFormat(b[0x00]),
		AlphaSetting:    b[0x01],
		Width:           be.Uint16(b[0x02:]),
		Height:          be.Uint16(b[0x04:]),
		WrapS:           WrapMode(b[0x06]),
		WrapT:           WrapMode(b[0x07]),
		PalettesEnabled: b[0x08] != 0,
		PaletteFormat:   PaletteFormat(b[0x09]),
		NumColors:       be.Uint16(b[0x0A:]),
		PaletteOffset:   be.Uint32(b[0x0C:]),
		Unknown1:        be.Uint32(b[0x10:]),
		MinFilter:       FilterMode(b[0x14]),
		MagFilter:       FilterMode(b[0x15]),
		Unknown2:        be.Uint16(b[0x16:]),
		MipmapCount:     b[0x18],
		Unknown3:        b[0x19],
		LODBias:         be.Uint16(b[0x1A:]),
		ImageOffset:     be.Uint32(b[0x1C:]),
	}, nil
}

// AppendBinary appends the 32-byte encoded header to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	var out [HeaderSize]byte
	be := binary.BigEndian

	out[0x00] = uint8(h.Format)
	out[0x01] = h.AlphaSetting
	be.PutUint16(out[0x02:], h.Width)
	be.PutUint16(out[0x04:], h.Height)
	out[0x06] = uint8(h.WrapS)
	out[0x07] = uint8(h.WrapT)
	if h.PalettesEnabled {
		out[0x08] = 1
	}
	out[0x09] = uint8(h.PaletteFormat)
	be.PutUint16(out[0x0A:], h.NumColors)
	be.PutUint32(out[0x0C:], h.PaletteOffset)
	be.PutUint32(out[0x10:], h.Unknown1)
	out[0x14] = uint8(h.MinFilter)
	out[0x15] = uint8(h.MagFilter)
	be.PutUint16(out[0x16:], h.Unknown2)
	out[0x18] = h.MipmapCount
	out[0x19] = h.Unknown3
	be.PutUint16(out[0x1A:], h.LODBias)
	be.PutUint32(out[0x1C:], h.ImageOffset)

	return append(b, out[:]...), nil
}

// SameLayout reports whether both headers describe pixel data the same way,
// so existing image and palette bytes stay valid.
func (h Header) SameLayout(o Header) bool {
	if h.Format != o.Format {
		return false
	}

	return !h.Format.IsPaletted() || h.PaletteFormat == o.PaletteFormat
}

// imageSize returns the size of the image data described by h.
func (h Header) imageSize() (int, error) {
	return ImageDataSize(h.Format, int(h.Width), int(h.Height), int(h.MipmapCount))
}

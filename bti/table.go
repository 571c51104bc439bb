// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"encoding/binary"
	"fmt"
	"image"
)

// TEX1 section layout.
const (
	tableTag        = "TEX1"
	tableHeaderSize = 0x20
)

// Table is a parsed TEX1 section: textures in header order and their names.
type Table struct {
	// Textures holds one entry per texture header.
	Textures []*Texture
	// Names holds the name of each texture, parallel to Textures.
	Names []string
}

// ParseTable parses a complete TEX1 block, tag and length field included.
func ParseTable(section []byte) (*Table, error) {
	if len(section) < tableHeaderSize || string(section[:4]) != tableTag {
		return nil, fmt.Errorf("%w: not a %s section", ErrMalformedTexture, tableTag)
	}

	be := binary.BigEndian
	size := be.Uint32(section[4:])
	if uint64(size) != uint64(len(section)) {
		return nil, fmt.Errorf("%w: section length field 0x%X, have 0x%X bytes", ErrMalformedTexture, size, len(section))
	}

	count := int(be.Uint16(section[8:]))
	headersOff := int(be.Uint32(section[0x0C:]))
	namesOff := int(be.Uint32(section[0x10:]))

	t := &Table{Textures: make([]*Texture, 0, count)}
	for i := range count {
		tex, err := decodeAt(section, headersOff+i*HeaderSize)
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		t.Textures = append(t.Textures, tex)
	}

	names, err := parseNameTable(section, namesOff)
	if err != nil {
		return nil, err
	}
	if len(names) != count {
		return nil, fmt.Errorf("%w: %d names for %d textures", ErrMalformedTexture, len(names), count)
	}
	t.Names = names

	return t, nil
}

// Indices returns positions of textures named name.
func (t *Table) Indices(name string) []int {
	var out []int
	for i, n := range t.Names {
		if n == name {
			out = append(out, i)
		}
	}

	return out
}

// ReplaceImage re-encodes img into every texture named name and returns how
// many were replaced.
func (t *Table) ReplaceImage(name string, img image.Image) (int, error) {
	indices := t.Indices(name)
	if len(indices) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrTextureNotFound, name)
	}

	for _, i := range indices {
		if err := t.Textures[i].ReplaceImage(img); err != nil {
			return 0, fmt.Errorf("texture %q #%d: %w", name, i, err)
		}
	}

	return len(indices), nil
}

// Encode rebuilds the TEX1 block: section header, texture headers, palette
// and image data (identical blobs shared), then the name table. Offsets and
// the section length are recomputed.
func (t *Table) Encode() ([]byte, error) {
	if len(t.Names) != len(t.Textures) {
		return nil, fmt.Errorf("%w: %d names for %d textures", ErrMalformedTexture, len(t.Names), len(t.Textures))
	}

	headersOff := tableHeaderSize
	out := make([]byte, headersOff+len(t.Textures)*HeaderSize)
	out = pad(out, dataAlign)

	headers := make([]Header, len(t.Textures))
	placed := make(map[string]int)
	place := func(data []byte) int {
		if off, ok := placed[string(data)]; ok {
			return off
		}

		off := len(out)
		out = append(out, data...)
		out = pad(out, dataAlign)
		placed[string(data)] = off
		return off
	}

	for i, tex := range t.Textures {
		h := tex.Header
		hdrPos := headersOff + i*HeaderSize

		paletteAt := len(out)
		if len(tex.PaletteData) > 0 {
			paletteAt = place(tex.PaletteData)
		}
		imageAt := place(tex.ImageData)

		h.PaletteOffset = uint32(paletteAt - hdrPos) //nolint:gosec // data always follows headers
		h.ImageOffset = uint32(imageAt - hdrPos)     //nolint:gosec // data always follows headers
		headers[i] = h
	}

	names, err := encodeNameTable(t.Names)
	if err != nil {
		return nil, err
	}
	namesOff := len(out)
	out = append(out, names...)
	out = pad(out, dataAlign)

	for i, h := range headers {
		encoded, err := h.AppendBinary(nil)
		if err != nil {
			return nil, err
		}
		copy(out[headersOff+i*HeaderSize:], encoded)
	}

	be := binary.BigEndian
	copy(out, tableTag)
	be.PutUint32(out[4:], uint32(len(out))) //nolint:gosec // bounded by texture limits
	be.PutUint16(out[8:], uint16(len(t.Textures)))
	be.PutUint16(out[0x0A:], 0xFFFF)
	be.PutUint32(out[0x0C:], uint32(headersOff))
	be.PutUint32(out[0x10:], uint32(namesOff)) //nolint:gosec // bounded by texture limits

	return out, nil
}

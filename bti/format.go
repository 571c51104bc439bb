// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"fmt"
	"sort"
	"strings"
)

// ImageFormat is the GX texel format code.
type ImageFormat uint8

// GX texel formats.
const (
	FormatI4     ImageFormat = 0x0
	FormatI8     ImageFormat = 0x1
	FormatIA4    ImageFormat = 0x2
	FormatIA8    ImageFormat = 0x3
	FormatRGB565 ImageFormat = 0x4
	FormatRGB5A3 ImageFormat = 0x5
	FormatRGBA32 ImageFormat = 0x6
	FormatC4     ImageFormat = 0x8
	FormatC8     ImageFormat = 0x9
	FormatC14X2  ImageFormat = 0xA
	FormatCMPR   ImageFormat = 0xE
)

// PaletteFormat is the GX TLUT entry format code.
type PaletteFormat uint8

// GX palette formats.
const (
	PaletteIA8    PaletteFormat = 0x0
	PaletteRGB565 PaletteFormat = 0x1
	PaletteRGB5A3 PaletteFormat = 0x2
)

// WrapMode is the GX texture coordinate wrap mode.
type WrapMode uint8

// GX wrap modes.
const (
	WrapClampToEdge    WrapMode = 0
	WrapRepeat         WrapMode = 1
	WrapMirroredRepeat WrapMode = 2
)

// FilterMode is the GX texture filter mode.
type FilterMode uint8

// GX filter modes.
const (
	FilterNearest              FilterMode = 0
	FilterLinear               FilterMode = 1
	FilterNearestMipmapNearest FilterMode = 2
	FilterNearestMipmapLinear  FilterMode = 3
	FilterLinearMipmapNearest  FilterMode = 4
	FilterLinearMipmapLinear   FilterMode = 5
)

// Closed name lookups used by header overrides.
var (
	imageFormatNames = map[string]ImageFormat{
		"I4":     FormatI4,
		"I8":     FormatI8,
		"IA4":    FormatIA4,
		"IA8":    FormatIA8,
		"RGB565": FormatRGB565,
		"RGB5A3": FormatRGB5A3,
		"RGBA32": FormatRGBA32,
		"C4":     FormatC4,
		"C8":     FormatC8,
		"C14X2":  FormatC14X2,
		"CMPR":   FormatCMPR,
	}
	paletteFormatNames = map[string]PaletteFormat{
		"IA8":    PaletteIA8,
		"RGB565": PaletteRGB565,
		"RGB5A3": PaletteRGB5A3,
	}
	wrapModeNames = map[string]WrapMode{
		"ClampToEdge":    WrapClampToEdge,
		"Repeat":         WrapRepeat,
		"MirroredRepeat": WrapMirroredRepeat,
	}
	filterModeNames = map[string]FilterMode{
		"Nearest":              FilterNearest,
		"Linear":               FilterLinear,
		"NearestMipmapNearest": FilterNearestMipmapNearest,
		"NearestMipmapLinear":  FilterNearestMipmapLinear,
		"LinearMipmapNearest":  FilterLinearMipmapNearest,
		"LinearMipmapLinear":   FilterLinearMipmapLinear,
	}
)

// blockLayout describes the tile geometry of one texel format.
type blockLayout struct {
	width, height int
	bytes         int
}

// blockLayouts maps each format to its tile geometry.
var blockLayouts = map[ImageFormat]blockLayout{
	FormatI4:     {width: 8, height: 8, bytes: 32},
	FormatI8:     {width: 8, height: 4, bytes: 32},
	FormatIA4:    {width: 8, height: 4, bytes: 32},
	FormatIA8:    {width: 4, height: 4, bytes: 32},
	FormatRGB565: {width: 4, height: 4, bytes: 32},
	FormatRGB5A3: {width: 4, height: 4, bytes: 32},
	FormatRGBA32: {width: 4, height: 4, bytes: 64},
	FormatC4:     {width: 8, height: 8, bytes: 32},
	FormatC8:     {width: 8, height: 4, bytes: 32},
	FormatC14X2:  {width: 4, height: 4, bytes: 32},
	FormatCMPR:   {width: 8, height: 8, bytes: 32},
}

// String returns the format name.
func (f ImageFormat) String() string {
	return enumName(imageFormatNames, f)
}

// IsPaletted reports whether texels index a palette.
func (f ImageFormat) IsPaletted() bool {
	return f == FormatC4 || f == FormatC8 || f == FormatC14X2
}

// String returns the palette format name.
func (f PaletteFormat) String() string {
	return enumName(paletteFormatNames, f)
}

// String returns the wrap mode name.
func (m WrapMode) String() string {
	return enumName(wrapModeNames, m)
}

// String returns the filter mode name.
func (m FilterMode) String() string {
	return enumName(filterModeNames, m)
}

// ImageDataSize returns the byte size of one image with mipmapCount levels.
func ImageDataSize(format ImageFormat, width, height, mipmapCount int) (int, error) {
	layout, ok := blockLayouts[format]
	if !ok {
		return 0, fmt.Errorf("%w: format 0x%X", ErrUnsupportedFormat, uint8(format))
	}

	if mipmapCount < 1 {
		mipmapCount = 1
	}

	total := 0
	w, h := width, height
	for range mipmapCount {
		blocksX := (w + layout.width - 1) / layout.width
		blocksY := (h + layout.height - 1) / layout.height
		total += blocksX * blocksY * layout.bytes

		w = max(w/2, 1)
		h = max(h/2, 1)
	}

	return total, nil
}

// lookupEnum resolves name in a closed enumeration.
func lookupEnum[T any](attr string, names map[string]T, name string) (T, error) {
	if v, ok := names[name]; ok {
		return v, nil
	}

	var zero T
	return zero, fmt.Errorf("%w: %s %q (valid: %s)", ErrUnknownEnumValue, attr, name, strings.Join(sortedKeys(names), ", "))
}

// enumName returns the name of v or its numeric form.
func enumName[T ~uint8](names map[string]T, v T) string {
	for name, code := range names {
		if code == v {
			return name
		}
	}

	return fmt.Sprintf("0x%X", uint8(v))
}

// sortedKeys returns map keys in lexical order.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// maxTextureSize is the largest GX texture edge.
const maxTextureSize = 1024

// encodedImage is the result of encoding pixels in one format.
type encodedImage struct {
	image     []byte
	palette   []byte
	numColors int
}

// pixelSource reads image pixels in texture space, padding outside bounds.
type pixelSource struct {
	img           image.Image
	width, height int
}

// newPixelSource validates img dimensions.
func newPixelSource(img image.Image) (pixelSource, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return pixelSource{}, fmt.Errorf("%w: empty image", ErrMalformedTexture)
	}

	if w > maxTextureSize || h > maxTextureSize {
		return pixelSource{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, w, h)
	}

	return pixelSource{img: img, width: w, height: h}, nil
}

// at returns the pixel at texture coordinates, transparent black outside the image.
func (p pixelSource) at(x, y int) color.NRGBA {
	if x >= p.width || y >= p.height {
		return color.NRGBA{}
	}

	origin := p.img.Bounds().Min
	return color.NRGBAModel.Convert(p.img.At(origin.X+x, origin.Y+y)).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always returns NRGBA
}

// forEachBlock calls fn for every tile in GX order with the tile origin.
func (p pixelSource) forEachBlock(layout blockLayout, fn func(x0, y0 int)) {
	for by := 0; by < p.height; by += layout.height {
		for bx := 0; bx < p.width; bx += layout.width {
			fn(bx, by)
		}
	}
}

// encodePixels encodes img in format; paletted formats build an exact palette in paletteFormat.
func encodePixels(img image.Image, format ImageFormat, paletteFormat PaletteFormat) (encodedImage, error) {
	src, err := newPixelSource(img)
	if err != nil {
		return encodedImage{}, err
	}

	layout := blockLayouts[format]
	switch format {
	case FormatI4, FormatI8, FormatIA4, FormatIA8, FormatRGB565, FormatRGB5A3:
		return encodedImage{image: encodeDirect(src, format, layout)}, nil
	case FormatRGBA32:
		return encodedImage{image: encodeRGBA32(src, layout)}, nil
	case FormatCMPR:
		return encodedImage{image: encodeCMPR(src, layout)}, nil
	case FormatC4, FormatC8:
		return encodePaletted(src, format, paletteFormat, layout)
	default:
		return encodedImage{}, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}
}

// encodeDirect handles formats that store whole texels in tile raster order.
func encodeDirect(src pixelSource, format ImageFormat, layout blockLayout) []byte {
	out := make([]byte, 0, blockCount(src, layout)*layout.bytes)
	src.forEachBlock(layout, func(x0, y0 int) {
		var nibble byte
		half := false
		for y := range layout.height {
			for x := range layout.width {
				c := src.at(x0+x, y0+y)
				switch format {
				case FormatI4:
					v := intensity(c) >> 4
					if !half {
						nibble = v << 4
					} else {
						out = append(out, nibble|v)
					}
					half = !half
				case FormatI8:
					out = append(out, intensity(c))
				case FormatIA4:
					out = append(out, (c.A>>4)<<4|intensity(c)>>4)
				case FormatIA8:
					out = append(out, c.A, intensity(c))
				case FormatRGB565:
					out = binary.BigEndian.AppendUint16(out, rgb565(c))
				case FormatRGB5A3:
					out = binary.BigEndian.AppendUint16(out, rgb5a3(c))
				}
			}
		}
	})

	return out
}

// encodeRGBA32 writes each 4x4 tile as 16 AR pairs followed by 16 GB pairs.
func encodeRGBA32(src pixelSource, layout blockLayout) []byte {
	out := make([]byte, 0, blockCount(src, layout)*layout.bytes)
	src.forEachBlock(layout, func(x0, y0 int) {
		var ar, gb [32]byte
		i := 0
		for y := range layout.height {
			for x := range layout.width {
				c := src.at(x0+x, y0+y)
				ar[i*2], ar[i*2+1] = c.A, c.R
				gb[i*2], gb[i*2+1] = c.G, c.B
				i++
			}
		}
		out = append(out, ar[:]...)
		out = append(out, gb[:]...)
	})

	return out
}

// encodePaletted builds an exact palette in raster order and writes tile indices.
func encodePaletted(src pixelSource, format ImageFormat, paletteFormat PaletteFormat, layout blockLayout) (encodedImage, error) {
	maxColors := 256
	if format == FormatC4 {
		maxColors = 16
	}

	encodeColor, err := paletteEncoder(paletteFormat)
	if err != nil {
		return encodedImage{}, err
	}

	indices := make(map[uint16]int, maxColors)
	palette := make([]byte, 0, maxColors*2)
	for y := range src.height {
		for x := range src.width {
			v := encodeColor(src.at(x, y))
			if _, ok := indices[v]; ok {
				continue
			}

			if len(indices) == maxColors {
				return encodedImage{}, fmt.Errorf("%w: %s allows %d colors", ErrTooManyColors, format, maxColors)
			}

			indices[v] = len(indices)
			palette = binary.BigEndian.AppendUint16(palette, v)
		}
	}

	out := make([]byte, 0, blockCount(src, layout)*layout.bytes)
	src.forEachBlock(layout, func(x0, y0 int) {
		half := false
		var nibble byte
		for y := range layout.height {
			for x := range layout.width {
				// Padding texels outside the image reuse index 0.
				idx := 0
				if x0+x < src.width && y0+y < src.height {
					idx = indices[encodeColor(src.at(x0+x, y0+y))]
				}

				if format == FormatC8 {
					out = append(out, byte(idx))
					continue
				}

				if !half {
					nibble = byte(idx) << 4
				} else {
					out = append(out, nibble|byte(idx))
				}
				half = !half
			}
		}
	})

	return encodedImage{image: out, palette: palette, numColors: len(indices)}, nil
}

// paletteEncoder returns the 16-bit color encoder of a palette format.
func paletteEncoder(format PaletteFormat) (func(color.NRGBA) uint16, error) {
	switch format {
	case PaletteIA8:
		return func(c color.NRGBA) uint16 { return uint16(c.A)<<8 | uint16(intensity(c)) }, nil
	case PaletteRGB565:
		return rgb565, nil
	case PaletteRGB5A3:
		return rgb5a3, nil
	default:
		return nil, fmt.Errorf("%w: palette format 0x%X", ErrUnsupportedFormat, uint8(format))
	}
}

// blockCount returns the number of tiles covering the image.
func blockCount(src pixelSource, layout blockLayout) int {
	bx := (src.width + layout.width - 1) / layout.width
	by := (src.height + layout.height - 1) / layout.height
	return bx * by
}

// intensity converts a color to luma.
func intensity(c color.NRGBA) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}

// rgb565 packs an opaque color.
func rgb565(c color.NRGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// rgb5a3 packs a color as RGB555 when opaque, ARGB3444 otherwise.
func rgb5a3(c color.NRGBA) uint16 {
	if c.A == 0xFF {
		return 0x8000 | uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
	}

	return uint16(c.A>>5)<<12 | uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
}

// expand565 unpacks an RGB565 value to 8-bit channels.
func expand565(v uint16) [3]int {
	r := int(v>>11) & 0x1F
	g := int(v>>5) & 0x3F
	b := int(v) & 0x1F
	return [3]int{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}

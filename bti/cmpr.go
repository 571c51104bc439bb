// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"encoding/binary"
	"image/color"
)

// cmprAlphaThreshold is the alpha below which a texel is encoded transparent.
const cmprAlphaThreshold = 0x80

// encodeCMPR writes 8x8 tiles, each made of four DXT1 sub-blocks in
// top-left, top-right, bottom-left, bottom-right order.
func encodeCMPR(src pixelSource, layout blockLayout) []byte {
	out := make([]byte, 0, blockCount(src, layout)*layout.bytes)
	src.forEachBlock(layout, func(x0, y0 int) {
		for _, sub := range [4][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}} {
			var px [16]color.NRGBA
			for y := range 4 {
				for x := range 4 {
					px[y*4+x] = src.at(x0+sub[0]+x, y0+sub[1]+y)
				}
			}
			out = appendDXT1Block(out, px)
		}
	})

	return out
}

// appendDXT1Block encodes 16 texels with endpoints at the luma extremes.
// Blocks with transparent texels use the 3-color mode (c0 <= c1).
func appendDXT1Block(out []byte, px [16]color.NRGBA) []byte {
	hasAlpha := false
	var lo, hi color.NRGBA
	loLuma, hiLuma := 256, -1
	for _, c := range px {
		if c.A < cmprAlphaThreshold {
			hasAlpha = true
			continue
		}

		l := int(intensity(c))
		if l < loLuma {
			lo, loLuma = c, l
		}
		if l > hiLuma {
			hi, hiLuma = c, l
		}
	}

	if hiLuma < 0 {
		// Fully transparent: equal endpoints select 3-color mode, index 3 everywhere.
		out = append(out, 0, 0, 0, 0)
		return append(out, 0xFF, 0xFF, 0xFF, 0xFF)
	}

	c0, c1 := rgb565(hi), rgb565(lo)
	if hasAlpha {
		c0, c1 = min(c0, c1), max(c0, c1)
	} else if c0 < c1 {
		c0, c1 = c1, c0
	}

	palette := dxt1Palette(c0, c1)
	out = binary.BigEndian.AppendUint16(out, c0)
	out = binary.BigEndian.AppendUint16(out, c1)

	for y := range 4 {
		var row byte
		for x := range 4 {
			c := px[y*4+x]
			idx := 3
			if !hasAlpha || c.A >= cmprAlphaThreshold {
				idx = nearest(palette, c, c0 > c1)
			}
			row |= byte(idx) << (6 - 2*x)
		}
		out = append(out, row)
	}

	return out
}

// dxt1Palette expands endpoints to the four palette colors.
func dxt1Palette(c0, c1 uint16) [4][3]int {
	a, b := expand565(c0), expand565(c1)
	var p [4][3]int
	p[0], p[1] = a, b
	for i := range 3 {
		if c0 > c1 {
			p[2][i] = (2*a[i] + b[i]) / 3
			p[3][i] = (a[i] + 2*b[i]) / 3
		} else {
			p[2][i] = (a[i] + b[i]) / 2
		}
	}

	return p
}

// nearest returns the closest palette index. In 3-color mode index 3 is transparent
// and never chosen for opaque texels.
func nearest(palette [4][3]int, c color.NRGBA, fourColor bool) int {
	limit := 3
	if fourColor {
		limit = 4
	}

	best, bestDist := 0, -1
	for i := range limit {
		dr := palette[i][0] - int(c.R)
		dg := palette[i][1] - int(c.G)
		db := palette[i][2] - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bdl

// Container binary layout.
const (
	// HeaderSize is the fixed size of the container-wide header block.
	HeaderSize = 0x20
	// sizeFieldOffset is the offset of the total container size inside the header block.
	sizeFieldOffset = 8
	// tagSize is the length of a block tag.
	tagSize = 4
	// blockHeaderSize is tag plus the block length field.
	blockHeaderSize = 8
)

// HeaderTag is the reserved tag of the header block. It is longer than a
// block tag, so it never collides with a decoded tag.
const HeaderTag = "header"

// Well-known J3D block tags.
const (
	TagINF1 = "INF1" // scene graph / mesh hierarchy
	TagVTX1 = "VTX1" // vertex attributes
	TagEVP1 = "EVP1" // envelopes
	TagDRW1 = "DRW1" // draw matrices
	TagJNT1 = "JNT1" // joint hierarchy
	TagSHP1 = "SHP1" // shapes
	TagMAT3 = "MAT3" // materials
	TagMDL3 = "MDL3" // display lists (BDL only)
	TagTEX1 = "TEX1" // textures
)

// Section is one tagged block of a container.
type Section struct {
	// Tag is the 4-character block tag, or HeaderTag for the header block.
	Tag string `json:"tag" yaml:"tag"`
	// Data is the complete block including tag and length field.
	Data []byte `json:"-" yaml:"-"`
}

// Size returns the block length in bytes.
func (s Section) Size() int {
	return len(s.Data)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bdl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// Container is an ordered set of uniquely tagged blocks.
// The first section is always the header block (HeaderTag).
type Container struct {
	// sections keeps blocks in source stream order.
	sections []Section
	// index maps tag to position in sections.
	index map[string]int
}

// DecodeFile reads path and decodes it as a container.
func DecodeFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}

	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Decode splits data into the header block and tagged blocks.
// Block bytes are copied, so data may be reused by the caller.
func Decode(data []byte) (*Container, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrMalformedContainer, len(data), HeaderSize)
	}

	c := &Container{
		sections: make([]Section, 0, 10),
		index:    make(map[string]int, 10),
	}
	c.append(HeaderTag, bytes.Clone(data[:HeaderSize]))

	off := HeaderSize
	for off < len(data) {
		if len(data)-off < blockHeaderSize {
			return nil, fmt.Errorf("%w: %d trailing bytes at offset 0x%X", ErrMalformedContainer, len(data)-off, off)
		}

		tag := string(data[off : off+tagSize])
		size := binary.BigEndian.Uint32(data[off+tagSize : off+blockHeaderSize])
		if size < blockHeaderSize {
			return nil, fmt.Errorf("%w: section %q at offset 0x%X has length %d", ErrMalformedContainer, tag, off, size)
		}

		if uint64(size) > uint64(len(data)-off) {
			return nil, fmt.Errorf("%w: section %q at offset 0x%X runs past end of data (length 0x%X, %d bytes left)",
				ErrMalformedContainer, tag, off, size, len(data)-off)
		}

		if _, dup := c.index[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q at offset 0x%X", ErrMalformedContainer, tag, off)
		}

		end := off + int(size)
		c.append(tag, bytes.Clone(data[off:end]))
		off = end
	}

	return c, nil
}

// Encode concatenates all blocks in stored order.
// No tag or length field is rewritten.
func (c *Container) Encode() []byte {
	if c == nil {
		return nil
	}

	out := make([]byte, 0, c.Len())
	for _, s := range c.sections {
		out = append(out, s.Data...)
	}

	return out
}

// Tags returns section tags in stored order, starting with HeaderTag.
func (c *Container) Tags() []string {
	if c == nil {
		return nil
	}

	tags := make([]string, len(c.sections))
	for i := range c.sections {
		tags[i] = c.sections[i].Tag
	}

	return tags
}

// Sections returns a copy of the section list. Block bytes are shared.
func (c *Container) Sections() []Section {
	if c == nil {
		return nil
	}

	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Section returns block bytes stored under tag.
func (c *Container) Section(tag string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	i, ok := c.index[tag]
	if !ok {
		return nil, false
	}

	return c.sections[i].Data, true
}

// Has reports whether tag is present.
func (c *Container) Has(tag string) bool {
	if c == nil {
		return false
	}

	_, ok := c.index[tag]
	return ok
}

// Header returns the 32-byte header block.
func (c *Container) Header() []byte {
	data, _ := c.Section(HeaderTag)
	return data
}

// Len returns the sum of all block lengths, header included.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}

	n := 0
	for _, s := range c.sections {
		n += len(s.Data)
	}

	return n
}

// StoredSize returns the total size recorded at header offset 8.
func (c *Container) StoredSize() uint32 {
	header := c.Header()
	if len(header) < sizeFieldOffset+4 {
		return 0
	}

	return binary.BigEndian.Uint32(header[sizeFieldOffset : sizeFieldOffset+4])
}

// Clone returns a deep copy of c.
func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}

	out := &Container{
		sections: make([]Section, 0, len(c.sections)),
		index:    make(map[string]int, len(c.sections)),
	}
	for _, s := range c.sections {
		out.append(s.Tag, bytes.Clone(s.Data))
	}

	return out
}

// append stores a new section at the end.
func (c *Container) append(tag string, data []byte) {
	c.index[tag] = len(c.sections)
	c.sections = append(c.sections, Section{Tag: tag, Data: data})
}

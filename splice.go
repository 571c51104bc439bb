// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bdl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Splice returns a copy of generated where every block listed in tags is
// taken from donor. Blocks keep the position they have in generated, and the
// header size field is recomputed. Neither input is modified.
func Splice(generated, donor *Container, tags []string) (*Container, error) {
	if generated == nil || donor == nil {
		return nil, ErrNilContainer
	}

	for _, tag := range tags {
		if !donor.Has(tag) {
			return nil, fmt.Errorf("%w: %q", ErrMissingDonorSection, tag)
		}
		if !generated.Has(tag) {
			return nil, fmt.Errorf("%w: %q", ErrMissingTargetSection, tag)
		}
	}

	out := generated.Clone()
	for _, tag := range tags {
		data, _ := donor.Section(tag)
		out.sections[out.index[tag]].Data = bytes.Clone(data)
	}

	if err := out.updateSize(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReplaceSection returns a copy of c with the block under tag replaced by data.
// data must be a complete block whose tag and length field match. The header
// size field of the result is recomputed.
func (c *Container) ReplaceSection(tag string, data []byte) (*Container, error) {
	if c == nil {
		return nil, ErrNilContainer
	}

	if tag == HeaderTag {
		return nil, fmt.Errorf("%w: header block cannot be replaced", ErrInvalidSection)
	}

	i, ok := c.index[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingTargetSection, tag)
	}

	if err := validateBlock(tag, data); err != nil {
		return nil, err
	}

	out := c.Clone()
	out.sections[i].Data = bytes.Clone(data)
	if err := out.updateSize(); err != nil {
		return nil, err
	}

	return out, nil
}

// SpliceFiles splices tags from the container at donorPath into the container
// at generatedPath, rewrites generatedPath with the result, and returns the
// encoded bytes.
func SpliceFiles(generatedPath, donorPath string, tags []string) ([]byte, error) {
	generated, err := DecodeFile(generatedPath)
	if err != nil {
		return nil, err
	}

	donor, err := DecodeFile(donorPath)
	if err != nil {
		return nil, err
	}

	out, err := Splice(generated, donor, tags)
	if err != nil {
		return nil, err
	}

	data := out.Encode()
	if err := os.WriteFile(generatedPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("write spliced container: %w", err)
	}

	return data, nil
}

// updateSize writes the sum of block lengths at header offset 8.
// The header block is replaced with a private copy first.
func (c *Container) updateSize() error {
	total := c.Len()
	if uint64(total) > math.MaxUint32 {
		return fmt.Errorf("%w: container size %d exceeds 4 GiB", ErrMalformedContainer, total)
	}

	i, ok := c.index[HeaderTag]
	if !ok || len(c.sections[i].Data) < HeaderSize {
		return fmt.Errorf("%w: missing header block", ErrMalformedContainer)
	}

	header := bytes.Clone(c.sections[i].Data)
	binary.BigEndian.PutUint32(header[sizeFieldOffset:sizeFieldOffset+4], uint32(total)) //nolint:gosec // bounded above
	c.sections[i].Data = header

	return nil
}

// validateBlock checks that data carries tag and its own length.
func validateBlock(tag string, data []byte) error {
	if len(data) < blockHeaderSize {
		return fmt.Errorf("%w: %q block is %d bytes", ErrInvalidSection, tag, len(data))
	}

	if got := string(data[:tagSize]); got != tag {
		return fmt.Errorf("%w: block tag %q, want %q", ErrInvalidSection, got, tag)
	}

	size := binary.BigEndian.Uint32(data[tagSize:blockHeaderSize])
	if uint64(size) != uint64(len(data)) {
		return fmt.Errorf("%w: %q length field 0x%X, block is 0x%X bytes", ErrInvalidSection, tag, size, len(data))
	}

	return nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// nameTableEntrySize is the size of one (hash, offset) pair.
const nameTableEntrySize = 4

// nameHash is the J3D string table hash.
func nameHash(s string) uint16 {
	var h uint16
	for i := 0; i < len(s); i++ {
		h = h*3 + uint16(s[i])
	}

	return h
}

// parseNameTable reads a J3D string table starting at data[off:].
func parseNameTable(data []byte, off int) ([]string, error) {
	if off < 0 || len(data)-off < 4 {
		return nil, fmt.Errorf("%w: name table at 0x%X", ErrMalformedTexture, off)
	}

	count := int(binary.BigEndian.Uint16(data[off:]))
	if len(data)-off < 4+count*nameTableEntrySize {
		return nil, fmt.Errorf("%w: name table with %d entries truncated", ErrMalformedTexture, count)
	}

	names := make([]string, count)
	for i := range count {
		entry := off + 4 + i*nameTableEntrySize
		strOff := off + int(binary.BigEndian.Uint16(data[entry+2:]))
		if strOff >= len(data) {
			return nil, fmt.Errorf("%w: name %d offset beyond table", ErrMalformedTexture, i)
		}

		end := bytes.IndexByte(data[strOff:], 0)
		if end < 0 {
			return nil, fmt.Errorf("%w: name %d not terminated", ErrMalformedTexture, i)
		}

		names[i] = string(data[strOff : strOff+end])
	}

	return names, nil
}

// encodeNameTable builds a J3D string table for names.
func encodeNameTable(names []string) ([]byte, error) {
	headerLen := 4 + len(names)*nameTableEntrySize
	out := make([]byte, headerLen)
	binary.BigEndian.PutUint16(out[0:], uint16(len(names))) //nolint:gosec // checked below through offsets
	binary.BigEndian.PutUint16(out[2:], 0xFFFF)

	for i, name := range names {
		if len(out) > 0xFFFF {
			return nil, fmt.Errorf("%w: name table exceeds 64 KiB", ErrMalformedTexture)
		}

		entry := 4 + i*nameTableEntrySize
		binary.BigEndian.PutUint16(out[entry:], nameHash(name))
		binary.BigEndian.PutUint16(out[entry+2:], uint16(len(out)))
		out = append(out, name...)
		out = append(out, 0)
	}

	return out, nil
}

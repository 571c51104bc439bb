// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// Archive is a fully loaded, editable archive.
type Archive struct {
	// headers are kept in parse order for deterministic output.
	headers []HeaderPair
	// records keep file entries in table order.
	records []*record
	// opts are serialize options.
	opts Options
}

// New returns an empty archive.
func New(opts Options) *Archive {
	opts.applyDefaults()
	return &Archive{opts: opts}
}

// Open reads and parses the archive at path.
func Open(path string, opts Options) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Parse parses an archive from data. Payloads are copied, so data may be reused.
func Parse(data []byte, opts Options) (*Archive, error) {
	opts.applyDefaults()

	a := &Archive{opts: opts}
	headers, off, err := parseHeaderSection(data)
	if err != nil {
		return nil, err
	}
	a.headers = headers

	dataStart, err := a.parseEntries(data, off)
	if err != nil {
		return nil, err
	}

	payloadEnd, err := a.loadPayloads(data, dataStart)
	if err != nil {
		return nil, err
	}

	if hash, ok := splitTrailer(data[payloadEnd:]); ok && opts.VerifyTrailer {
		if err := verifySHA1Trailer(data[:payloadEnd], hash); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// parseHeaderSection parses the fixed header record and key-value header pairs
// and returns entry table offset.
func parseHeaderSection(data []byte) ([]HeaderPair, int, error) {
	if len(data) < headerSize {
		return nil, 0, fmt.Errorf("%w: short header", ErrInvalidHeader)
	}

	// The first record must be "Vers".
	if MimeType(binary.LittleEndian.Uint32(data[1:5])) != MimeHeader {
		return nil, 0, ErrInvalidHeader
	}

	headers := make([]HeaderPair, 0, 4)
	off := headerSize
	for {
		key, n, err := readNullTerminated(data, off)
		if err != nil {
			return nil, 0, fmt.Errorf("read header key: %w", err)
		}

		off += n
		if key == "" {
			break
		}

		value, n, err := readNullTerminated(data, off)
		if err != nil {
			return nil, 0, fmt.Errorf("read header value: %w", err)
		}

		off += n
		headers = append(headers, HeaderPair{Key: key, Value: value})
	}

	return headers, off, nil
}

// parseEntries parses entry records from the table and returns payload start offset.
func (a *Archive) parseEntries(data []byte, off int) (int, error) {
	for {
		filename, n, err := readNullTerminated(data, off)
		if err != nil {
			return 0, fmt.Errorf("read entry filename: %w", err)
		}

		off += n
		if len(data)-off < entryFieldsSize {
			return 0, fmt.Errorf("%w: entry fields at offset %d", ErrTruncated, off)
		}

		fields := data[off : off+entryFieldsSize]
		off += entryFieldsSize

		mimeType := MimeType(binary.LittleEndian.Uint32(fields[0:4]))
		originalSize := binary.LittleEndian.Uint32(fields[4:8])
		offset := binary.LittleEndian.Uint32(fields[8:12])
		timestamp := binary.LittleEndian.Uint32(fields[12:16])
		dataSize := binary.LittleEndian.Uint32(fields[16:20])

		if filename == "" && mimeType == 0 && originalSize == 0 && offset == 0 && timestamp == 0 && dataSize == 0 {
			return off, nil
		}

		if len(filename) > maxNameLen {
			return 0, ErrFileNameTooLong
		}

		a.records = append(a.records, &record{
			path:         filename,
			mime:         mimeType,
			originalSize: originalSize,
			timestamp:    timestamp,
			dataSize:     dataSize,
		})
	}
}

// loadPayloads slices payloads sequentially from dataStart, decompresses them,
// and returns the offset of the first byte after the payload region.
func (a *Archive) loadPayloads(data []byte, dataStart int) (int, error) {
	off := dataStart
	for _, r := range a.records {
		size := int(r.dataSize)
		if uint64(r.dataSize) > uint64(len(data)-off) {
			return 0, fmt.Errorf("%w: entry %s payload out of file bounds", ErrTruncated, r.path)
		}

		r.stored = bytes.Clone(data[off : off+size])
		off += size

		if !r.isCompressed() {
			r.data = r.stored
			continue
		}

		decoded, err := decompressLZSS(r.path, r.stored, int(r.originalSize))
		if err != nil {
			return 0, err
		}
		r.data = decoded
	}

	return off, nil
}

// readNullTerminated reads a zero-terminated string starting at offset and
// returns it with the number of consumed bytes.
func readNullTerminated(data []byte, offset int) (string, int, error) {
	if offset >= len(data) {
		return "", 0, fmt.Errorf("%w: string at offset %d", ErrTruncated, offset)
	}

	idx := bytes.IndexByte(data[offset:], 0)
	if idx < 0 {
		return "", 0, fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, offset)
	}

	return string(data[offset : offset+idx]), idx + 1, nil
}

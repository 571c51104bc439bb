// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// writtenEntry stores concrete entry values produced for one table record.
type writtenEntry struct {
	path         string
	payload      []byte
	mime         MimeType
	originalSize uint32
	timestamp    uint32
}

// Marshal serializes the archive. Untouched entries keep their stored bytes;
// replaced entries go through the compression policy.
func (a *Archive) Marshal() ([]byte, error) {
	policy, err := newCompressPolicy(a.opts)
	if err != nil {
		return nil, err
	}

	written := make([]writtenEntry, 0, len(a.records))
	for _, r := range a.records {
		w, err := prepareEntry(r, policy)
		if err != nil {
			return nil, err
		}

		written = append(written, w)
	}

	var buf bytes.Buffer
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[1:5], uint32(MimeHeader))
	buf.Write(header)

	for _, h := range a.headers {
		buf.WriteString(h.Key)
		buf.WriteByte(0)
		buf.WriteString(h.Value)
		buf.WriteByte(0)
	}
	buf.WriteByte(0)

	var fields [entryFieldsSize]byte
	for _, w := range written {
		buf.WriteString(w.path)
		buf.WriteByte(0)

		binary.LittleEndian.PutUint32(fields[0:4], uint32(w.mime))
		binary.LittleEndian.PutUint32(fields[4:8], w.originalSize)
		// Offsets are derived sequentially on read; the index field stays zero.
		binary.LittleEndian.PutUint32(fields[8:12], 0)
		binary.LittleEndian.PutUint32(fields[12:16], w.timestamp)
		binary.LittleEndian.PutUint32(fields[16:20], uint32(len(w.payload))) //nolint:gosec // checked in prepareEntry
		buf.Write(fields[:])
	}

	// Terminator record: empty name and zero fields.
	buf.WriteByte(0)
	buf.Write(make([]byte, entryFieldsSize))

	for _, w := range written {
		buf.Write(w.payload)
	}

	if uint64(buf.Len()) >= maxArchiveData {
		return nil, fmt.Errorf("%w: archive size %d", ErrSizeOverflow, buf.Len())
	}

	return appendSHA1Trailer(buf.Bytes()), nil
}

// WriteFile serializes the archive to path through a temporary file in the
// same directory, so a failure never leaves a partial archive at path.
func (a *Archive) WriteFile(path string) error {
	data, err := a.Marshal()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync archive: %w", err)
	}

	if err := tmp.Close(); err != nil {
		tmp = nil
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close archive: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("move archive into place: %w", err)
	}

	return nil
}

// prepareEntry resolves stored payload and table fields for one record.
// Untouched records keep their stored bytes.
func prepareEntry(r *record, policy compressPolicy) (writtenEntry, error) {
	w := writtenEntry{path: r.path, timestamp: r.timestamp}
	if !r.dirty {
		w.payload, w.mime, w.originalSize = r.stored, r.mime, r.originalSize
		return w, nil
	}

	packed, ok, err := policy.compress(r.path, r.data)
	if err != nil {
		return writtenEntry{}, err
	}

	if !ok {
		w.payload, w.mime = r.data, MimeNil
		return w, nil
	}

	w.payload, w.mime = packed, MimeCompress
	w.originalSize = uint32(len(r.data)) //nolint:gosec // bounded by SetData/Add
	return w, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"bytes"
	"fmt"
	"strings"
)

// Headers returns header pairs in stored order.
func (a *Archive) Headers() []HeaderPair {
	if a == nil {
		return nil
	}

	out := make([]HeaderPair, len(a.headers))
	copy(out, a.headers)
	return out
}

// SetHeader sets header key to value, appending it when absent.
func (a *Archive) SetHeader(key, value string) {
	for i := range a.headers {
		if a.headers[i].Key == key {
			a.headers[i].Value = value
			return
		}
	}

	a.headers = append(a.headers, HeaderPair{Key: key, Value: value})
}

// Entries lists directories and files. Each directory is listed right before
// the first file it contains; files keep table order.
// Entry payloads share memory with the archive and must not be modified.
func (a *Archive) Entries() []Entry {
	if a == nil {
		return nil
	}

	out := make([]Entry, 0, len(a.records)+4)
	seenDirs := make(map[string]struct{})
	for _, r := range a.records {
		for _, dir := range parentDirs(r.path) {
			key := strings.ToLower(dir)
			if _, ok := seenDirs[key]; ok {
				continue
			}

			seenDirs[key] = struct{}{}
			out = append(out, Entry{Name: dir, IsDir: true})
		}

		out = append(out, r.entry())
	}

	return out
}

// Len returns the number of file entries.
func (a *Archive) Len() int {
	if a == nil {
		return 0
	}

	return len(a.records)
}

// Entry returns the file entry matching name. An exact path match wins;
// otherwise the first entry whose base name equals name is returned.
func (a *Archive) Entry(name string) (Entry, error) {
	r, err := a.find(name)
	if err != nil {
		return Entry{}, err
	}

	return r.entry(), nil
}

// Data returns a copy of the payload of the entry matching name.
func (a *Archive) Data(name string) ([]byte, error) {
	r, err := a.find(name)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(r.data), nil
}

// SetData replaces the payload of the entry matching name.
func (a *Archive) SetData(name string, data []byte) error {
	r, err := a.find(name)
	if err != nil {
		return err
	}

	if uint64(len(data)) >= maxArchiveData {
		return fmt.Errorf("%w: entry %s", ErrSizeOverflow, r.path)
	}

	r.data = bytes.Clone(data)
	r.stored = nil
	r.dirty = true

	return nil
}

// Add appends a new file entry.
func (a *Archive) Add(name string, data []byte) error {
	entryPath, err := normalizeArchiveEntryPath(name)
	if err != nil {
		return err
	}

	lookup := strings.ToLower(NormalizePath(entryPath))
	for _, r := range a.records {
		if strings.ToLower(NormalizePath(r.path)) == lookup {
			return fmt.Errorf("%w: %s", ErrDuplicateEntryPath, entryPath)
		}
	}

	if uint64(len(data)) >= maxArchiveData {
		return fmt.Errorf("%w: entry %s", ErrSizeOverflow, entryPath)
	}

	a.records = append(a.records, &record{
		path:  entryPath,
		data:  bytes.Clone(data),
		dirty: true,
	})

	return nil
}

// find resolves one record by normalized path, then by base name.
func (a *Archive) find(name string) (*record, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	lookupName := strings.ToLower(NormalizePath(name))
	if lookupName == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntryPath, name)
	}

	for _, r := range a.records {
		if strings.ToLower(NormalizePath(r.path)) == lookupName {
			return r, nil
		}
	}

	if strings.Contains(lookupName, "/") {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	for _, r := range a.records {
		if strings.ToLower(BaseName(r.path)) == lookupName {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// entry converts a record to its public view.
func (r *record) entry() Entry {
	return Entry{
		Name:       r.path,
		Data:       r.data,
		TimeStamp:  r.timestamp,
		Compressed: !r.dirty && r.isCompressed(),
		Modified:   r.dirty,
	}
}

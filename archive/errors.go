// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import "errors"

// Sentinel errors for archive operations. Use errors.Is in callers.
var (
	// ErrInvalidHeader means the archive is missing or has a bad header record.
	ErrInvalidHeader = errors.New("invalid archive: missing or bad header")
	// ErrFileNameTooLong means the entry filename exceeds the maximum length.
	ErrFileNameTooLong = errors.New("entry filename exceeds maximum length")
	// ErrEntryNotFound means the entry is not found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDuplicateEntryPath means an entry with the same path already exists.
	ErrDuplicateEntryPath = errors.New("duplicate entry path")
	// ErrInvalidEntryPath means an entry path is empty or invalid after normalization.
	ErrInvalidEntryPath = errors.New("invalid entry path")
	// ErrSizeOverflow means a payload or offset exceeds the uint32 limit.
	ErrSizeOverflow = errors.New("size exceeds uint32 or 4 GiB archive limit")
	// ErrTruncated means the entry table or payload region runs past the end of data.
	ErrTruncated = errors.New("archive data truncated")
	// ErrTrailerHashMismatch means the SHA1 trailer does not match archive content.
	ErrTrailerHashMismatch = errors.New("trailer hash mismatch")
	// ErrInvalidCompressPattern means one or more compression rules are invalid.
	ErrInvalidCompressPattern = errors.New("invalid compress rules")
	// ErrDecompress means a compressed payload could not be decoded.
	ErrDecompress = errors.New("decompress entry payload")
)

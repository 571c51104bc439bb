// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"github.com/woozymasta/pathrules"
)

// Internal binary layout and format limits.
const (
	headerSize      = 21      // fixed header record size in bytes
	entryFieldsSize = 20      // five uint32 fields after each entry name
	shaSize         = 20      // SHA1 digest size in trailer
	trailerSize     = 1 + shaSize
	maxNameLen      = 512     // max entry filename length
	maxArchiveData  = 1 << 32 // max addressable archive size (4 GiB)
)

// Default compression bounds for replaced payloads.
const (
	DefaultMinCompressSize = 512
	DefaultMaxCompressSize = 16 * 1024 * 1024
)

// MimeType is the 4-byte entry type marker (stored little-endian).
type MimeType uint32

// Entry mime constants.
const (
	// MimeHeader marks the first header record ("Vers").
	MimeHeader MimeType = 0x56657273
	// MimeCompress marks LZSS-compressed data ("Cprs").
	MimeCompress MimeType = 0x43707273
	// MimeNil marks uncompressed or terminator entry.
	MimeNil MimeType = 0x00000000
)

// HeaderPair is an archive header key-value pair kept in stored order.
type HeaderPair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Entry is one archive entry. Directories are derived from entry paths and
// carry no payload.
type Entry struct {
	// Name is the entry path with "\" separators.
	Name string `json:"name" yaml:"name"`
	// Data is the decompressed payload; nil for directories.
	Data []byte `json:"-" yaml:"-"`
	// TimeStamp is the Unix timestamp from the entry record.
	TimeStamp uint32 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	// IsDir reports whether the entry is a directory.
	IsDir bool `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`
	// Compressed reports whether the payload is currently stored LZSS-compressed.
	Compressed bool `json:"compressed,omitempty" yaml:"compressed,omitempty"`
	// Modified reports whether the payload was replaced since load.
	Modified bool `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Options configures archive parse and serialize behavior.
type Options struct {
	// Compress defines ordered path rules selecting compression candidates for replaced payloads.
	Compress []pathrules.Rule `json:"compress,omitempty" yaml:"compress,omitempty"`
	// CompressMatcherOptions control compression path rule matching.
	CompressMatcherOptions pathrules.MatcherOptions `json:"compress_matcher_options,omitzero" yaml:"compress_matcher_options,omitzero"`
	// MinCompressSize disables compression for payloads smaller than this size.
	MinCompressSize uint32 `json:"min_compress_size,omitempty" yaml:"min_compress_size,omitempty"`
	// MaxCompressSize disables compression for payloads larger than this size.
	MaxCompressSize uint32 `json:"max_compress_size,omitempty" yaml:"max_compress_size,omitempty"`
	// VerifyTrailer rejects archives whose SHA1 trailer does not match content.
	VerifyTrailer bool `json:"verify_trailer,omitempty" yaml:"verify_trailer,omitempty"`
}

// applyDefaults fills zero-valued options with defaults.
func (opts *Options) applyDefaults() {
	if opts.MinCompressSize == 0 {
		opts.MinCompressSize = DefaultMinCompressSize
	}

	if opts.MaxCompressSize == 0 || opts.MaxCompressSize <= opts.MinCompressSize {
		opts.MaxCompressSize = DefaultMaxCompressSize
	}

	if opts.CompressMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.CompressMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.CompressMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.CompressMatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}

// record is the stored state of one file entry.
type record struct {
	// path is the entry path as stored in the table.
	path string
	// stored is the payload exactly as read from the archive; nil once replaced.
	stored []byte
	// data is the decompressed payload.
	data []byte
	// mime is the stored entry mime marker.
	mime MimeType
	// originalSize is the stored uncompressed size for compressed entries.
	originalSize uint32
	// timestamp is the stored Unix timestamp.
	timestamp uint32
	// dataSize is the payload length from the entry table.
	dataSize uint32
	// dirty reports whether data was replaced since load.
	dirty bool
}

// isCompressed reports whether the stored payload is LZSS-compressed.
func (r *record) isCompressed() bool {
	return r.mime == MimeCompress || (r.originalSize != 0 && uint32(len(r.stored)) < r.originalSize) //nolint:gosec // payload bounded by 4 GiB on parse
}

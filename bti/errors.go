// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import "errors"

// Sentinel errors for texture operations. Use errors.Is in callers.
var (
	// ErrUnknownEnumValue means an override names a value outside the attribute's enumeration.
	ErrUnknownEnumValue = errors.New("unknown enum value")
	// ErrInvalidOverride means an override value has the wrong JSON type or is out of range.
	ErrInvalidOverride = errors.New("invalid texture header override")
	// ErrUnsupportedFormat means pixels cannot be encoded in the requested format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrTooManyColors means the image needs more palette entries than the format allows.
	ErrTooManyColors = errors.New("image has too many colors for palette format")
	// ErrMalformedTexture means texture or texture table bytes are truncated or inconsistent.
	ErrMalformedTexture = errors.New("malformed texture data")
	// ErrImageTooLarge means the image exceeds the 1024x1024 GX texture limit.
	ErrImageTooLarge = errors.New("image exceeds maximum texture size")
	// ErrFormatChangeNeedsImage means Format or PaletteFormat changed without new pixels.
	ErrFormatChangeNeedsImage = errors.New("format change requires a replacement image")
	// ErrTextureNotFound means no texture with the given name exists in the table.
	ErrTextureNotFound = errors.New("texture not found")
)

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bdl

import "errors"

// Sentinel errors for container operations. Use errors.Is in callers.
var (
	// ErrMalformedContainer means the byte stream is truncated, misaligned, or repeats a section tag.
	ErrMalformedContainer = errors.New("malformed model container")
	// ErrMissingDonorSection means a requested tag is absent from the donor container.
	ErrMissingDonorSection = errors.New("section missing from donor container")
	// ErrMissingTargetSection means a requested tag is absent from the target container.
	ErrMissingTargetSection = errors.New("section missing from target container")
	// ErrInvalidSection means replacement block bytes disagree with their own tag or length field.
	ErrInvalidSection = errors.New("invalid section block")
	// ErrNilContainer means a nil container was passed.
	ErrNilContainer = errors.New("container is nil")
)

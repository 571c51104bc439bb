// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"errors"
	"strings"
)

var (
	// ErrFolderNotFound means the reference or replacement folder does not exist.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrConverterNotFound means the converter executable does not exist.
	ErrConverterNotFound = errors.New("converter not found")
	// ErrConverterFailed means the converter exited non-zero, timed out, or wrote no output.
	ErrConverterFailed = errors.New("converter failed")
	// ErrInvalidConfig means a config file could not be decoded.
	ErrInvalidConfig = errors.New("invalid config")
)

// UnweightedVerticesError reports meshes whose vertices carry no skin weights.
// The converter cannot read such scenes.
type UnweightedVerticesError struct {
	// Meshes lists offending meshes in document order.
	Meshes []string
}

// Error implements error.
func (e *UnweightedVerticesError) Error() string {
	return "all of the vertices in the following meshes are unweighted: " + strings.Join(e.Meshes, ", ")
}

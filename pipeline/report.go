// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"io"

	"github.com/fatih/color"
	"github.com/woozymasta/bdl/archive"
	"github.com/zeebo/blake3"
)

// Change describes one archive entry whose payload differs from the reference.
type Change struct {
	// Name is the entry path.
	Name string `json:"name" yaml:"name"`
	// OrigSize is the reference payload size.
	OrigSize int `json:"orig_size" yaml:"orig_size"`
	// NewSize is the rebuilt payload size.
	NewSize int `json:"new_size" yaml:"new_size"`
	// ContentOnly is set when sizes match but content differs.
	ContentOnly bool `json:"content_only,omitempty" yaml:"content_only,omitempty"`
}

// DiffArchives compares file entries of modified with the same entries in orig.
// Entries missing from orig are skipped.
func DiffArchives(orig, modified Archive) []Change {
	var changes []Change
	for _, e := range modified.Entries() {
		if e.IsDir {
			continue
		}

		o, err := orig.Entry(e.Name)
		if err != nil {
			continue
		}

		switch {
		case len(o.Data) != len(e.Data):
			changes = append(changes, Change{Name: e.Name, OrigSize: len(o.Data), NewSize: len(e.Data)})
		case blake3.Sum256(o.Data) != blake3.Sum256(e.Data):
			changes = append(changes, Change{Name: e.Name, OrigSize: len(o.Data), NewSize: len(e.Data), ContentOnly: true})
		}
	}

	return changes
}

// PrintChanges writes one line per change. Size changes are highlighted.
func PrintChanges(w io.Writer, changes []Change) {
	sizeColor := color.New(color.FgYellow)
	contentColor := color.New(color.FgCyan)
	for _, c := range changes {
		name := archive.BaseName(c.Name)
		if c.ContentOnly {
			_, _ = contentColor.Fprintf(w, "File %s, content changed, size %X\n", name, c.NewSize)
			continue
		}

		_, _ = sizeColor.Fprintf(w, "File %s, orig size %X, new size %X\n", name, c.OrigSize, c.NewSize)
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ConvertRequest names the files of one scene conversion.
type ConvertRequest struct {
	// Scene is the input scene description.
	Scene string
	// Output is the container written by the converter.
	Output string
	// TextureHeaders is the texture header description file.
	TextureHeaders string
	// Materials is the material description file.
	Materials string
}

// Args returns the converter command line arguments.
func (r ConvertRequest) Args() []string {
	return []string{
		"-i", r.Scene,
		"-o", r.Output,
		"-x", r.TextureHeaders,
		"-m", r.Materials,
		"-t", "all",
		"--bdl",
	}
}

// Converter turns a scene description into a container file.
type Converter interface {
	Convert(ctx context.Context, req ConvertRequest) error
}

// ExecConverter runs an external converter executable.
type ExecConverter struct {
	// Path is the executable path. Bare names are looked up in PATH.
	Path string
	// Timeout bounds one run; zero disables the limit.
	Timeout time.Duration
	// Stdout and Stderr receive converter output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Available reports ErrConverterNotFound when the executable is missing.
func (c *ExecConverter) Available() error {
	if filepath.Base(c.Path) == c.Path {
		if _, err := exec.LookPath(c.Path); err != nil {
			return fmt.Errorf("%w: %s", ErrConverterNotFound, c.Path)
		}

		return nil
	}

	info, err := os.Stat(c.Path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrConverterNotFound, c.Path)
	}

	return nil
}

// Convert runs the converter and checks that it wrote the output file.
func (c *ExecConverter) Convert(ctx context.Context, req ConvertRequest) error {
	if err := c.Available(); err != nil {
		return err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, req.Args()...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrConverterNotFound, c.Path)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrConverterFailed, req.Scene, ctxErr)
		}

		return fmt.Errorf("%w: %s: %w", ErrConverterFailed, req.Scene, err)
	}

	if !isFile(req.Output) {
		return fmt.Errorf("%w: %s was not written", ErrConverterFailed, req.Output)
	}

	return nil
}

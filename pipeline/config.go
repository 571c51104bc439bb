// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/woozymasta/bdl"
	"github.com/woozymasta/bdl/archive"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	// DefaultArchiveName is the archive file read from the reference folder
	// and written to the replacement folder.
	DefaultArchiveName = "Link.arc"
	// DefaultHandsModel is the model skipped unless hands repacking is enabled.
	DefaultHandsModel = "hands"
	// DefaultHandsTexture is the texture replaced inside the hands model.
	DefaultHandsTexture = "handsS3TC"
	// DefaultMinCompressSize keeps small replaced payloads uncompressed.
	DefaultMinCompressSize = 1024
)

// DefaultConverterPath is the converter executable used when none is configured.
var DefaultConverterPath = filepath.Join("SuperBMD", "SuperBMD.exe")

// Config controls one pipeline run.
type Config struct {
	// LinkDir is the clean reference folder holding the archive and one
	// folder per model with its clean container.
	LinkDir string `json:"link_dir" yaml:"link_dir"`
	// CustomDir is the replacement folder; the rebuilt archive is written here.
	CustomDir string `json:"custom_dir" yaml:"custom_dir"`
	// ConverterPath is the scene-to-container converter executable.
	ConverterPath string `json:"converter_path,omitempty" yaml:"converter_path,omitempty"`
	// ConverterTimeout bounds one converter run; zero disables the limit.
	ConverterTimeout time.Duration `json:"converter_timeout,omitempty" yaml:"converter_timeout,omitempty"`
	// ArchiveName is the archive file name in both folders.
	ArchiveName string `json:"archive_name,omitempty" yaml:"archive_name,omitempty"`
	// SectionOverrides maps a model name to the sections copied from its
	// clean container. Models not listed copy nothing.
	SectionOverrides map[string][]string `json:"section_overrides,omitempty" yaml:"section_overrides,omitempty"`
	// HandsModel is the hands model name.
	HandsModel string `json:"hands_model,omitempty" yaml:"hands_model,omitempty"`
	// HandsTexture is the texture name replaced inside the hands model.
	HandsTexture string `json:"hands_texture,omitempty" yaml:"hands_texture,omitempty"`
	// RepackHands converts the hands model like any other model instead of
	// only replacing its texture.
	RepackHands bool `json:"repack_hands,omitempty" yaml:"repack_hands,omitempty"`
	// CompressPatterns select replaced archive entries stored LZSS-compressed.
	CompressPatterns []string `json:"compress_patterns,omitempty" yaml:"compress_patterns,omitempty"`
	// MinCompressSize disables compression for smaller payloads.
	MinCompressSize uint32 `json:"min_compress_size,omitempty" yaml:"min_compress_size,omitempty"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// applyDefaults fills zero-valued fields with defaults.
func (cfg *Config) applyDefaults() {
	if cfg.ConverterPath == "" {
		cfg.ConverterPath = DefaultConverterPath
	}

	if cfg.ArchiveName == "" {
		cfg.ArchiveName = DefaultArchiveName
	}

	if cfg.SectionOverrides == nil {
		cfg.SectionOverrides = map[string][]string{
			"cl": {bdl.TagINF1, bdl.TagJNT1},
		}
	}

	if cfg.HandsModel == "" {
		cfg.HandsModel = DefaultHandsModel
	}

	if cfg.HandsTexture == "" {
		cfg.HandsTexture = DefaultHandsTexture
	}

	if cfg.MinCompressSize == 0 {
		cfg.MinCompressSize = DefaultMinCompressSize
	}
}

// validate checks that both folders exist.
func (cfg *Config) validate() error {
	for _, dir := range []struct{ name, path string }{
		{name: "clean link folder", path: cfg.LinkDir},
		{name: "custom player folder", path: cfg.CustomDir},
	} {
		if dir.path == "" {
			return fmt.Errorf("%w: %s not set", ErrFolderNotFound, dir.name)
		}

		if !isDir(dir.path) {
			return fmt.Errorf("%w: %s does not exist: %s", ErrFolderNotFound, dir.name, dir.path)
		}
	}

	return nil
}

// archiveOptions converts compression settings to archive options.
func (cfg *Config) archiveOptions() archive.Options {
	return archive.Options{
		Compress:        archive.IncludeRules(cfg.CompressPatterns...),
		MinCompressSize: cfg.MinCompressSize,
	}
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isFile reports whether path is an existing regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/bdl"
	"github.com/woozymasta/bdl/archive"
)

// Entry extensions selecting models and textures in the archive.
const (
	modelExt   = ".bdl"
	textureExt = ".bti"
)

// Archive is the archive surface used by the pipeline.
type Archive interface {
	Entries() []archive.Entry
	Entry(name string) (archive.Entry, error)
	Data(name string) ([]byte, error)
	SetData(name string, data []byte) error
	Marshal() ([]byte, error)
	WriteFile(path string) error
}

// OpenFunc loads an archive from path.
type OpenFunc func(path string) (Archive, error)

// Options carries pipeline collaborators.
type Options struct {
	// Converter converts scenes. Nil runs Config.ConverterPath.
	Converter Converter
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
	// Output receives the change report. Nil discards it.
	Output io.Writer
	// OpenArchive loads the reference archive. Nil reads the bundled
	// archive format with archive.Open.
	OpenArchive OpenFunc
}

// Pipeline rebuilds one archive.
type Pipeline struct {
	cfg       Config
	converter Converter
	open      OpenFunc
	logger    *slog.Logger
	out       io.Writer
}

// New validates cfg and returns a pipeline. Missing folders fail with
// ErrFolderNotFound and a missing converter executable with ErrConverterNotFound.
func New(cfg Config, opts Options) (*Pipeline, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		converter: opts.Converter,
		open:      opts.OpenArchive,
		logger:    opts.Logger,
		out:       opts.Output,
	}

	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}

	if p.out == nil {
		p.out = io.Discard
	}

	if p.open == nil {
		archiveOpts := cfg.archiveOptions()
		p.open = func(path string) (Archive, error) {
			return archive.Open(path, archiveOpts)
		}
	}

	if p.converter == nil {
		p.converter = &ExecConverter{
			Path:    cfg.ConverterPath,
			Timeout: cfg.ConverterTimeout,
			Stdout:  p.out,
			Stderr:  os.Stderr,
		}
	}

	if checker, ok := p.converter.(interface{ Available() error }); ok {
		if err := checker.Available(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Config returns the effective configuration with defaults applied.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run converts models, imports textures, reports changes, and writes the
// rebuilt archive to the replacement folder. Nothing is written on error.
func (p *Pipeline) Run(ctx context.Context) error {
	refPath := filepath.Join(p.cfg.LinkDir, p.cfg.ArchiveName)
	arc, err := p.open(refPath)
	if err != nil {
		return fmt.Errorf("open reference archive: %w", err)
	}

	p.logger.Debug("reference archive loaded", "path", refPath, "entries", len(arc.Entries()))

	if err := p.repackModels(ctx, arc); err != nil {
		return err
	}

	if err := p.importTextures(arc); err != nil {
		return err
	}

	if !p.cfg.RepackHands {
		if err := p.replaceHandsTexture(arc); err != nil {
			return err
		}
	}

	orig, err := p.open(refPath)
	if err != nil {
		return fmt.Errorf("reopen reference archive: %w", err)
	}
	PrintChanges(p.out, DiffArchives(orig, arc))

	outPath := filepath.Join(p.cfg.CustomDir, p.cfg.ArchiveName)
	if err := arc.WriteFile(outPath); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	p.logger.Info("archive written", "path", outPath)
	return nil
}

// repackModels converts every model that has a replacement folder.
func (p *Pipeline) repackModels(ctx context.Context, arc Archive) error {
	for _, e := range entriesWithExt(arc, modelExt) {
		name := stem(e.Name)
		if name == p.cfg.HandsModel && !p.cfg.RepackHands {
			p.logger.Debug("skipping hands model", "model", name)
			continue
		}

		folder := filepath.Join(p.cfg.CustomDir, name)
		if !isDir(folder) {
			continue
		}

		data, err := p.repackModel(ctx, folder, name)
		if err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}

		if err := arc.SetData(e.Name, data); err != nil {
			return err
		}
	}

	return nil
}

// repackModel validates and converts one scene and splices the clean
// sections into the result.
func (p *Pipeline) repackModel(ctx context.Context, folder, name string) ([]byte, error) {
	scene := filepath.Join(folder, name+".dae")
	if err := ValidateSceneFile(scene); err != nil {
		return nil, err
	}

	output := filepath.Join(folder, name+modelExt)
	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale output: %w", err)
	}

	p.logger.Info("converting model", "scene", scene)
	req := ConvertRequest{
		Scene:          scene,
		Output:         output,
		TextureHeaders: filepath.Join(folder, "tex_headers.json"),
		Materials:      filepath.Join(folder, "materials.json"),
	}
	if err := p.converter.Convert(ctx, req); err != nil {
		return nil, err
	}

	tags := p.cfg.SectionOverrides[name]
	donor := filepath.Join(p.cfg.LinkDir, name, name+modelExt)
	data, err := bdl.SpliceFiles(output, donor, tags)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("sections spliced", "model", name, "tags", tags, "size", len(data))
	return data, nil
}

// entriesWithExt returns file entries whose base name ends with ext.
func entriesWithExt(arc Archive, ext string) []archive.Entry {
	var out []archive.Entry
	for _, e := range arc.Entries() {
		if !e.IsDir && strings.EqualFold(filepath.Ext(archive.BaseName(e.Name)), ext) {
			out = append(out, e)
		}
	}

	return out
}

// stem returns the base name of an entry without its extension.
func stem(entryName string) string {
	base := archive.BaseName(entryName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/woozymasta/bdl"
	"github.com/woozymasta/bdl/bti"
)

// Replacement texture file suffixes.
const (
	imageSuffix   = ".png"
	sidecarSuffix = "_tex_header.json"
)

// importTextures rebuilds and imports standalone textures.
func (p *Pipeline) importTextures(arc Archive) error {
	for _, e := range entriesWithExt(arc, textureExt) {
		if err := p.importTexture(arc, e.Name); err != nil {
			return fmt.Errorf("texture %s: %w", stem(e.Name), err)
		}
	}

	return nil
}

// importTexture handles one texture entry. A PNG, or a header sidecar alone
// when no prebuilt file exists, rebuilds the texture into <custom>/<name>.bti,
// which is then imported raw like a prebuilt file.
func (p *Pipeline) importTexture(arc Archive, entryName string) error {
	name := stem(entryName)
	pngPath := filepath.Join(p.cfg.CustomDir, name+imageSuffix)
	sidecarPath := filepath.Join(p.cfg.CustomDir, name+sidecarSuffix)
	btiPath := filepath.Join(p.cfg.CustomDir, name+textureExt)

	hasImage := isFile(pngPath)
	hasSidecar := isFile(sidecarPath)

	switch {
	case hasImage:
		img, err := readPNG(pngPath)
		if err != nil {
			return err
		}

		data, err := p.rebuildTexture(arc, entryName, sidecarPath, hasSidecar, img)
		if err != nil {
			return err
		}

		if err := os.WriteFile(btiPath, data, 0o644); err != nil { //nolint:gosec // user-facing output file
			return fmt.Errorf("write texture: %w", err)
		}

		p.logger.Info("texture rebuilt", "texture", name, "path", btiPath)
	case hasSidecar && !isFile(btiPath):
		data, err := p.rebuildTexture(arc, entryName, sidecarPath, true, nil)
		if err != nil {
			return err
		}

		if err := os.WriteFile(btiPath, data, 0o644); err != nil { //nolint:gosec // user-facing output file
			return fmt.Errorf("write texture: %w", err)
		}

		p.logger.Info("texture header updated", "texture", name, "path", btiPath)
	}

	if !isFile(btiPath) {
		return nil
	}

	data, err := os.ReadFile(btiPath)
	if err != nil {
		return fmt.Errorf("read texture: %w", err)
	}

	p.logger.Debug("texture imported", "texture", name, "size", len(data))
	return arc.SetData(entryName, data)
}

// rebuildTexture loads the archive texture, applies sidecar overrides, and
// replaces its pixels with img when img is not nil.
func (p *Pipeline) rebuildTexture(arc Archive, entryName, sidecarPath string, hasSidecar bool, img image.Image) ([]byte, error) {
	data, err := arc.Data(entryName)
	if err != nil {
		return nil, err
	}

	tex, err := bti.Decode(data)
	if err != nil {
		return nil, err
	}

	before := tex.Header
	if hasSidecar {
		overrides, err := bti.ReadOverrides(sidecarPath)
		if err != nil {
			return nil, err
		}

		if err := bti.ApplyOverrides(&tex.Header, overrides); err != nil {
			return nil, fmt.Errorf("%s: %w", sidecarPath, err)
		}
	}

	if img != nil {
		if err := tex.ReplaceImage(img); err != nil {
			return nil, err
		}
	} else if !before.SameLayout(tex.Header) {
		return nil, fmt.Errorf("%w: %s changes %s to %s", bti.ErrFormatChangeNeedsImage,
			sidecarPath, before.Format, tex.Header.Format)
	}

	return tex.Encode()
}

// replaceHandsTexture replaces the hands texture inside the hands model.
func (p *Pipeline) replaceHandsTexture(arc Archive) error {
	pngPath := filepath.Join(p.cfg.CustomDir, p.cfg.HandsModel, p.cfg.HandsTexture+imageSuffix)
	if !isFile(pngPath) {
		return nil
	}

	img, err := readPNG(pngPath)
	if err != nil {
		return err
	}

	entryName := p.cfg.HandsModel + modelExt
	data, err := arc.Data(entryName)
	if err != nil {
		return err
	}

	model, err := bdl.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", entryName, err)
	}

	section, ok := model.Section(bdl.TagTEX1)
	if !ok {
		return fmt.Errorf("%s: %w: %q", entryName, bdl.ErrMissingTargetSection, bdl.TagTEX1)
	}

	table, err := bti.ParseTable(section)
	if err != nil {
		return fmt.Errorf("%s: %w", entryName, err)
	}

	n, err := table.ReplaceImage(p.cfg.HandsTexture, img)
	if err != nil {
		return fmt.Errorf("%s: %w", entryName, err)
	}

	rebuilt, err := table.Encode()
	if err != nil {
		return err
	}

	model, err = model.ReplaceSection(bdl.TagTEX1, rebuilt)
	if err != nil {
		return fmt.Errorf("%s: %w", entryName, err)
	}

	p.logger.Info("hands texture replaced", "texture", p.cfg.HandsTexture, "count", n)
	return arc.SetData(entryName, model.Encode())
}

// readPNG decodes a PNG image file.
func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return img, nil
}

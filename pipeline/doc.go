// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

/*
Package pipeline rebuilds a player archive from a clean reference folder and a
folder of replacement models and textures.

For every model in the reference archive that has a replacement folder, the
scene is validated, converted to a container by an external converter, and the
skeleton sections of the clean model are spliced back in. Textures are rebuilt
from PNG images with optional header overrides, the hands texture is replaced
inside the hands model, size changes are reported, and the archive is written
once to the replacement folder.

	p, err := pipeline.New(pipeline.Config{
		LinkDir:   "clean/Link",
		CustomDir: "custom/Hero",
	}, pipeline.Options{Logger: logger, Output: os.Stdout})
	if err != nil {
		return err
	}
	err = p.Run(ctx)
*/
package pipeline

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package pipeline

import (
	"fmt"
	"os"
	"regexp"
)

// unweightedSkinPattern matches a skin-weight input followed by a vertex
// count list and an empty weight index list.
var unweightedSkinPattern = regexp.MustCompile(
	`<input semantic="WEIGHT" source="#skeleton_root_([^"]+?)-skin-weights" offset="\d+"/>\s*` +
		`<vcount>[^<]+</vcount>\s*` +
		`(?:<v\s*/>|<v>\s*</v>)`,
)

// ValidateScene returns *UnweightedVerticesError when any mesh in the scene
// description has skin weights with an empty weight list.
func ValidateScene(data []byte) error {
	matches := unweightedSkinPattern.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil
	}

	meshes := make([]string, 0, len(matches))
	for _, m := range matches {
		meshes = append(meshes, string(m[1]))
	}

	return &UnweightedVerticesError{Meshes: meshes}
}

// ValidateSceneFile reads and validates a scene description file.
func ValidateSceneFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	return ValidateScene(data)
}

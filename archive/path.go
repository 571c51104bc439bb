// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"fmt"
	"path"
	"strings"
)

// NormalizePath converts an archive path to normalized slash-separated form.
// It trims spaces, accepts both "/" and "\", removes leading "./" and "/", and cleans "." segments.
func NormalizePath(raw string) string {
	raw = normalizePathForMatching(raw)
	raw = strings.TrimPrefix(raw, "/")
	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}

	return strings.TrimSuffix(raw, "/")
}

// BaseName returns the last path element of an archive path.
func BaseName(raw string) string {
	normalized := NormalizePath(raw)
	if normalized == "" {
		return ""
	}

	return path.Base(normalized)
}

// normalizePathForMatching normalizes user/input paths for matcher use.
func normalizePathForMatching(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, `/`)
	p = strings.TrimPrefix(p, "./")
	return p
}

// normalizeArchiveEntryPath converts input path to canonical archive form with "\" separators.
func normalizeArchiveEntryPath(raw string) (string, error) {
	normalizedPath := NormalizePath(raw)
	if normalizedPath == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryPath, raw)
	}

	if len(normalizedPath) > maxNameLen {
		return "", fmt.Errorf("%w: %q", ErrFileNameTooLong, raw)
	}

	return strings.ReplaceAll(normalizedPath, "/", `\`), nil
}

// parentDirs returns every ancestor directory of an archive path, outermost first,
// using "\" separators.
func parentDirs(entryPath string) []string {
	normalized := NormalizePath(entryPath)
	parts := strings.Split(normalized, "/")
	if len(parts) < 2 {
		return nil
	}

	dirs := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		dirs = append(dirs, strings.Join(parts[:i], `\`))
	}

	return dirs
}

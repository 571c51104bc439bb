// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"bytes"
	"fmt"

	"github.com/woozymasta/lzss"
	"github.com/woozymasta/pathrules"
)

// compressPolicy decides which replaced payloads are stored compressed.
// A nil matcher selects nothing.
type compressPolicy struct {
	matcher  *pathrules.Matcher
	min, max uint32
}

// newCompressPolicy compiles the compression rules and size bounds of opts.
func newCompressPolicy(opts Options) (compressPolicy, error) {
	policy := compressPolicy{min: opts.MinCompressSize, max: opts.MaxCompressSize}

	var rules []pathrules.Rule
	for _, rule := range opts.Compress {
		if pattern := normalizePathForMatching(rule.Pattern); pattern != "" {
			rules = append(rules, pathrules.Rule{Action: rule.Action, Pattern: pattern})
		}
	}
	if len(rules) == 0 {
		return policy, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts.CompressMatcherOptions)
	if err != nil {
		return compressPolicy{}, fmt.Errorf("%w: %w", ErrInvalidCompressPattern, err)
	}
	policy.matcher = matcher

	return policy, nil
}

// IncludeRules returns one include rule per glob pattern.
func IncludeRules(patterns ...string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: pattern})
	}

	return rules
}

// selects reports whether a payload of size bytes at entryPath is a
// compression candidate.
func (p compressPolicy) selects(entryPath string, size int) bool {
	if p.matcher == nil || uint64(size) < uint64(p.min) || uint64(size) > uint64(p.max) {
		return false
	}

	candidate := NormalizePath(entryPath)
	return candidate != "" && p.matcher.Included(candidate, false)
}

// compress returns the LZSS form of data when the policy selects it and
// compression shrinks it.
func (p compressPolicy) compress(entryPath string, data []byte) ([]byte, bool, error) {
	if !p.selects(entryPath, len(data)) {
		return nil, false, nil
	}

	packed, err := lzss.Compress(data, lzss.DefaultCompressOptions())
	if err != nil {
		return nil, false, fmt.Errorf("compress %s: %w", entryPath, err)
	}

	if len(packed) >= len(data) {
		return nil, false, nil
	}

	return packed, true, nil
}

// decompressLZSS expands one stored payload to its recorded size.
func decompressLZSS(name string, src []byte, outLen int) ([]byte, error) {
	var dst bytes.Buffer
	dst.Grow(outLen)

	if _, err := lzss.DecompressToWriter(&dst, bytes.NewReader(src), outLen, nil); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecompress, name, err)
	}

	return dst.Bytes(), nil
}

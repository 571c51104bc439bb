// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package bti

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tidwall/jsonc"
)

// overrideSetter decodes one sidecar value and stores it in a header.
type overrideSetter func(h *Header, raw json.RawMessage) error

// headerOverrides maps sidecar keys to header setters. Adding a header
// attribute to the sidecar format is one entry here.
var headerOverrides = map[string]overrideSetter{
	"Format":        enumOverride("Format", imageFormatNames, func(h *Header, v ImageFormat) { h.Format = v }),
	"PaletteFormat": enumOverride("PaletteFormat", paletteFormatNames, func(h *Header, v PaletteFormat) { h.PaletteFormat = v }),
	"WrapS":         enumOverride("WrapS", wrapModeNames, func(h *Header, v WrapMode) { h.WrapS = v }),
	"WrapT":         enumOverride("WrapT", wrapModeNames, func(h *Header, v WrapMode) { h.WrapT = v }),
	"MagFilter":     enumOverride("MagFilter", filterModeNames, func(h *Header, v FilterMode) { h.MagFilter = v }),
	"MinFilter":     enumOverride("MinFilter", filterModeNames, func(h *Header, v FilterMode) { h.MinFilter = v }),
	"AlphaSetting":  intOverride("AlphaSetting", 0, math.MaxUint8, func(h *Header, v int64) { h.AlphaSetting = uint8(v) }),
	// LodBias is stored raw; signed and unsigned JSON forms are both accepted.
	"LodBias":  intOverride("LodBias", math.MinInt16, math.MaxUint16, func(h *Header, v int64) { h.LODBias = uint16(v) }), //nolint:gosec // range checked
	"unknown2": intOverride("unknown2", 0, math.MaxUint16, func(h *Header, v int64) { h.Unknown2 = uint16(v) }),
	"unknown3": intOverride("unknown3", 0, math.MaxUint8, func(h *Header, v int64) { h.Unknown3 = uint8(v) }),
}

// OverrideKeys returns the recognized sidecar keys in lexical order.
func OverrideKeys() []string {
	return sortedKeys(headerOverrides)
}

// ParseOverrides parses a JSON sidecar object. Comments and trailing commas are allowed.
func ParseOverrides(data []byte) (map[string]json.RawMessage, error) {
	var overrides map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &overrides); err != nil {
		return nil, fmt.Errorf("%w: parse sidecar: %w", ErrInvalidOverride, err)
	}

	return overrides, nil
}

// ReadOverrides reads and parses a JSON sidecar file.
func ReadOverrides(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture header: %w", err)
	}

	overrides, err := ParseOverrides(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return overrides, nil
}

// ApplyOverrides sets every recognized key of overrides on h. Unrecognized
// keys are ignored. On error h is left unchanged.
func ApplyOverrides(h *Header, overrides map[string]json.RawMessage) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	next := *h
	for _, key := range keys {
		set, ok := headerOverrides[key]
		if !ok {
			continue
		}

		if err := set(&next, overrides[key]); err != nil {
			return err
		}
	}

	*h = next
	return nil
}

// enumOverride builds a setter resolving a JSON string through a closed lookup.
func enumOverride[T any](key string, names map[string]T, set func(*Header, T)) overrideSetter {
	return func(h *Header, raw json.RawMessage) error {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("%w: %s must be a string: %w", ErrInvalidOverride, key, err)
		}

		v, err := lookupEnum(key, names, name)
		if err != nil {
			return err
		}

		set(h, v)
		return nil
	}
}

// intOverride builds a setter for an integer attribute within [lo, hi].
func intOverride(key string, lo, hi int64, set func(*Header, int64)) overrideSetter {
	return func(h *Header, raw json.RawMessage) error {
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %s must be an integer: %w", ErrInvalidOverride, key, err)
		}

		if v < lo || v > hi {
			return fmt.Errorf("%w: %s=%d out of range [%d, %d]", ErrInvalidOverride, key, v, lo, hi)
		}

		set(h, v)
		return nil
	}
}

package bti

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestApplyOverrides_SetsPresentKeysOnly(t *testing.T) {
	t.Parallel()

	h := Header{
		Format:       FormatC4,
		WrapS:        WrapClampToEdge,
		WrapT:        WrapClampToEdge,
		MinFilter:    FilterNearest,
		AlphaSetting: 0,
		Unknown2:     0x1234,
	}

	overrides, err := ParseOverrides([]byte(`{
		// converter-generated sidecar
		"Format": "CMPR",
		"WrapS": "Repeat",
		"MagFilter": "Linear",
		"AlphaSetting": 1,
		"LodBias": -2,
		"unknown3": 9,
		"FutureKey": {"nested": true},
	}`))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}

	if err := ApplyOverrides(&h, overrides); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	want := Header{
		Format:       FormatCMPR,
		WrapS:        WrapRepeat,
		WrapT:        WrapClampToEdge,
		MinFilter:    FilterNearest,
		MagFilter:    FilterLinear,
		AlphaSetting: 1,
		LODBias:      0xFFFE,
		Unknown2:     0x1234,
		Unknown3:     9,
	}
	if h != want {
		t.Fatalf("header = %+v, want %+v", h, want)
	}
}

func TestApplyOverrides_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		json string
		want error
	}{
		{name: "unknown format", json: `{"Format": "DXT5"}`, want: ErrUnknownEnumValue},
		{name: "unknown palette", json: `{"PaletteFormat": "RGBA8"}`, want: ErrUnknownEnumValue},
		{name: "unknown wrap", json: `{"WrapT": "Clamp"}`, want: ErrUnknownEnumValue},
		{name: "unknown filter", json: `{"MinFilter": "Bilinear"}`, want: ErrUnknownEnumValue},
		{name: "enum as number", json: `{"Format": 14}`, want: ErrInvalidOverride},
		{name: "int as string", json: `{"AlphaSetting": "1"}`, want: ErrInvalidOverride},
		{name: "out of range", json: `{"unknown3": 256}`, want: ErrInvalidOverride},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			overrides, err := ParseOverrides([]byte(tc.json))
			if err != nil {
				t.Fatalf("ParseOverrides: %v", err)
			}

			h := Header{Format: FormatI8, WrapS: WrapRepeat}
			orig := h
			if err := ApplyOverrides(&h, overrides); !errors.Is(err, tc.want) {
				t.Fatalf("ApplyOverrides err=%v, want %v", err, tc.want)
			}
			if h != orig {
				t.Fatal("header modified on error")
			}
		})
	}
}

func TestApplyOverrides_PartialFailureLeavesHeader(t *testing.T) {
	t.Parallel()

	h := Header{Format: FormatI8}
	overrides := map[string]json.RawMessage{
		"AlphaSetting": json.RawMessage(`1`),
		"WrapS":        json.RawMessage(`"Sideways"`),
	}

	if err := ApplyOverrides(&h, overrides); !errors.Is(err, ErrUnknownEnumValue) {
		t.Fatalf("err=%v", err)
	}
	if h.AlphaSetting != 0 {
		t.Fatal("earlier key applied despite later failure")
	}
}

func TestParseOverrides_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseOverrides([]byte(`["Format"]`)); !errors.Is(err, ErrInvalidOverride) {
		t.Fatalf("array sidecar err=%v", err)
	}
}

func TestReadOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "linktexS3TC_tex_header.json")
	if err := os.WriteFile(path, []byte(`{"Format": "RGB5A3"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := ReadOverrides(path)
	if err != nil {
		t.Fatalf("ReadOverrides: %v", err)
	}
	if _, ok := overrides["Format"]; !ok {
		t.Fatal("Format key missing")
	}

	if _, err := ReadOverrides(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err=%v", err)
	}
}

func TestOverrideKeys(t *testing.T) {
	t.Parallel()

	want := []string{
		"AlphaSetting", "Format", "LodBias", "MagFilter", "MinFilter",
		"PaletteFormat", "WrapS", "WrapT", "unknown2", "unknown3",
	}
	if got := OverrideKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("OverrideKeys()=%v, want %v", got, want)
	}
}

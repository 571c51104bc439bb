package bti

import (
	"errors"
	"testing"
)

func TestHeader_RoundTrip(t *testing.T) {
	t.Parallel()

	h := Header{
		Format:          FormatC8,
		AlphaSetting:    2,
		Width:           128,
		Height:          64,
		WrapS:           WrapRepeat,
		WrapT:           WrapMirroredRepeat,
		PalettesEnabled: true,
		PaletteFormat:   PaletteRGB5A3,
		NumColors:       200,
		PaletteOffset:   0x20,
		Unknown1:        0x01020304,
		MinFilter:       FilterLinearMipmapLinear,
		MagFilter:       FilterLinear,
		Unknown2:        0xBEEF,
		MipmapCount:     3,
		Unknown3:        7,
		LODBias:         0xFFF0,
		ImageOffset:     0x1A0,
	}

	encoded, err := h.AppendBinary(nil)
	if err != nil {
		t.Fatalf("AppendBinary: %v", err)
	}
	if len(encoded) != HeaderSize {
		t.Fatalf("len=%d, want %d", len(encoded), HeaderSize)
	}

	got, err := ParseHeader(encoded)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != h {
		t.Fatalf("round-trip header = %+v, want %+v", got, h)
	}

	if _, err := ParseHeader(encoded[:HeaderSize-1]); !errors.Is(err, ErrMalformedTexture) {
		t.Fatalf("short header err=%v", err)
	}
}

func TestHeader_SameLayout(t *testing.T) {
	t.Parallel()

	base := Header{Format: FormatC4, PaletteFormat: PaletteIA8}

	cases := []struct {
		name  string
		other Header
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "format differs", other: Header{Format: FormatC8, PaletteFormat: PaletteIA8}, want: false},
		{name: "palette differs", other: Header{Format: FormatC4, PaletteFormat: PaletteRGB565}, want: false},
		{name: "wrap differs", other: Header{Format: FormatC4, PaletteFormat: PaletteIA8, WrapS: WrapRepeat}, want: true},
	}

	for _, tc := range cases {
		if got := base.SameLayout(tc.other); got != tc.want {
			t.Errorf("%s: SameLayout=%v, want %v", tc.name, got, tc.want)
		}
	}

	direct := Header{Format: FormatRGB565, PaletteFormat: PaletteIA8}
	if !direct.SameLayout(Header{Format: FormatRGB565, PaletteFormat: PaletteRGB5A3}) {
		t.Fatal("palette format must not matter for direct formats")
	}
}

func TestImageDataSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format ImageFormat
		w, h   int
		mips   int
		want   int
	}{
		{format: FormatI4, w: 8, h: 8, mips: 1, want: 32},
		{format: FormatI8, w: 16, h: 8, mips: 1, want: 128},
		{format: FormatRGBA32, w: 4, h: 4, mips: 1, want: 64},
		{format: FormatCMPR, w: 9, h: 8, mips: 1, want: 64},
		{format: FormatRGB565, w: 8, h: 8, mips: 2, want: 128 + 32},
		{format: FormatC8, w: 1, h: 1, mips: 0, want: 32},
	}

	for _, tc := range cases {
		got, err := ImageDataSize(tc.format, tc.w, tc.h, tc.mips)
		if err != nil {
			t.Fatalf("%s: %v", tc.format, err)
		}
		if got != tc.want {
			t.Errorf("ImageDataSize(%s, %d, %d, %d)=%d, want %d", tc.format, tc.w, tc.h, tc.mips, got, tc.want)
		}
	}

	if _, err := ImageDataSize(ImageFormat(7), 4, 4, 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("unknown format err=%v", err)
	}
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	if FormatCMPR.String() != "CMPR" || PaletteRGB5A3.String() != "RGB5A3" ||
		WrapClampToEdge.String() != "ClampToEdge" || FilterLinear.String() != "Linear" {
		t.Fatal("unexpected enum names")
	}
	if got := ImageFormat(0x7).String(); got != "0x7" {
		t.Fatalf("unknown format String()=%q", got)
	}
}

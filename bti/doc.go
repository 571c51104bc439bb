// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

/*
Package bti reads and writes GX textures: standalone BTI files and the
TEX1 texture table embedded in J3D models.

A texture is a 32-byte Header plus image data and an optional palette.
Header attributes can be overridden from a JSON sidecar through a
declarative key table (see ApplyOverrides), and pixels can be re-encoded
from any image.Image in the header's format:

	tex, err := bti.Decode(data)
	if err != nil {
	    return err
	}
	overrides, err := bti.ParseOverrides(sidecar)
	if err != nil {
	    return err
	}
	if err := bti.ApplyOverrides(&tex.Header, overrides); err != nil {
	    return err
	}
	if err := tex.ReplaceImage(img); err != nil {
	    return err
	}
	out, err := tex.Encode()

Supported encoders: I4, I8, IA4, IA8, RGB565, RGB5A3, RGBA32, CMPR, and
C4/C8 with an exact palette. C14X2 is read but cannot be encoded.
*/
package bti

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

package archive

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // Trailer format requires SHA1.
	"fmt"
)

// appendSHA1Trailer appends 0x00 + SHA1 of all preceding bytes.
func appendSHA1Trailer(data []byte) []byte {
	sum := sha1.Sum(data) //nolint:gosec // Trailer format requires SHA1.

	out := append(data, 0x00)
	return append(out, sum[:]...)
}

// splitTrailer reports whether tail is a trailer candidate (0x00 + 20 bytes).
func splitTrailer(tail []byte) ([]byte, bool) {
	if len(tail) != trailerSize || tail[0] != 0x00 {
		return nil, false
	}

	return tail[1:], true
}

// verifySHA1Trailer checks trailer hash against content.
func verifySHA1Trailer(content, hash []byte) error {
	sum := sha1.Sum(content) //nolint:gosec // Trailer format requires SHA1.
	if !bytes.Equal(sum[:], hash) {
		return fmt.Errorf("%w: stored %x, computed %x", ErrTrailerHashMismatch, hash, sum)
	}

	return nil
}

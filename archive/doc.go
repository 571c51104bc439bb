// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

/*
Package archive implements an in-memory store of named binary entries used
as the target of model and texture injection.

The whole archive is loaded once, entries are looked up by path or base name,
payloads are replaced in memory, and the archive is serialized once at the
end. Entries whose payload was never replaced are written back with their
original stored bytes, so an untouched archive round-trips byte for byte.

On-disk layout: a fixed 21-byte header record, NUL-terminated key/value header
pairs, the entry table (NUL-terminated path + five little-endian uint32
fields), the payload region, and a 0x00 + SHA1 trailer. Replaced payloads are
LZSS-compressed when their path matches the configured compression rules and
compression actually saves space.

	arc, err := archive.Open("Link.arc", archive.Options{})
	if err != nil {
	    return err
	}
	for _, e := range arc.Entries() {
	    if e.IsDir {
	        continue
	    }
	    fmt.Println(e.Name, len(e.Data))
	}
	if err := arc.SetData("cl.bdl", newModel); err != nil {
	    return err
	}
	if err := arc.WriteFile("out/Link.arc"); err != nil {
	    return err
	}
*/
package archive

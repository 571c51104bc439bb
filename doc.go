// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

/*
Package bdl provides section-level decode, encode, and splice operations for
J3D model containers (BDL/BMD). A container is a fixed 32-byte header followed
by tagged blocks; every block stores its own total length at offset 4.

The package does not interpret block payloads. It only keeps blocks in source
order, swaps whole blocks between containers, and keeps the container-wide
size field (header offset 8) consistent with the encoded length.

# Decoding and encoding

	c, err := bdl.DecodeFile("cl.bdl")
	if err != nil {
	    return err
	}
	for _, tag := range c.Tags() {
	    data, _ := c.Section(tag)
	    fmt.Println(tag, len(data))
	}
	raw := c.Encode() // byte-identical to the input for unmodified containers

Encode is a pure concatenation. Size fields are only rewritten by Splice and
ReplaceSection.

# Splicing

Carry skeleton blocks over from a clean reference model into a freshly
converted one:

	generated, err := bdl.DecodeFile("custom/cl/cl.bdl")
	if err != nil {
	    return err
	}
	donor, err := bdl.DecodeFile("clean/cl/cl.bdl")
	if err != nil {
	    return err
	}
	out, err := bdl.Splice(generated, donor, []string{bdl.TagINF1, bdl.TagJNT1})
	if err != nil {
	    return err
	}
	_ = out.Encode()

Splice never adds tags: every requested tag must exist in both containers.
The header size field of the result is recomputed even for an empty tag list.

# Limitations

Containers are addressed by tag, so a stream that repeats a tag is rejected
by Decode with ErrMalformedContainer.
*/
package bdl

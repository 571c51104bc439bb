package bdl

import (
	"encoding/binary"
	"testing"
)

// testBlock builds one tagged block with the given payload.
func testBlock(tag string, payload string) []byte {
	out := make([]byte, blockHeaderSize+len(payload))
	copy(out, tag)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(out)))
	copy(out[blockHeaderSize:], payload)
	return out
}

// testContainerBytes builds a container stream with a J3D header and correct size field.
func testContainerBytes(blocks ...[]byte) []byte {
	header := make([]byte, HeaderSize)
	copy(header, "J3D2bdl4")
	copy(header[0x10:], "SVR3")
	binary.BigEndian.PutUint32(header[12:16], uint32(len(blocks)))

	out := append([]byte(nil), header...)
	for _, b := range blocks {
		out = append(out, b...)
	}
	binary.BigEndian.PutUint32(out[8:12], uint32(len(out)))

	return out
}

// mustDecode decodes data or fails the test.
func mustDecode(t *testing.T, data []byte) *Container {
	t.Helper()

	c, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	return c
}

// assertSizeConsistent checks the header size field against block lengths and encoded length.
func assertSizeConsistent(t *testing.T, c *Container) {
	t.Helper()

	encoded := c.Encode()
	if int(c.StoredSize()) != c.Len() {
		t.Fatalf("StoredSize=%d, sum of blocks=%d", c.StoredSize(), c.Len())
	}
	if int(c.StoredSize()) != len(encoded) {
		t.Fatalf("StoredSize=%d, len(Encode())=%d", c.StoredSize(), len(encoded))
	}
	if got := binary.BigEndian.Uint32(encoded[8:12]); int(got) != len(encoded) {
		t.Fatalf("encoded size field=%d, len=%d", got, len(encoded))
	}
}

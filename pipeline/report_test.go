package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/bdl/archive"
)

func TestDiffArchives(t *testing.T) {
	t.Parallel()

	orig := archive.New(archive.Options{})
	require.NoError(t, orig.Add(`bdl\cl.bdl`, []byte("1234")))
	require.NoError(t, orig.Add(`bti\face.bti`, []byte("abcd")))
	require.NoError(t, orig.Add(`bti\same.bti`, []byte("same")))

	modified := archive.New(archive.Options{})
	require.NoError(t, modified.Add(`bdl\cl.bdl`, []byte("123456")))
	require.NoError(t, modified.Add(`bti\face.bti`, []byte("abce")))
	require.NoError(t, modified.Add(`bti\same.bti`, []byte("same")))
	require.NoError(t, modified.Add(`bti\extra.bti`, []byte("new")))

	changes := DiffArchives(orig, modified)
	assert.Equal(t, []Change{
		{Name: `bdl\cl.bdl`, OrigSize: 4, NewSize: 6},
		{Name: `bti\face.bti`, OrigSize: 4, NewSize: 4, ContentOnly: true},
	}, changes)
}

func TestPrintChanges(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	PrintChanges(&out, []Change{
		{Name: `bdl\cl.bdl`, OrigSize: 0x1F40, NewSize: 0x2000},
		{Name: `bti\face.bti`, OrigSize: 0x40, NewSize: 0x40, ContentOnly: true},
	})

	report := out.String()
	assert.Contains(t, report, "File cl.bdl, orig size 1F40, new size 2000")
	assert.Contains(t, report, "File face.bti, content changed, size 40")
}

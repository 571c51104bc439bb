package pipeline

import (
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/woozymasta/bdl"
	"github.com/woozymasta/bdl/archive"
	"github.com/woozymasta/bdl/bti"
)

// testBlock is one container block before encoding.
type testBlock struct {
	tag     string
	payload string
}

// buildModel encodes a container with a valid header and blocks in order.
func buildModel(blocks ...testBlock) []byte {
	out := make([]byte, bdl.HeaderSize)
	copy(out, "J3D2bdl4")
	binary.BigEndian.PutUint32(out[12:], uint32(len(blocks)))
	copy(out[0x10:], "SVR3")

	for _, b := range blocks {
		block := make([]byte, 8, 8+len(b.payload))
		copy(block, b.tag)
		binary.BigEndian.PutUint32(block[4:], uint32(8+len(b.payload)))
		out = append(out, append(block, b.payload...)...)
	}

	binary.BigEndian.PutUint32(out[8:], uint32(len(out)))
	return out
}

// tableBlock returns an encoded TEX1 table as a test block.
func tableBlock(t *testing.T, table *bti.Table) testBlock {
	t.Helper()

	section, err := table.Encode()
	require.NoError(t, err)

	return testBlock{tag: bdl.TagTEX1, payload: string(section[8:])}
}

// fakeConverter writes canned containers instead of running an executable.
type fakeConverter struct {
	models map[string][]byte
	err    error
	calls  []string
}

func (f *fakeConverter) Convert(_ context.Context, req ConvertRequest) error {
	name := strings.TrimSuffix(filepath.Base(req.Scene), ".dae")
	f.calls = append(f.calls, name)
	if f.err != nil {
		return f.err
	}

	return os.WriteFile(req.Output, f.models[name], 0o644)
}

// fixture is a reference folder, a replacement folder and a converter.
type fixture struct {
	linkDir   string
	customDir string
	donor     []byte
	generated []byte
	texture   []byte
	converter *fakeConverter
}

const weightedScene = `<skin>
<input semantic="WEIGHT" source="#skeleton_root_Body-skin-weights" offset="1"/>
<vcount>1 1 2</vcount>
<v>0 0 1 1 2 2 3 3</v>
</skin>`

// newFixture builds a reference archive with the cl and hands models and two
// textures, plus a replacement folder for cl.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		linkDir:   t.TempDir(),
		customDir: t.TempDir(),
		donor: buildModel(
			testBlock{tag: bdl.TagINF1, payload: "clean-hierarchy"},
			testBlock{tag: bdl.TagJNT1, payload: "clean-joints"},
			testBlock{tag: bdl.TagSHP1, payload: "clean-shapes"},
		),
		generated: buildModel(
			testBlock{tag: bdl.TagINF1, payload: "generated-hierarchy-longer"},
			testBlock{tag: bdl.TagJNT1, payload: "generated-joints"},
			testBlock{tag: bdl.TagSHP1, payload: "generated-shapes-with-more-data"},
		),
	}
	f.converter = &fakeConverter{models: map[string][]byte{"cl": f.generated}}

	hand := &bti.Texture{Header: bti.Header{Format: bti.FormatCMPR}}
	require.NoError(t, hand.ReplaceImage(solidImage(8, 8, color.NRGBA{R: 0xFF, A: 0xFF})))
	hands := buildModel(
		testBlock{tag: bdl.TagINF1, payload: "hands-hierarchy"},
		tableBlock(t, &bti.Table{Textures: []*bti.Texture{hand}, Names: []string{DefaultHandsTexture}}),
	)

	tex := &bti.Texture{Header: bti.Header{Format: bti.FormatRGB5A3, WrapS: bti.WrapClampToEdge}}
	require.NoError(t, tex.ReplaceImage(solidImage(8, 8, color.NRGBA{G: 0xFF, A: 0xFF})))
	var err error
	f.texture, err = tex.Encode()
	require.NoError(t, err)

	arc := archive.New(archive.Options{})
	require.NoError(t, arc.Add(`bdl\cl.bdl`, f.donor))
	require.NoError(t, arc.Add(`bdl\hands.bdl`, hands))
	require.NoError(t, arc.Add(`bti\linktexbci4.bti`, f.texture))
	require.NoError(t, arc.Add(`bti\untouched.bti`, f.texture))
	require.NoError(t, arc.WriteFile(filepath.Join(f.linkDir, DefaultArchiveName)))

	f.write(t, f.linkDir, "cl/cl.bdl", f.donor)
	f.write(t, f.linkDir, "hands/hands.bdl", hands)
	f.write(t, f.customDir, "cl/cl.dae", []byte(weightedScene))

	return f
}

// write creates dir/rel with data.
func (f *fixture) write(t *testing.T, dir, rel string, data []byte) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// writePNG encodes img to dir/rel.
func (f *fixture) writePNG(t *testing.T, rel string, img image.Image) {
	t.Helper()

	path := filepath.Join(f.customDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	out, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = out.Close() }()

	require.NoError(t, png.Encode(out, img))
}

// config returns a config for the fixture folders.
func (f *fixture) config() Config {
	return Config{LinkDir: f.linkDir, CustomDir: f.customDir}
}

// run executes the pipeline and returns its report output.
func (f *fixture) run(t *testing.T, cfg Config) (string, error) {
	t.Helper()

	var out strings.Builder
	p, err := New(cfg, Options{Converter: f.converter, Output: &out})
	require.NoError(t, err)

	err = p.Run(context.Background())
	return out.String(), err
}

// output opens the rebuilt archive.
func (f *fixture) output(t *testing.T) *archive.Archive {
	t.Helper()

	arc, err := archive.Open(filepath.Join(f.customDir, DefaultArchiveName), archive.Options{})
	require.NoError(t, err)

	return arc
}

// section returns one block of an encoded container.
func section(t *testing.T, model []byte, tag string) []byte {
	t.Helper()

	c, err := bdl.Decode(model)
	require.NoError(t, err)

	data, ok := c.Section(tag)
	require.True(t, ok, "missing %s", tag)

	return data
}

// solidImage returns a w x h image filled with c.
func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}

	return img
}

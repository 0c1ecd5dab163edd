package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

func writeModel(t *testing.T, path string, v m2.Version) {
	t.Helper()
	m := &m2.Model{
		Header: m2.Header{Version: v, Name: "test"},
		Chunks: map[m2.Tag]m2.Chunk{
			m2.TagBone: &m2.BoneChunk{Bones: []m2.Bone{
				{KeyBoneID: -1, Parent: -1},
			}},
			m2.TagSequences: &m2.SequenceChunk{Sequences: []m2.Sequence{
				{ID: 0, End: 1000},
			}},
			m2.TagVertices: &m2.VertexChunk{Vertices: []m2.Vertex{
				{BoneWeights: [4]uint8{255}, Normal: m2.C3Vector{Z: 1}},
			}},
			m2.TagTextures: &m2.TextureChunk{Textures: []m2.Texture{
				{Flags: 1, Filename: "textures\\test.blp"},
			}},
			m2.TagMaterials: &m2.MaterialChunk{Materials: []m2.Material{
				{BlendMode: 1},
			}},
		},
	}
	require.Empty(t, m.Validate())
	require.NoError(t, m.Save(path))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "a.m2"), m2.Classic)
	writeModel(t, filepath.Join(dir, "B.M2"), m2.Classic)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), nil, 0644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeModel(t, filepath.Join(sub, "c.m2"), m2.WrathOfTheLichKing)

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "good.m2"), m2.Classic)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.m2"), []byte("not a model"), 0644))

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	results := Run(Config{Op: OpValidate, Workers: 2, Logger: zap.NewNop()}, files)
	require.Len(t, results, 2)

	byName := map[string]Result{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}
	assert.True(t, byName["good.m2"].Success)
	assert.Zero(t, byName["good.m2"].Findings)
	assert.False(t, byName["broken.m2"].Success)
	assert.NotEmpty(t, byName["broken.m2"].Error)
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeModel(t, filepath.Join(dir, "wolf.m2"), m2.Classic)

	results := Run(Config{
		OutputDir: out,
		Op:        OpConvert,
		Target:    m2.WrathOfTheLichKing,
		Workers:   1,
	}, []string{filepath.Join(dir, "wolf.m2")})

	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)

	converted, err := m2.LoadModel(filepath.Join(out, "wolf.m2"))
	require.NoError(t, err)
	assert.Equal(t, m2.WrathOfTheLichKing, converted.Header.Version)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	results := []Result{
		{Path: "a.m2", Success: true},
		{Path: "b.m2", Success: false, Error: "boom"},
	}
	require.NoError(t, WriteReport(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, "boom", rep.Results[1].Error)
}

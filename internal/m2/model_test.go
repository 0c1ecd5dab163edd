package m2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModel builds a small but complete model that passes validation under
// the given version. Field values are chosen to be exactly representable in
// every on-disk encoding so round trips compare bit-for-bit.
func testModel(v Version) *Model {
	m := &Model{
		Header: Header{
			Version: v,
			Flags:   0x80,
			Name:    "Creature\\Wolf\\Wolf",
			Bounds: BoundingBox{
				Min:    C3Vector{X: -1, Y: -1, Z: 0},
				Max:    C3Vector{X: 1, Y: 1, Z: 2},
				Radius: 2.5,
			},
			Collision: BoundingBox{
				Min:    C3Vector{X: -0.5, Y: -0.5, Z: 0},
				Max:    C3Vector{X: 0.5, Y: 0.5, Z: 1.5},
				Radius: 1.25,
			},
		},
		Chunks: map[Tag]Chunk{},
	}

	bones := []Bone{
		{KeyBoneID: -1, Parent: -1, Pivot: C3Vector{Z: 1}},
		{KeyBoneID: 0, Flags: 0x200, Parent: 0, SubmeshID: 1, Pivot: C3Vector{Z: 1.5}},
	}
	if v >= Cataclysm {
		bones[0].NameCRC = 0xdeadbeef
		bones[1].NameCRC = 0x1234
	}
	m.Chunks[TagBone] = &BoneChunk{Bones: bones}

	seq := Sequence{ID: 0, Variation: 0, End: 1000, MoveSpeed: 2.5, Flags: 0x20}
	if v < WrathOfTheLichKing {
		seq.Start = 500
		seq.End = 1500
	}
	m.Chunks[TagSequences] = &SequenceChunk{Sequences: []Sequence{seq}}

	verts := []Vertex{
		{
			Position:    C3Vector{X: -1, Z: 0.5},
			BoneWeights: [4]uint8{255, 0, 0, 0},
			BoneIndices: [4]uint8{0, 0, 0, 0},
			Normal:      C3Vector{Z: 1},
			TexCoord:    [2]float32{0, 0},
		},
		{
			Position:    C3Vector{X: 1, Z: 0.5},
			BoneWeights: [4]uint8{128, 127, 0, 0},
			BoneIndices: [4]uint8{0, 1, 0, 0},
			Normal:      C3Vector{Z: 1},
			TexCoord:    [2]float32{1, 1},
		},
	}
	if v >= Cataclysm {
		verts[0].TexCoord2 = [2]float32{0.5, 0.5}
	}
	m.Chunks[TagVertices] = &VertexChunk{Vertices: verts}

	m.Chunks[TagTextures] = &TextureChunk{Textures: []Texture{
		{Type: 0, Flags: 1, Filename: "textures\\wolf.blp"},
	}}
	m.Chunks[TagMaterials] = &MaterialChunk{Materials: []Material{
		{Flags: 1, BlendMode: 2},
	}}

	m.Chunks[TagCameras] = &CameraChunk{Cameras: []Camera{
		{Type: 0, FOV: 0.75, FarClip: 100, NearClip: 0.25, Position: C3Vector{Y: -4, Z: 2}},
	}}

	m.Chunks[TagTranspAnim] = &TransparencyChunk{Tracks: []Track[float32]{
		{
			Interp:    InterpLinear,
			GlobalSeq: -1,
			Times:     []uint32{0, 500},
			Values:    []float32{0, 1},
		},
	}}

	if v >= Legion {
		m.Chunks[TagSkinFileIDs] = NewFileIDChunk(TagSkinFileIDs, []uint32{101, 102})
		m.Chunks[TagTextureFileIDs] = NewFileIDChunk(TagTextureFileIDs, []uint32{2001})
	}
	return m
}

func TestModelRoundTrip(t *testing.T) {
	for _, v := range []Version{Classic, WrathOfTheLichKing, Cataclysm, Legion} {
		t.Run(v.String(), func(t *testing.T) {
			m := testModel(v)
			require.Empty(t, m.Validate())

			parsed, err := ParseModel(m.Encode())
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		})
	}
}

func TestModelEncodeIsCanonicalOrder(t *testing.T) {
	m := testModel(Legion)
	data := m.Encode()
	parsed, err := ParseModel(data)
	require.NoError(t, err)

	// Re-encoding a parsed model is byte-identical: chunk order does not
	// depend on map iteration.
	assert.Equal(t, data, parsed.Encode())
}

func TestParseModelBadMagic(t *testing.T) {
	data := testModel(Classic).Encode()
	copy(data[:4], "XXXX")
	_, err := ParseModel(data)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestParseModelShortBuffer(t *testing.T) {
	data := testModel(Classic).Encode()
	for _, n := range []int{0, 3, 8, 40} {
		_, err := ParseModel(data[:n])
		require.ErrorIs(t, err, ErrTruncated, "len %d", n)
	}
}

func TestParseModelUnknownVersion(t *testing.T) {
	data := testModel(Classic).Encode()
	// Overwrite the header version with a value outside every known range.
	data[4], data[5], data[6], data[7] = 0x2c, 0x01, 0x00, 0x00 // 300
	_, err := ParseModel(data)
	require.ErrorIs(t, err, ErrUnknownVersion)
}

func TestParseModelDuplicateChunk(t *testing.T) {
	data := testModel(Classic).Encode()

	extra := &writer{}
	body := &writer{}
	encodeMaterials(body, &MaterialChunk{Materials: []Material{{Flags: 3}}}, Classic)
	extra.chunk(TagMaterials, body.buf)

	_, err := ParseModel(append(data, extra.buf...))
	require.ErrorIs(t, err, ErrDuplicateChunk)
}

func TestParseModelIllegalChunk(t *testing.T) {
	data := testModel(Classic).Encode()

	extra := &writer{}
	body := &writer{}
	encodeFileIDList(body, NewFileIDChunk(TagSkinFileIDs, []uint32{7}), Classic)
	extra.chunk(TagSkinFileIDs, body.buf)

	_, err := ParseModel(append(data, extra.buf...))
	require.ErrorIs(t, err, ErrIllegalChunk)
}

func TestParseModelTrailingChunkBytes(t *testing.T) {
	data := testModel(Classic).Encode()

	body := &writer{}
	body.u32(1) // one texture transform record
	body.u32(0)
	body.f32(0.5)
	body.u8(0xff) // one byte the codec will not consume
	extra := &writer{}
	extra.chunk(TagTextureXform, body.buf)

	_, err := ParseModel(append(data, extra.buf...))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestUnknownChunksRoundTrip(t *testing.T) {
	data := testModel(Classic).Encode()
	extra := &writer{}
	extra.chunk(MakeTag("ZZZZ"), []byte{1, 2, 3})
	extra.chunk(MakeTag("YYYY"), nil)
	extra.chunk(MakeTag("ZZZZ"), []byte{4}) // duplicate unknown tags are fine
	data = append(data, extra.buf...)

	m, err := ParseModel(data)
	require.NoError(t, err)
	require.Len(t, m.Unknown, 3)
	assert.Equal(t, MakeTag("ZZZZ"), m.Unknown[0].Raw)
	assert.Equal(t, []byte{1, 2, 3}, m.Unknown[0].Payload)
	assert.Equal(t, MakeTag("YYYY"), m.Unknown[1].Raw)
	assert.Equal(t, []byte{4}, m.Unknown[2].Payload)

	reparsed, err := ParseModel(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m.Unknown, reparsed.Unknown)
}

func TestModelAccessors(t *testing.T) {
	m := testModel(Classic)
	require.NotNil(t, m.Bones())
	require.NotNil(t, m.Sequences())
	require.NotNil(t, m.Vertices())
	require.NotNil(t, m.Textures())
	require.NotNil(t, m.Materials())
	assert.Nil(t, m.Particles())

	empty := &Model{Chunks: map[Tag]Chunk{}}
	assert.Nil(t, empty.Bones())
}

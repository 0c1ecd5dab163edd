package skin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

func testSkin() *Skin {
	return &Skin{
		BoneCountMax: 4,
		Indices:      []uint16{10, 11, 12, 13},
		Triangles:    []uint16{0, 1, 2, 1, 2, 3},
		Submeshes: []Submesh{
			{
				ID:             1,
				VertexStart:    0,
				VertexCount:    4,
				TriangleStart:  0,
				TriangleCount:  6,
				BoneCount:      2,
				BoneComboIndex: 0,
				BoneInfluences: 2,
				CenterBone:     1,
			},
		},
	}
}

func TestSkinRoundTripLegacy(t *testing.T) {
	src := testSkin()
	data := src.Encode(m2.Classic)

	s, err := Parse(data, Auto)
	require.NoError(t, err)
	assert.Equal(t, Legacy, s.Kind)
	assert.Equal(t, src.BoneCountMax, s.BoneCountMax)
	assert.Equal(t, src.Indices, s.Indices)
	assert.Equal(t, src.Triangles, s.Triangles)
	assert.Equal(t, src.Submeshes, s.Submeshes)
}

func TestSkinRoundTripModern(t *testing.T) {
	src := testSkin()
	src.Kind = Modern
	src.Submeshes[0].Level = 1
	src.Submeshes[0].Center = m2.C3Vector{X: 0.5, Y: -0.5, Z: 1}
	data := src.Encode(m2.Legion)

	require.Equal(t, skinMagic, string(data[:4]))

	s, err := Parse(data, Auto)
	require.NoError(t, err)
	assert.Equal(t, src, s)
}

func TestSkinModernToLegacyDropsExtras(t *testing.T) {
	src := testSkin()
	src.Kind = Modern
	src.Submeshes[0].Level = 2
	src.Submeshes[0].Center = m2.C3Vector{X: 1, Y: 2, Z: 3}

	// Legacy encoding has no room for level or center.
	s, err := Parse(src.Encode(m2.BurningCrusade), Auto)
	require.NoError(t, err)
	assert.Equal(t, Legacy, s.Kind)
	assert.Zero(t, s.Submeshes[0].Level)
	assert.Zero(t, s.Submeshes[0].Center)
	assert.Equal(t, src.Submeshes[0].ID, s.Submeshes[0].ID)
	assert.Equal(t, src.Submeshes[0].TriangleCount, s.Submeshes[0].TriangleCount)
}

func TestSkinEncodeVariantFollowsVersion(t *testing.T) {
	src := testSkin()
	assert.NotEqual(t, skinMagic, string(src.Encode(m2.BurningCrusade)[:4]))
	assert.Equal(t, skinMagic, string(src.Encode(m2.WrathOfTheLichKing)[:4]))
	assert.Equal(t, skinMagic, string(src.Encode(m2.Legion)[:4]))
}

func TestSkinForceLegacyIgnoresSniff(t *testing.T) {
	// A modern buffer parsed as legacy reads the magic bytes as counts and
	// trips the bounds checks.
	data := testSkin().Encode(m2.Legion)
	_, err := Parse(data, ForceLegacy)
	require.Error(t, err)
}

func TestSkinForceModernWithoutMagic(t *testing.T) {
	data := testSkin().Encode(m2.Classic)
	_, err := Parse(data, ForceModern)
	require.ErrorIs(t, err, m2.ErrInvalidMagic)
}

func TestSkinTruncation(t *testing.T) {
	data := testSkin().Encode(m2.Classic)

	_, err := Parse(data[:10], Auto)
	require.ErrorIs(t, err, m2.ErrTruncated)

	// Valid header, clipped body: the index array runs past the end.
	_, err = Parse(data[:legacyHeaderSize+2], Auto)
	require.ErrorIs(t, err, m2.ErrTruncated)
}

func TestSkinValidate(t *testing.T) {
	s := testSkin()
	assert.Empty(t, s.Validate())

	s.Submeshes[0].VertexCount = 40
	s.Triangles[5] = 99
	findings := s.Validate()
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, m2.OutOfBoundsIndex, f.Kind)
	}
}

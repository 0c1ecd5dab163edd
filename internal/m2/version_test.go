package m2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderVersionRoundTrip(t *testing.T) {
	for v := Classic; v <= Legion; v++ {
		got, err := VersionFromHeader(v.HeaderVersion())
		require.NoError(t, err, v.String())
		if v == MistsOfPandaria {
			// 272 is shared on disk; decoding resolves toward Cataclysm.
			assert.Equal(t, Cataclysm, got)
			continue
		}
		assert.Equal(t, v, got, v.String())
	}
}

func TestVersionFromHeaderRanges(t *testing.T) {
	cases := []struct {
		raw  uint32
		want Version
	}{
		{256, Classic},
		{257, Classic},
		{260, BurningCrusade},
		{264, WrathOfTheLichKing},
		{271, WrathOfTheLichKing},
		{272, Cataclysm},
		{273, WarlordsOfDraenor},
		{274, Legion},
		{280, Legion},
	}
	for _, tc := range cases {
		got, err := VersionFromHeader(tc.raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "header %d", tc.raw)
	}

	for _, raw := range []uint32{0, 100, 255, 281, 999} {
		_, err := VersionFromHeader(raw)
		assert.ErrorIs(t, err, ErrUnknownVersion, "header %d", raw)
	}
}

func TestVersionFromExpansion(t *testing.T) {
	cases := map[string]Version{
		"classic":         Classic,
		"Vanilla":         Classic,
		"tbc":             BurningCrusade,
		"Burning Crusade": BurningCrusade,
		"WotLK":           WrathOfTheLichKing,
		"3.3.5a":          WrathOfTheLichKing,
		"wrath":           WrathOfTheLichKing,
		"cata":            Cataclysm,
		"mop":             MistsOfPandaria,
		"WoD":             WarlordsOfDraenor,
		"legion":          Legion,
		"7.3.5":           Legion,
	}
	for name, want := range cases {
		got, err := VersionFromExpansion(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := VersionFromExpansion("pandaland")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestVersionRules(t *testing.T) {
	// Structural chunks exist under every version.
	for v := Classic; v <= Legion; v++ {
		assert.True(t, v.Allows(TagBone), v.String())
		assert.True(t, v.Requires(TagBone), v.String())
		assert.True(t, v.Requires(TagMaterials), v.String())
	}

	// File-id tables are a Legion addition.
	assert.False(t, WarlordsOfDraenor.Allows(TagSkinFileIDs))
	assert.True(t, Legion.Allows(TagSkinFileIDs))
	assert.True(t, Legion.Requires(TagSkinFileIDs))
	assert.True(t, Legion.Requires(TagTextureFileIDs))
	assert.False(t, Legion.Requires(TagBoneFileIDs))

	// Physics arrived with Cataclysm and never became mandatory.
	assert.False(t, WrathOfTheLichKing.Allows(TagPhysics))
	assert.True(t, Cataclysm.Allows(TagPhysics))
	assert.False(t, Cataclysm.Requires(TagPhysics))

	// Unknown tags are always allowed.
	assert.True(t, Classic.Allows(MakeTag("ZZZZ")))
	assert.False(t, Legion.Requires(MakeTag("ZZZZ")))
}

func TestVersionOrdering(t *testing.T) {
	require.True(t, Classic < BurningCrusade)
	require.True(t, WrathOfTheLichKing < Cataclysm)
	require.True(t, WarlordsOfDraenor < Legion)
}

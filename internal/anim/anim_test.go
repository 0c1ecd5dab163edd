package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

func testSections() []Section {
	return []Section{
		{
			Header: SectionHeader{ID: 0, Start: 0, End: 1000},
			BoneTracks: []BoneTrack{
				{
					Bone: 0,
					Translation: m2.Track[m2.C3Vector]{
						Interp:    m2.InterpLinear,
						GlobalSeq: -1,
						Times:     []uint32{0, 500, 1000},
						Values: []m2.C3Vector{
							{}, {X: 1}, {X: 2},
						},
					},
					Rotation: m2.Track[m2.Quat]{
						Interp:    m2.InterpLinear,
						GlobalSeq: -1,
						Times:     []uint32{0, 1000},
						Values: []m2.Quat{
							{W: 1}, {X: 0.5, W: 0.5},
						},
					},
					Scaling: m2.Track[m2.C3Vector]{
						Interp:    m2.InterpNone,
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.C3Vector{},
					},
				},
				{
					Bone: 3,
					Translation: m2.Track[m2.C3Vector]{
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.C3Vector{},
					},
					Rotation: m2.Track[m2.Quat]{
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.Quat{},
					},
					Scaling: m2.Track[m2.C3Vector]{
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.C3Vector{},
					},
				},
			},
		},
		{
			Header: SectionHeader{ID: 1, Start: 0, End: 250},
			BoneTracks: []BoneTrack{
				{
					Bone: 1,
					Translation: m2.Track[m2.C3Vector]{
						GlobalSeq: -1,
						Times:     []uint32{0},
						Values:    []m2.C3Vector{{Z: 4}},
					},
					Rotation: m2.Track[m2.Quat]{
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.Quat{},
					},
					Scaling: m2.Track[m2.C3Vector]{
						GlobalSeq: -1,
						Times:     []uint32{},
						Values:    []m2.C3Vector{},
					},
				},
			},
		},
	}
}

func modernFile() *File {
	f := &File{Format: Modern, Sections: testSections()}
	f.Modern = f.modernInfo()
	return f
}

func TestModernRoundTrip(t *testing.T) {
	src := modernFile()
	data := src.Encode()
	require.Equal(t, animMagic, string(data[:4]))

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Modern, f.Format)
	assert.False(t, f.IsLegacyFormat())
	assert.Nil(t, f.Hints)
	assert.Equal(t, 2, f.AnimationCount())
	assert.Equal(t, src.Sections, f.Sections)

	require.NotNil(t, f.Modern)
	assert.Equal(t, uint32(formatVersion), f.Modern.Header.Version)
	assert.Equal(t, uint32(2), f.Modern.Header.IDCount)
	require.Len(t, f.Modern.Entries, 2)
	assert.Equal(t, uint32(0), f.Modern.Entries[0].ID)
	assert.Equal(t, uint32(1), f.Modern.Entries[1].ID)
}

func TestModernEntryTableBounds(t *testing.T) {
	data := modernFile().Encode()

	// Entry table pushed past the end of the buffer.
	bad := append([]byte(nil), data...)
	bad[12], bad[13], bad[14], bad[15] = 0xff, 0xff, 0x00, 0x00
	_, err := Parse(bad)
	require.ErrorIs(t, err, m2.ErrTruncated)

	// Clipped body: the last section no longer fits its entry.
	_, err = Parse(data[:len(data)-4])
	require.ErrorIs(t, err, m2.ErrTruncated)
}

func TestLegacyRoundTrip(t *testing.T) {
	src := &File{Format: Legacy, Sections: testSections()}
	data := src.Encode()

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Legacy, f.Format)
	assert.True(t, f.IsLegacyFormat())
	assert.Equal(t, src.Sections, f.Sections)

	require.NotNil(t, f.Legacy)
	assert.Equal(t, uint32(len(data)), f.Legacy.FileSize)
	assert.Equal(t, uint32(2), f.Legacy.AnimationCount)

	require.NotNil(t, f.Hints)
	assert.True(t, f.Hints.AppearsValid)
	assert.Equal(t, 2, f.Hints.EstimatedBlocks)
	assert.True(t, f.Hints.HasTimestamps)
}

func TestLegacyGarbageNeverFails(t *testing.T) {
	garbage := make([]byte, 20)
	for i := range garbage {
		garbage[i] = 0xff // implausible bone count in the first block
	}
	for _, data := range [][]byte{
		nil,
		{1, 2, 3},
		garbage,
	} {
		f, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, Legacy, f.Format)
		require.NotNil(t, f.Hints)
		assert.False(t, f.Hints.AppearsValid)
	}
}

func TestLegacyTrailingBytesLowerConfidence(t *testing.T) {
	data := (&File{Format: Legacy, Sections: testSections()}).Encode()
	data = append(data, 0xde, 0xad)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.False(t, f.Hints.AppearsValid, "unconsumed bytes mean the block estimate is unreliable")
	assert.Equal(t, 2, f.Hints.EstimatedBlocks)
}

func TestConvertFormats(t *testing.T) {
	assert.Equal(t, Legacy, RequiredFormat(m2.Classic))
	assert.Equal(t, Legacy, RequiredFormat(m2.WrathOfTheLichKing))
	assert.Equal(t, Modern, RequiredFormat(m2.Cataclysm))
	assert.Equal(t, Modern, RequiredFormat(m2.Legion))
}

func TestConvertModernToLegacy(t *testing.T) {
	src := modernFile()
	out := src.Convert(m2.WrathOfTheLichKing)

	assert.Equal(t, Legacy, out.Format)
	require.NotNil(t, out.Legacy)
	assert.Equal(t, uint32(2), out.Legacy.AnimationCount)
	assert.Equal(t, src.Sections, out.Sections)

	// The section list came from a self-described layout, so the hints
	// report exact structure rather than a zero-valued guess.
	require.NotNil(t, out.Hints)
	assert.True(t, out.Hints.AppearsValid)
	assert.Equal(t, 2, out.Hints.EstimatedBlocks)
	assert.True(t, out.Hints.HasTimestamps)
	assert.Equal(t, uint32(len(out.Encode())), out.Legacy.FileSize)

	// The source is untouched.
	assert.Equal(t, Modern, src.Format)
	assert.NotNil(t, src.Modern)
}

func TestConvertNormalizesHeaderVersion(t *testing.T) {
	src := &File{Format: Modern, Sections: testSections(), Modern: &ModernInfo{}}
	out := src.Convert(m2.Legion)

	require.NotNil(t, out.Modern)
	assert.Equal(t, uint32(formatVersion), out.Modern.Header.Version)

	// The metadata agrees with the bytes Encode emits.
	parsed, err := Parse(out.Encode())
	require.NoError(t, err)
	assert.Equal(t, out.Modern.Header.Version, parsed.Modern.Header.Version)
}

func TestConvertLegacyToModern(t *testing.T) {
	data := (&File{Format: Legacy, Sections: testSections()}).Encode()
	src, err := Parse(data)
	require.NoError(t, err)

	out := src.Convert(m2.Legion)
	assert.Equal(t, Modern, out.Format)
	require.NotNil(t, out.Modern)
	assert.Equal(t, uint32(2), out.Modern.Header.IDCount)

	// Detector confidence rides along with the transcode.
	require.NotNil(t, out.Hints)
	assert.True(t, out.Hints.AppearsValid)

	// The synthesized entry table matches the actual encoding.
	parsed, err := Parse(out.Encode())
	require.NoError(t, err)
	assert.Equal(t, out.Sections, parsed.Sections)
	assert.Equal(t, out.Modern.Entries, parsed.Modern.Entries)
}

func TestConvertRoundTripKeepsKeyframes(t *testing.T) {
	src := modernFile()
	back := src.Convert(m2.Classic).Convert(m2.Legion)

	assert.Equal(t, Modern, back.Format)
	assert.Equal(t, src.Sections, back.Sections)
	assert.Equal(t, src.Encode(), back.Encode())
}

func TestConvertSameFormatIsEquivalent(t *testing.T) {
	src := modernFile()
	out := src.Convert(m2.MistsOfPandaria)
	assert.Equal(t, Modern, out.Format)
	assert.Equal(t, src.Encode(), out.Encode())
}

func TestMemoryUsage(t *testing.T) {
	f := modernFile()
	u := f.MemoryUsage()

	assert.Equal(t, 2, u.Sections)
	assert.Equal(t, 3, u.BoneAnimations)
	assert.Equal(t, 4, u.TranslationKeyframes)
	assert.Equal(t, 2, u.RotationKeyframes)
	assert.Equal(t, 0, u.ScalingKeyframes)
	assert.Equal(t, 6, u.TotalKeyframes())
	assert.Equal(t, 4*16+2*20, u.ApproximateBytes)
}

package m2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderLatchesTruncation(t *testing.T) {
	r := newReader([]byte{1, 0, 2, 0})
	assert.Equal(t, uint16(1), r.u16())
	assert.Equal(t, uint16(2), r.u16())
	require.NoError(t, r.err)

	// First overrun latches; every later read stays zero.
	assert.Equal(t, uint32(0), r.u32())
	require.ErrorIs(t, r.err, ErrTruncated)
	assert.Equal(t, uint16(0), r.u16())
	assert.Equal(t, float32(0), r.f32())
	require.ErrorIs(t, r.err, ErrTruncated)
}

func TestReaderCountGuard(t *testing.T) {
	// Count claims 1000 records of at least 8 bytes but only 8 bytes follow.
	w := &writer{}
	w.u32(1000)
	w.u32(0)
	w.u32(0)

	r := newReader(w.buf)
	n := r.count(8)
	assert.Equal(t, 0, n)
	require.ErrorIs(t, r.err, ErrTruncated)
}

func TestReaderFixedStr(t *testing.T) {
	w := &writer{}
	w.fixedStr("wolf", 8)
	require.Len(t, w.buf, 8)

	r := newReader(w.buf)
	assert.Equal(t, "wolf", r.fixedStr(8))
	require.NoError(t, r.err)

	// No null terminator: the whole field is the string.
	r = newReader([]byte("abcd"))
	assert.Equal(t, "abcd", r.fixedStr(4))
}

func TestChunkReaderIterates(t *testing.T) {
	w := &writer{}
	w.chunk(MakeTag("AAAA"), []byte{1, 2, 3})
	w.chunk(MakeTag("BBBB"), nil)
	w.chunk(MakeTag("CCCC"), []byte{9})

	cr := NewChunkReader(w.buf)
	var tags []string
	for {
		rec, ok, err := cr.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		tags = append(tags, rec.Tag.String())
		assert.Equal(t, int(rec.Size), len(rec.Payload))
	}
	assert.Equal(t, []string{"AAAA", "BBBB", "CCCC"}, tags)
}

func TestChunkReaderDeclaredSizePastEnd(t *testing.T) {
	// Header claims a 100-byte payload; only 2 bytes follow.
	w := &writer{}
	w.fixedStr("AAAA", 4)
	w.u32(100)
	w.u16(0)

	cr := NewChunkReader(w.buf)
	_, _, err := cr.Next()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestChunkReaderPartialHeader(t *testing.T) {
	cr := NewChunkReader([]byte("AAAA\x05"))
	_, _, err := cr.Next()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "BONE", TagBone.String())
	assert.Equal(t, "0x01020304", Tag{1, 2, 3, 4}.String())
}

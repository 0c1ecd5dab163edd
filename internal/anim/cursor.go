package anim

import (
	"encoding/binary"
	"math"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

// cursor is a non-latching little-endian reader: reads past the end report
// ok=false instead of an error, because the legacy detector probes buffers
// that are expected to stop parsing cleanly at arbitrary points.
type cursor struct {
	data []byte
	off  int
	bad  bool
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) take(n int) []byte {
	if c.bad || c.off+n > len(c.data) {
		c.bad = true
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

func (c *cursor) vec3() m2.C3Vector {
	return m2.C3Vector{X: c.f32(), Y: c.f32(), Z: c.f32()}
}

func (c *cursor) quat() m2.Quat {
	return m2.Quat{X: c.f32(), Y: c.f32(), Z: c.f32(), W: c.f32()}
}

// trackCount validates a keyframe count against the bytes left for it.
func (c *cursor) trackCount(elemSize int) int {
	n := int(c.u32())
	if c.bad || n > c.remaining()/(4+elemSize) {
		c.bad = true
		return 0
	}
	return n
}

func vec3Track(c *cursor) m2.Track[m2.C3Vector] {
	t := m2.Track[m2.C3Vector]{Interp: c.u16(), GlobalSeq: int16(c.u16())}
	n := c.trackCount(12)
	t.Times = make([]uint32, n)
	for i := range t.Times {
		t.Times[i] = c.u32()
	}
	t.Values = make([]m2.C3Vector, n)
	for i := range t.Values {
		t.Values[i] = c.vec3()
	}
	return t
}

func quatTrack(c *cursor) m2.Track[m2.Quat] {
	t := m2.Track[m2.Quat]{Interp: c.u16(), GlobalSeq: int16(c.u16())}
	n := c.trackCount(16)
	t.Times = make([]uint32, n)
	for i := range t.Times {
		t.Times[i] = c.u32()
	}
	t.Values = make([]m2.Quat, n)
	for i := range t.Values {
		t.Values[i] = c.quat()
	}
	return t
}

// section parses one section block at the cursor. ok is false when the
// block does not fit the remaining bytes; the cursor is then unusable.
func (c *cursor) section() (Section, bool) {
	var sec Section
	sec.Header.ID = c.u32()
	sec.Header.Start = c.u32()
	sec.Header.End = c.u32()
	// A bone with three empty tracks still needs 28 bytes.
	const minBoneTrackSize = 28
	boneCount := int(c.u32())
	if c.bad || boneCount > maxPlausibleBones || boneCount > c.remaining()/minBoneTrackSize {
		c.bad = true
		return sec, false
	}
	sec.BoneTracks = make([]BoneTrack, 0, boneCount)
	for i := 0; i < boneCount; i++ {
		var bt BoneTrack
		bt.Bone = c.u16()
		c.u16() // pad
		bt.Translation = vec3Track(c)
		bt.Rotation = quatTrack(c)
		bt.Scaling = vec3Track(c)
		if c.bad {
			return sec, false
		}
		sec.BoneTracks = append(sec.BoneTracks, bt)
	}
	return sec, !c.bad
}

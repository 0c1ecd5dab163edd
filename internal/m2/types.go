package m2

import "fmt"

// Tag is a 4-byte chunk identifier. Tags are compared as raw bytes and are
// not required to be printable.
type Tag [4]byte

func MakeTag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}

func (t Tag) String() string {
	for _, b := range t {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("0x%02x%02x%02x%02x", t[0], t[1], t[2], t[3])
		}
	}
	return string(t[:])
}

// C3Vector is a 12-byte float triple, the base spatial type of the format.
type C3Vector struct {
	X, Y, Z float32
}

// Quat is a 16-byte float quaternion in XYZW disk order.
type Quat struct {
	X, Y, Z, W float32
}

// BoundingBox is 28 bytes on disk: min, max, then sphere radius.
type BoundingBox struct {
	Min    C3Vector
	Max    C3Vector
	Radius float32
}

// Track holds one keyframe track: parallel timestamp/value arrays plus
// interpolation metadata. Timestamps are milliseconds.
type Track[T any] struct {
	Interp    uint16
	GlobalSeq int16 // -1 when the track follows its own sequence timing
	Times     []uint32
	Values    []T
}

// Interpolation types shared by every track codec.
const (
	InterpNone    uint16 = 0
	InterpLinear  uint16 = 1
	InterpHermite uint16 = 2
	InterpBezier  uint16 = 3
)

// fixed16.16 helpers for fields that were fixed-point before Cataclysm.

func fixed1616ToFloat(v uint32) float32 {
	return float32(v) / 65536.0
}

func floatToFixed1616(v float32) uint32 {
	return uint32(v * 65536.0)
}

// fixed16 (0..1 mapped onto 0..0x7fff) helpers for alpha values.

func fixed16ToFloat(v int16) float32 {
	return float32(v) / 32767.0
}

func floatToFixed16(v float32) int16 {
	return int16(v*32767.0 + 0.5)
}

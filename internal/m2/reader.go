package m2

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader is a little-endian cursor over a byte buffer. The first overrun
// latches an ErrTruncated into err and every later read returns zero, so
// record-parsing loops stay flat and check r.err once at the end.
type reader struct {
	data []byte
	off  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) ensure(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("m2: %w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, len(r.data)-r.off)
		return false
	}
	return true
}

func (r *reader) bytes(n int) []byte {
	if !r.ensure(n) {
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	if !r.ensure(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *reader) u16() uint16 {
	if !r.ensure(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) i16() int16 {
	return int16(r.u16())
}

func (r *reader) u32() uint32 {
	if !r.ensure(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) i32() int32 {
	return int32(r.u32())
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

// fixedStr reads an n-byte field and cuts it at the first null.
func (r *reader) fixedStr(n int) string {
	b := r.bytes(n)
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func (r *reader) vec3() C3Vector {
	return C3Vector{X: r.f32(), Y: r.f32(), Z: r.f32()}
}

func (r *reader) quat() Quat {
	return Quat{X: r.f32(), Y: r.f32(), Z: r.f32(), W: r.f32()}
}

func (r *reader) bounds() BoundingBox {
	return BoundingBox{Min: r.vec3(), Max: r.vec3(), Radius: r.f32()}
}

// count reads a u32 record count and bounds it against the smallest record
// size so a corrupt count fails as Truncated instead of a huge allocation.
func (r *reader) count(minRecordSize int) int {
	n := int(r.u32())
	if r.err != nil {
		return 0
	}
	if minRecordSize > 0 && n > r.remaining()/minRecordSize {
		r.err = fmt.Errorf("m2: %w: count %d exceeds remaining payload at offset %d",
			ErrTruncated, n, r.off)
		return 0
	}
	return n
}

// ChunkRecord is one raw record produced by the chunk reader: tag, declared
// size, and the payload slice into the source buffer.
type ChunkRecord struct {
	Tag     Tag
	Size    uint32
	Payload []byte
}

// ChunkReader splits a buffer into ChunkRecords in buffer order. One instance
// per buffer; the sequence is finite and consumed once.
type ChunkReader struct {
	r *reader
}

func NewChunkReader(data []byte) *ChunkReader {
	return &ChunkReader{r: newReader(data)}
}

// Next returns the next record, or (zero, false, nil) at end of buffer.
// A partial header or a declared size past the end of the buffer fails
// with ErrTruncated.
func (cr *ChunkReader) Next() (ChunkRecord, bool, error) {
	if cr.r.remaining() == 0 {
		return ChunkRecord{}, false, nil
	}
	var tag Tag
	copy(tag[:], cr.r.bytes(4))
	size := cr.r.u32()
	payload := cr.r.bytes(int(size))
	if cr.r.err != nil {
		return ChunkRecord{}, false, cr.r.err
	}
	return ChunkRecord{Tag: tag, Size: size, Payload: payload}, true, nil
}

// writer is the encode-side mirror of reader.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *writer) i16(v int16) {
	w.u16(uint16(v))
}

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) i32(v int32) {
	w.u32(uint32(v))
}

func (w *writer) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *writer) fixedStr(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	w.buf = append(w.buf, b...)
}

func (w *writer) vec3(v C3Vector) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

func (w *writer) quat(q Quat) {
	w.f32(q.X)
	w.f32(q.Y)
	w.f32(q.Z)
	w.f32(q.W)
}

func (w *writer) bounds(b BoundingBox) {
	w.vec3(b.Min)
	w.vec3(b.Max)
	w.f32(b.Radius)
}

// chunk appends a tag + size header and the payload bytes.
func (w *writer) chunk(tag Tag, payload []byte) {
	w.buf = append(w.buf, tag[:]...)
	w.u32(uint32(len(payload)))
	w.buf = append(w.buf, payload...)
}

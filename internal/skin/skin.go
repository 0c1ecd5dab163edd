// Package skin parses the companion mesh files that carry submesh and index
// data for a model. Two historical header layouts exist: a legacy fixed
// header with inline offsets and no tagging, and a modern layout introduced
// alongside WotLK that opens with a "SKIN" tag. Both normalize into the same
// Skin value so nothing downstream branches on the header shape.
package skin

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

// HeaderKind is the on-disk header shape a skin was parsed from.
type HeaderKind int

const (
	Legacy HeaderKind = iota
	Modern
)

func (k HeaderKind) String() string {
	if k == Modern {
		return "modern"
	}
	return "legacy"
}

// Mode selects the parse variant. Auto sniffs the leading bytes: a "SKIN"
// tag selects Modern, anything else parses as Legacy.
type Mode int

const (
	Auto Mode = iota
	ForceLegacy
	ForceModern
)

const skinMagic = "SKIN"

// Header layouts. Offsets are from the start of the file.
//
//	Modern:  magic "SKIN", then the same seven u32 fields as Legacy.
//	Legacy:  indexCount u32, indexOfs u32, triCount u32, triOfs u32,
//	         submeshCount u32, submeshOfs u32, boneCountMax u32
//
// Submesh records:
//
//	Modern (32 bytes): id u16, level u16, vertexStart u16, vertexCount u16,
//	  triangleStart u16, triangleCount u16, boneCount u16, boneComboIndex u16,
//	  boneInfluences u16, centerBone u16, center C3Vector
//	Legacy (20 bytes): same u16 fields except level, plus u16 padding;
//	  no center vector.
const (
	legacyHeaderSize = 28
	modernHeaderSize = 32

	legacySubmeshSize = 20
	modernSubmeshSize = 32
)

// Submesh is the normalized submesh record. Legacy files leave Level zero
// and Center unset.
type Submesh struct {
	ID             uint16
	Level          uint16
	VertexStart    uint16
	VertexCount    uint16
	TriangleStart  uint16
	TriangleCount  uint16
	BoneCount      uint16
	BoneComboIndex uint16
	BoneInfluences uint16
	CenterBone     uint16
	Center         m2.C3Vector
}

// Skin is the unified in-memory representation regardless of source header.
// Indices map skin-local vertex slots to model vertices; Triangles index
// into Indices, three per face.
type Skin struct {
	Kind         HeaderKind
	BoneCountMax uint32
	Indices      []uint16
	Triangles    []uint16
	Submeshes    []Submesh
}

// Load reads and parses a skin file with Auto detection.
func Load(path string) (*Skin, error) {
	return LoadMode(path, Auto)
}

// LoadMode reads and parses a skin file with an explicit variant.
func LoadMode(path string, mode Mode) (*Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, mode)
	if err != nil {
		return nil, fmt.Errorf("skin: parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a skin from a byte buffer.
func Parse(data []byte, mode Mode) (*Skin, error) {
	kind := Legacy
	switch mode {
	case ForceModern:
		kind = Modern
	case Auto:
		if len(data) >= 4 && string(data[:4]) == skinMagic {
			kind = Modern
		}
	}

	base := 0
	headerSize := legacyHeaderSize
	if kind == Modern {
		if len(data) < 4 || string(data[:4]) != skinMagic {
			return nil, fmt.Errorf("skin: %w: want %q", m2.ErrInvalidMagic, skinMagic)
		}
		base = 4
		headerSize = modernHeaderSize
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("skin: %w: header needs %d bytes, have %d",
			m2.ErrTruncated, headerSize, len(data))
	}

	fields := make([]uint32, 7)
	for i := range fields {
		fields[i] = binary.LittleEndian.Uint32(data[base+i*4:])
	}
	indexCount, indexOfs := fields[0], fields[1]
	triCount, triOfs := fields[2], fields[3]
	submeshCount, submeshOfs := fields[4], fields[5]

	s := &Skin{Kind: kind, BoneCountMax: fields[6]}

	var err error
	if s.Indices, err = readU16Array(data, indexOfs, indexCount, "indices"); err != nil {
		return nil, err
	}
	if s.Triangles, err = readU16Array(data, triOfs, triCount, "triangles"); err != nil {
		return nil, err
	}

	recSize := legacySubmeshSize
	if kind == Modern {
		recSize = modernSubmeshSize
	}
	if err := checkRange(data, submeshOfs, submeshCount, recSize, "submeshes"); err != nil {
		return nil, err
	}
	s.Submeshes = make([]Submesh, submeshCount)
	for i := range s.Submeshes {
		rec := data[int(submeshOfs)+i*recSize:]
		s.Submeshes[i] = parseSubmesh(rec, kind)
	}

	return s, nil
}

func parseSubmesh(rec []byte, kind HeaderKind) Submesh {
	u16 := func(off int) uint16 { return binary.LittleEndian.Uint16(rec[off:]) }
	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))
	}
	if kind == Legacy {
		return Submesh{
			ID:             u16(0),
			VertexStart:    u16(2),
			VertexCount:    u16(4),
			TriangleStart:  u16(6),
			TriangleCount:  u16(8),
			BoneCount:      u16(10),
			BoneComboIndex: u16(12),
			BoneInfluences: u16(14),
			CenterBone:     u16(16),
		}
	}
	return Submesh{
		ID:             u16(0),
		Level:          u16(2),
		VertexStart:    u16(4),
		VertexCount:    u16(6),
		TriangleStart:  u16(8),
		TriangleCount:  u16(10),
		BoneCount:      u16(12),
		BoneComboIndex: u16(14),
		BoneInfluences: u16(16),
		CenterBone:     u16(18),
		Center:         m2.C3Vector{X: f32(20), Y: f32(24), Z: f32(28)},
	}
}

// Encode serializes the skin using the variant the target version implies:
// legacy fixed header before WotLK, modern tagged header from WotLK on.
func (s *Skin) Encode(target m2.Version) []byte {
	kind := Legacy
	if target >= m2.WrathOfTheLichKing {
		kind = Modern
	}

	headerSize := legacyHeaderSize
	recSize := legacySubmeshSize
	if kind == Modern {
		headerSize = modernHeaderSize
		recSize = modernSubmeshSize
	}
	indexOfs := headerSize
	triOfs := indexOfs + 2*len(s.Indices)
	submeshOfs := triOfs + 2*len(s.Triangles)

	buf := make([]byte, 0, submeshOfs+recSize*len(s.Submeshes))
	if kind == Modern {
		buf = append(buf, skinMagic...)
	}
	for _, v := range []uint32{
		uint32(len(s.Indices)), uint32(indexOfs),
		uint32(len(s.Triangles)), uint32(triOfs),
		uint32(len(s.Submeshes)), uint32(submeshOfs),
		s.BoneCountMax,
	} {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	for _, v := range s.Indices {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	for _, v := range s.Triangles {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	for i := range s.Submeshes {
		buf = appendSubmesh(buf, &s.Submeshes[i], kind)
	}
	return buf
}

func appendSubmesh(buf []byte, sm *Submesh, kind HeaderKind) []byte {
	u16 := binary.LittleEndian.AppendUint16
	u32 := binary.LittleEndian.AppendUint32
	if kind == Legacy {
		buf = u16(buf, sm.ID)
		buf = u16(buf, sm.VertexStart)
		buf = u16(buf, sm.VertexCount)
		buf = u16(buf, sm.TriangleStart)
		buf = u16(buf, sm.TriangleCount)
		buf = u16(buf, sm.BoneCount)
		buf = u16(buf, sm.BoneComboIndex)
		buf = u16(buf, sm.BoneInfluences)
		buf = u16(buf, sm.CenterBone)
		buf = u16(buf, 0)
		return buf
	}
	buf = u16(buf, sm.ID)
	buf = u16(buf, sm.Level)
	buf = u16(buf, sm.VertexStart)
	buf = u16(buf, sm.VertexCount)
	buf = u16(buf, sm.TriangleStart)
	buf = u16(buf, sm.TriangleCount)
	buf = u16(buf, sm.BoneCount)
	buf = u16(buf, sm.BoneComboIndex)
	buf = u16(buf, sm.BoneInfluences)
	buf = u16(buf, sm.CenterBone)
	buf = u32(buf, math.Float32bits(sm.Center.X))
	buf = u32(buf, math.Float32bits(sm.Center.Y))
	buf = u32(buf, math.Float32bits(sm.Center.Z))
	return buf
}

// Save writes the skin encoded for the target version.
func (s *Skin) Save(path string, target m2.Version) error {
	return os.WriteFile(path, s.Encode(target), 0644)
}

// Validate checks that every submesh range and triangle index is in bounds.
// Findings accumulate; nothing mutates.
func (s *Skin) Validate() []m2.Finding {
	var findings []m2.Finding
	tag := m2.MakeTag(skinMagic)
	for i, sm := range s.Submeshes {
		if int(sm.VertexStart)+int(sm.VertexCount) > len(s.Indices) {
			findings = append(findings, m2.Finding{
				Kind: m2.OutOfBoundsIndex, Chunk: tag, Index: i,
				Detail: fmt.Sprintf("vertex range %d+%d > %d indices",
					sm.VertexStart, sm.VertexCount, len(s.Indices)),
			})
		}
		if int(sm.TriangleStart)+int(sm.TriangleCount) > len(s.Triangles) {
			findings = append(findings, m2.Finding{
				Kind: m2.OutOfBoundsIndex, Chunk: tag, Index: i,
				Detail: fmt.Sprintf("triangle range %d+%d > %d triangles",
					sm.TriangleStart, sm.TriangleCount, len(s.Triangles)),
			})
		}
	}
	for i, t := range s.Triangles {
		if int(t) >= len(s.Indices) {
			findings = append(findings, m2.Finding{
				Kind: m2.OutOfBoundsIndex, Chunk: tag, Index: i,
				Detail: fmt.Sprintf("triangle index %d >= %d indices", t, len(s.Indices)),
			})
		}
	}
	return findings
}

func readU16Array(data []byte, ofs, count uint32, what string) ([]uint16, error) {
	if err := checkRange(data, ofs, count, 2, what); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[int(ofs)+i*2:])
	}
	return out, nil
}

func checkRange(data []byte, ofs, count uint32, recSize int, what string) error {
	end := int64(ofs) + int64(count)*int64(recSize)
	if int64(ofs) > int64(len(data)) || end > int64(len(data)) {
		return fmt.Errorf("skin: %w: %s at %d (%d x %d bytes) past end %d",
			m2.ErrTruncated, what, ofs, count, recSize, len(data))
	}
	return nil
}

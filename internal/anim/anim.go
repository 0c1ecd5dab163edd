// Package anim handles the standalone keyframe-animation files that
// accompany a model. The same semantic data has two incompatible on-disk
// encodings: a legacy header-less run of raw blocks, and a modern layout
// with an explicit "AFM2" header and an entry table locating each section
// for random access. Legacy files carry no self-description, so their
// structure is recovered heuristically and the detector's confidence is
// part of the parse result, not an error.
package anim

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

// Format tags the on-disk encoding.
type Format int

const (
	Legacy Format = iota
	Modern
)

func (f Format) String() string {
	if f == Modern {
		return "modern"
	}
	return "legacy"
}

const (
	animMagic = "AFM2"

	// formatVersion is the modern header's own format version, unrelated
	// to the model version table.
	formatVersion = 1

	modernHeaderSize = 16
	entrySize        = 12
	sectionHeaderMin = 16

	// Sequence timestamps are ms; anything under an hour looks like a
	// real animation timeline to the legacy detector.
	plausibleTimestampMax = 3_600_000

	maxPlausibleBones = 4096
)

// StructureHints is the legacy detector's confidence signal. It is data,
// not an error: low-confidence legacy parses are expected and common.
type StructureHints struct {
	AppearsValid    bool
	EstimatedBlocks int
	HasTimestamps   bool
}

// LegacyInfo is the metadata a legacy parse can recover.
type LegacyInfo struct {
	FileSize       uint32
	AnimationCount uint32
	Hints          StructureHints
}

// ModernHeader mirrors the explicit on-disk header.
type ModernHeader struct {
	Version     uint32
	IDCount     uint32
	EntryOffset uint32
}

// Entry locates one independently parseable section.
type Entry struct {
	ID     uint32
	Offset uint32
	Size   uint32
}

// ModernInfo is the metadata of a modern file.
type ModernInfo struct {
	Header  ModernHeader
	Entries []Entry
}

// SectionHeader carries the per-section id and time range (ms).
type SectionHeader struct {
	ID    uint32
	Start uint32
	End   uint32
}

// BoneTrack holds one bone's keyframe tracks within a section.
type BoneTrack struct {
	Bone        uint16
	Translation m2.Track[m2.C3Vector]
	Rotation    m2.Track[m2.Quat]
	Scaling     m2.Track[m2.C3Vector]
}

// Section is one animation section; the semantic payload is identical in
// both formats.
type Section struct {
	Header     SectionHeader
	BoneTracks []BoneTrack
}

// File is a decoded animation file. Exactly one of Legacy/Modern is set,
// matching Format. Hints is non-nil whenever the data passed through the
// legacy detector, and conversions carry it forward so callers can spot
// low-confidence transcodes.
type File struct {
	Format   Format
	Legacy   *LegacyInfo
	Modern   *ModernInfo
	Hints    *StructureHints
	Sections []Section
}

// Load reads and decodes an animation file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("anim: parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes an animation buffer: modern detection first (the header
// magic), legacy heuristic parse as the fallback. Only a structurally
// broken modern file fails; legacy parses always produce a best-effort
// result with the confidence recorded in Hints.
func Parse(data []byte) (*File, error) {
	if len(data) >= modernHeaderSize && string(data[:4]) == animMagic {
		return parseModern(data)
	}
	return parseLegacy(data), nil
}

func parseModern(data []byte) (*File, error) {
	hdr := ModernHeader{
		Version:     binary.LittleEndian.Uint32(data[4:]),
		IDCount:     binary.LittleEndian.Uint32(data[8:]),
		EntryOffset: binary.LittleEndian.Uint32(data[12:]),
	}
	end := int64(hdr.EntryOffset) + int64(hdr.IDCount)*entrySize
	if int64(hdr.EntryOffset) < modernHeaderSize || end > int64(len(data)) {
		return nil, fmt.Errorf("anim: %w: entry table %d x %d at %d past end %d",
			m2.ErrTruncated, hdr.IDCount, entrySize, hdr.EntryOffset, len(data))
	}

	f := &File{
		Format: Modern,
		Modern: &ModernInfo{Header: hdr, Entries: make([]Entry, hdr.IDCount)},
	}
	for i := range f.Modern.Entries {
		base := int(hdr.EntryOffset) + i*entrySize
		e := Entry{
			ID:     binary.LittleEndian.Uint32(data[base:]),
			Offset: binary.LittleEndian.Uint32(data[base+4:]),
			Size:   binary.LittleEndian.Uint32(data[base+8:]),
		}
		f.Modern.Entries[i] = e
		if int64(e.Offset)+int64(e.Size) > int64(len(data)) {
			return nil, fmt.Errorf("anim: %w: entry %d spans %d+%d past end %d",
				m2.ErrTruncated, i, e.Offset, e.Size, len(data))
		}
		r := &cursor{data: data[e.Offset : e.Offset+e.Size]}
		sec, ok := r.section()
		if !ok || r.remaining() != 0 {
			return nil, fmt.Errorf("anim: %w: entry %d (id %d) is not a clean section",
				m2.ErrTruncated, i, e.ID)
		}
		f.Sections = append(f.Sections, sec)
	}
	return f, nil
}

// parseLegacy walks the buffer as back-to-back raw section blocks and keeps
// whatever parses cleanly. The recovered block boundaries are estimates;
// AppearsValid is only set when every byte of the file was consumed by
// plausible blocks.
func parseLegacy(data []byte) *File {
	f := &File{
		Format: Legacy,
		Legacy: &LegacyInfo{FileSize: uint32(len(data))},
	}
	r := &cursor{data: data}
	clean := len(data) > 0
	for r.remaining() >= sectionHeaderMin {
		sec, ok := r.section()
		if !ok || !plausibleSection(sec) {
			clean = false
			break
		}
		f.Sections = append(f.Sections, sec)
	}
	if r.remaining() != 0 {
		clean = false
	}

	hints := StructureHints{
		AppearsValid:    clean && len(f.Sections) > 0,
		EstimatedBlocks: len(f.Sections),
	}
	for _, sec := range f.Sections {
		if sec.Header.End > sec.Header.Start && sec.Header.End < plausibleTimestampMax {
			hints.HasTimestamps = true
		}
	}
	f.Legacy.AnimationCount = uint32(len(f.Sections))
	f.Legacy.Hints = hints
	f.Hints = &f.Legacy.Hints
	return f
}

func plausibleSection(sec Section) bool {
	if sec.Header.End < sec.Header.Start {
		return false
	}
	return len(sec.BoneTracks) <= maxPlausibleBones
}

// AnimationCount returns the number of decoded sections.
func (f *File) AnimationCount() int {
	return len(f.Sections)
}

// IsLegacyFormat reports whether the file uses the legacy encoding.
func (f *File) IsLegacyFormat() bool {
	return f.Format == Legacy
}

// Save writes the file in its current format.
func (f *File) Save(path string) error {
	return os.WriteFile(path, f.Encode(), 0644)
}

// Encode serializes the file. Modern output recomputes the entry table from
// the actual section encodings, so stale offsets in the header never leak
// to disk. Legacy output is the raw concatenation of section blocks.
func (f *File) Encode() []byte {
	bodies := make([][]byte, len(f.Sections))
	for i := range f.Sections {
		bodies[i] = encodeSection(&f.Sections[i])
	}

	if f.Format == Legacy {
		var buf []byte
		for _, b := range bodies {
			buf = append(buf, b...)
		}
		return buf
	}

	version := uint32(formatVersion)
	if f.Modern != nil && f.Modern.Header.Version != 0 {
		version = f.Modern.Header.Version
	}
	buf := append([]byte(nil), animMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(f.Sections)))
	buf = binary.LittleEndian.AppendUint32(buf, modernHeaderSize)

	offset := modernHeaderSize + entrySize*len(f.Sections)
	for i, b := range bodies {
		buf = binary.LittleEndian.AppendUint32(buf, f.Sections[i].Header.ID)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(offset))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
		offset += len(b)
	}
	for _, b := range bodies {
		buf = append(buf, b...)
	}
	return buf
}

// Section block layout, shared by both formats:
//
//	id        u32
//	start     u32
//	end       u32
//	boneCount u32
//	bones     boneCount x:
//	  bone u16, pad u16
//	  translation track: interp u16, globalSeq i16, count u32,
//	                     count x u32 time, count x C3Vector
//	  rotation track:    same shape with Quat values
//	  scaling track:     same shape with C3Vector values

func encodeSection(sec *Section) []byte {
	var buf []byte
	u16 := func(v uint16) { buf = binary.LittleEndian.AppendUint16(buf, v) }
	u32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	f32 := func(v float32) { u32(math.Float32bits(v)) }
	vec3 := func(v m2.C3Vector) { f32(v.X); f32(v.Y); f32(v.Z) }

	u32(sec.Header.ID)
	u32(sec.Header.Start)
	u32(sec.Header.End)
	u32(uint32(len(sec.BoneTracks)))
	for i := range sec.BoneTracks {
		bt := &sec.BoneTracks[i]
		u16(bt.Bone)
		u16(0)

		u16(bt.Translation.Interp)
		u16(uint16(bt.Translation.GlobalSeq))
		u32(uint32(len(bt.Translation.Times)))
		for _, t := range bt.Translation.Times {
			u32(t)
		}
		for _, v := range bt.Translation.Values {
			vec3(v)
		}

		u16(bt.Rotation.Interp)
		u16(uint16(bt.Rotation.GlobalSeq))
		u32(uint32(len(bt.Rotation.Times)))
		for _, t := range bt.Rotation.Times {
			u32(t)
		}
		for _, q := range bt.Rotation.Values {
			f32(q.X)
			f32(q.Y)
			f32(q.Z)
			f32(q.W)
		}

		u16(bt.Scaling.Interp)
		u16(uint16(bt.Scaling.GlobalSeq))
		u32(uint32(len(bt.Scaling.Times)))
		for _, t := range bt.Scaling.Times {
			u32(t)
		}
		for _, v := range bt.Scaling.Values {
			vec3(v)
		}
	}
	return buf
}

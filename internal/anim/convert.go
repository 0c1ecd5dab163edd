package anim

import "github.com/pruzko/warcraft-rs/internal/m2"

// RequiredFormat maps a model version to the animation encoding that
// version's client expects. WotLK and everything before it shipped raw
// legacy blocks; Cataclysm introduced the tagged layout.
func RequiredFormat(v m2.Version) Format {
	if v <= m2.WrathOfTheLichKing {
		return Legacy
	}
	return Modern
}

// Convert returns a file in the format the target version requires. It
// never fails: when the source already matches, the result is an equivalent
// value in the same format; otherwise the sections are transcoded.
//
// Legacy -> Modern synthesizes the explicit header and entry table from the
// detected block structure, which makes the estimated boundaries
// authoritative. Modern -> Legacy flattens the sections back to raw blocks,
// losing only the addressing metadata; the keyframe data itself moves
// unchanged either way. The legacy detector's hints ride along so callers
// can tell a low-confidence transcode from a clean one; a source that never
// passed the detector was self-described, so its structure is known exactly
// and the hints say so.
func (f *File) Convert(target m2.Version) *File {
	required := RequiredFormat(target)

	out := &File{
		Format:   required,
		Hints:    f.Hints,
		Sections: f.Sections,
	}

	switch required {
	case Legacy:
		info := &LegacyInfo{AnimationCount: uint32(len(f.Sections))}
		if f.Legacy != nil {
			*info = *f.Legacy
		}
		if f.Hints != nil {
			info.Hints = *f.Hints
		} else {
			info.Hints = f.exactHints()
		}
		if info.FileSize == 0 {
			info.FileSize = f.legacySize()
		}
		out.Legacy = info
		out.Hints = &out.Legacy.Hints
	case Modern:
		out.Modern = f.modernInfo()
	}
	return out
}

// exactHints describes a section list that came from a self-described
// layout: block boundaries are facts, not estimates.
func (f *File) exactHints() StructureHints {
	hints := StructureHints{
		AppearsValid:    len(f.Sections) > 0,
		EstimatedBlocks: len(f.Sections),
	}
	for _, sec := range f.Sections {
		if sec.Header.End > sec.Header.Start && sec.Header.End < plausibleTimestampMax {
			hints.HasTimestamps = true
		}
	}
	return hints
}

// legacySize is the byte size of the raw block concatenation.
func (f *File) legacySize() uint32 {
	var size int
	for i := range f.Sections {
		size += len(encodeSection(&f.Sections[i]))
	}
	return uint32(size)
}

// modernInfo produces a metadata block whose entry table matches what
// Encode will emit.
func (f *File) modernInfo() *ModernInfo {
	version := uint32(formatVersion)
	if f.Modern != nil && f.Modern.Header.Version != 0 {
		version = f.Modern.Header.Version
	}
	info := &ModernInfo{
		Header: ModernHeader{
			Version:     version,
			IDCount:     uint32(len(f.Sections)),
			EntryOffset: modernHeaderSize,
		},
		Entries: make([]Entry, len(f.Sections)),
	}
	offset := uint32(modernHeaderSize + entrySize*len(f.Sections))
	for i := range f.Sections {
		size := uint32(len(encodeSection(&f.Sections[i])))
		info.Entries[i] = Entry{
			ID:     f.Sections[i].Header.ID,
			Offset: offset,
			Size:   size,
		}
		offset += size
	}
	return info
}

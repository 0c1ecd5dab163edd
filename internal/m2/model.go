package m2

import (
	"fmt"
	"os"
)

// File layout:
//
//	magic     "MD20"
//	version   u32 (see VersionFromHeader)
//	flags     u32
//	name      64-byte null-padded string
//	bounds    BoundingBox (28 bytes)
//	collision BoundingBox (28 bytes)
//	chunks    tag[4] + size u32 + payload, until end of buffer
//
// The fixed header is identical across all versions; only the chunk set and
// the chunk payload layouts vary.

const modelMagic = "MD20"

// Header holds the fixed-layout fields shared by every version.
type Header struct {
	Version   Version
	Flags     uint32
	Name      string
	Bounds    BoundingBox
	Collision BoundingBox
}

// Model is a fully decoded model: the fixed header, at most one decoded
// chunk per known tag, and unrecognized chunks preserved as raw payloads in
// first-seen order. Every decoded field is exported; nothing is gated behind
// accessors.
type Model struct {
	Header  Header
	Chunks  map[Tag]Chunk
	Unknown []RawChunk
}

// LoadModel reads and decodes a model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("m2: parse %s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes a model from a byte buffer. Any structural problem
// aborts the parse; no partial model is returned.
func ParseModel(data []byte) (*Model, error) {
	r := newReader(data)

	if string(r.bytes(4)) != modelMagic {
		if r.err != nil {
			return nil, r.err
		}
		return nil, fmt.Errorf("m2: %w: want %q", ErrInvalidMagic, modelMagic)
	}
	rawVersion := r.u32()
	if r.err != nil {
		return nil, r.err
	}
	version, err := VersionFromHeader(rawVersion)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Header: Header{Version: version},
		Chunks: make(map[Tag]Chunk),
	}
	m.Header.Flags = r.u32()
	m.Header.Name = r.fixedStr(64)
	m.Header.Bounds = r.bounds()
	m.Header.Collision = r.bounds()
	if r.err != nil {
		return nil, r.err
	}

	cr := NewChunkReader(data[r.off:])
	for {
		rec, ok, err := cr.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, known := codecs[rec.Tag]; !known {
			// Unknown tags round-trip opaquely; duplicates allowed.
			payload := make([]byte, len(rec.Payload))
			copy(payload, rec.Payload)
			m.Unknown = append(m.Unknown, RawChunk{Raw: rec.Tag, Payload: payload})
			continue
		}
		if !version.Allows(rec.Tag) {
			return nil, fmt.Errorf("m2: %w: %s under %s", ErrIllegalChunk, rec.Tag, version)
		}
		if _, dup := m.Chunks[rec.Tag]; dup {
			return nil, fmt.Errorf("m2: %w: %s", ErrDuplicateChunk, rec.Tag)
		}
		decoded, err := decodeChunk(rec, version)
		if err != nil {
			return nil, err
		}
		m.Chunks[rec.Tag] = decoded
	}

	return m, nil
}

// Encode serializes the model at its current version. Known chunks are
// written in the canonical version-mandated order regardless of input order;
// unknown chunks follow in first-seen order.
func (m *Model) Encode() []byte {
	w := &writer{}
	w.fixedStr(modelMagic, 4)
	w.u32(m.Header.Version.HeaderVersion())
	w.u32(m.Header.Flags)
	w.fixedStr(m.Header.Name, 64)
	w.bounds(m.Header.Bounds)
	w.bounds(m.Header.Collision)

	for _, tag := range chunkOrder {
		if c, ok := m.Chunks[tag]; ok {
			encodeChunk(w, c, m.Header.Version)
		}
	}
	for i := range m.Unknown {
		encodeChunk(w, &m.Unknown[i], m.Header.Version)
	}
	return w.buf
}

// Save writes the encoded model to path.
func (m *Model) Save(path string) error {
	return os.WriteFile(path, m.Encode(), 0644)
}

// Typed chunk accessors. Each returns nil when the chunk is absent.

func (m *Model) Bones() *BoneChunk {
	c, _ := m.Chunks[TagBone].(*BoneChunk)
	return c
}

func (m *Model) Sequences() *SequenceChunk {
	c, _ := m.Chunks[TagSequences].(*SequenceChunk)
	return c
}

func (m *Model) Vertices() *VertexChunk {
	c, _ := m.Chunks[TagVertices].(*VertexChunk)
	return c
}

func (m *Model) Textures() *TextureChunk {
	c, _ := m.Chunks[TagTextures].(*TextureChunk)
	return c
}

func (m *Model) Materials() *MaterialChunk {
	c, _ := m.Chunks[TagMaterials].(*MaterialChunk)
	return c
}

func (m *Model) Particles() *ParticleChunk {
	c, _ := m.Chunks[TagParticles].(*ParticleChunk)
	return c
}

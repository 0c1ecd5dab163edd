package m2

// File-reference tables (Legion+). These replace inline filenames with file
// data ids resolved by the client's archive layer.
//
// SFID/BFID/TXID: count u32, then count x u32 file id.
// AFID: count u32, then count x { animID u16, subAnimID u16, fileID u32 }.
// SKID/PFID: a single u32 file id.
// TXAC: count u32, then count x { flags0 u8, flags1 u8 } per material.
// LDV1: { lodCount u16, unit u16, maxDistance f32, flags u32 }.
//
// SFID and TXID are required under Legion rules; both synthesize empty when
// upgrading a model that predates them.

// FileIDChunk covers the plain u32-list tables (SFID, BFID, TXID).
type FileIDChunk struct {
	tag Tag
	IDs []uint32
}

// NewFileIDChunk builds a plain file-id table for one of the list tags.
func NewFileIDChunk(tag Tag, ids []uint32) *FileIDChunk {
	return &FileIDChunk{tag: tag, IDs: ids}
}

func (c *FileIDChunk) ChunkTag() Tag { return c.tag }

type AnimFileID struct {
	AnimID    uint16
	SubAnimID uint16
	FileID    uint32
}

type AnimFileIDChunk struct {
	Entries []AnimFileID
}

func (c *AnimFileIDChunk) ChunkTag() Tag { return TagAnimFileIDs }

// SingleFileIDChunk covers the one-value tables (SKID, PFID).
type SingleFileIDChunk struct {
	tag Tag
	ID  uint32
}

func NewSingleFileIDChunk(tag Tag, id uint32) *SingleFileIDChunk {
	return &SingleFileIDChunk{tag: tag, ID: id}
}

func (c *SingleFileIDChunk) ChunkTag() Tag { return c.tag }

type TextureCombiner struct {
	Flags0 uint8
	Flags1 uint8
}

type TextureCombinerChunk struct {
	Combiners []TextureCombiner
}

func (c *TextureCombinerChunk) ChunkTag() Tag { return TagTextureCombiner }

type LodDataChunk struct {
	LodCount    uint16
	Unit        uint16
	MaxDistance float32
	Flags       uint32
}

func (c *LodDataChunk) ChunkTag() Tag { return TagLodData }

func init() {
	for _, tag := range []Tag{TagSkinFileIDs, TagBoneFileIDs, TagTextureFileIDs} {
		c := codec{
			introduced: Legion,
			decode:     decodeFileIDList(tag),
			encode:     encodeFileIDList,
			synthesize: synthesizeFileIDList(tag),
		}
		if tag == TagSkinFileIDs || tag == TagTextureFileIDs {
			c.required = legionOnly
		}
		register(tag, c)
	}
	register(TagAnimFileIDs, codec{
		introduced: Legion,
		decode:     decodeAnimFileIDs,
		encode:     encodeAnimFileIDs,
	})
	for _, tag := range []Tag{TagSkeletonFileID, TagPhysicsFileID} {
		register(tag, codec{
			introduced: Legion,
			decode:     decodeSingleFileID(tag),
			encode:     encodeSingleFileID,
		})
	}
	register(TagTextureCombiner, codec{
		introduced: Legion,
		decode:     decodeTextureCombiners,
		encode:     encodeTextureCombiners,
	})
	register(TagLodData, codec{
		introduced: Legion,
		decode:     decodeLodData,
		encode:     encodeLodData,
	})
}

func decodeFileIDList(tag Tag) func(*reader, Version) (Chunk, error) {
	return func(r *reader, v Version) (Chunk, error) {
		n := r.count(4)
		c := &FileIDChunk{tag: tag, IDs: make([]uint32, n)}
		for i := range c.IDs {
			c.IDs[i] = r.u32()
		}
		return c, nil
	}
}

func encodeFileIDList(w *writer, c Chunk, v Version) {
	ids := c.(*FileIDChunk).IDs
	w.u32(uint32(len(ids)))
	for _, id := range ids {
		w.u32(id)
	}
}

func synthesizeFileIDList(tag Tag) func(Version) Chunk {
	return func(Version) Chunk {
		return &FileIDChunk{tag: tag}
	}
}

func decodeAnimFileIDs(r *reader, v Version) (Chunk, error) {
	n := r.count(8)
	c := &AnimFileIDChunk{Entries: make([]AnimFileID, n)}
	for i := range c.Entries {
		e := &c.Entries[i]
		e.AnimID = r.u16()
		e.SubAnimID = r.u16()
		e.FileID = r.u32()
	}
	return c, nil
}

func encodeAnimFileIDs(w *writer, c Chunk, v Version) {
	entries := c.(*AnimFileIDChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		e := &entries[i]
		w.u16(e.AnimID)
		w.u16(e.SubAnimID)
		w.u32(e.FileID)
	}
}

func decodeSingleFileID(tag Tag) func(*reader, Version) (Chunk, error) {
	return func(r *reader, v Version) (Chunk, error) {
		return &SingleFileIDChunk{tag: tag, ID: r.u32()}, nil
	}
}

func encodeSingleFileID(w *writer, c Chunk, v Version) {
	w.u32(c.(*SingleFileIDChunk).ID)
}

func decodeTextureCombiners(r *reader, v Version) (Chunk, error) {
	n := r.count(2)
	c := &TextureCombinerChunk{Combiners: make([]TextureCombiner, n)}
	for i := range c.Combiners {
		c.Combiners[i].Flags0 = r.u8()
		c.Combiners[i].Flags1 = r.u8()
	}
	return c, nil
}

func encodeTextureCombiners(w *writer, c Chunk, v Version) {
	combiners := c.(*TextureCombinerChunk).Combiners
	w.u32(uint32(len(combiners)))
	for i := range combiners {
		w.u8(combiners[i].Flags0)
		w.u8(combiners[i].Flags1)
	}
}

func decodeLodData(r *reader, v Version) (Chunk, error) {
	return &LodDataChunk{
		LodCount:    r.u16(),
		Unit:        r.u16(),
		MaxDistance: r.f32(),
		Flags:       r.u32(),
	}, nil
}

func encodeLodData(w *writer, c Chunk, v Version) {
	lod := c.(*LodDataChunk)
	w.u16(lod.LodCount)
	w.u16(lod.Unit)
	w.f32(lod.MaxDistance)
	w.u32(lod.Flags)
}

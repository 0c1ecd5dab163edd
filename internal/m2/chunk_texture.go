package m2

// TEXX layout:
//
//	count   u32
//	records count x:
//	  type     u32   (0 = hardcoded filename, >0 = replaced at runtime)
//	  flags    u32
//	  filename 64-byte null-padded string
//
// Record size 72, all versions. Under Legion rules the filename may be empty
// when a TXID table supplies file data ids instead; validation cross-checks
// that one of the two is present.
//
// MATL layout:
//
//	count   u32
//	records count x { flags u16, blendMode u16 }

type Texture struct {
	Type     uint32
	Flags    uint32
	Filename string
}

type TextureChunk struct {
	Textures []Texture
}

func (c *TextureChunk) ChunkTag() Tag { return TagTextures }

type Material struct {
	Flags     uint16
	BlendMode uint16
}

type MaterialChunk struct {
	Materials []Material
}

func (c *MaterialChunk) ChunkTag() Tag { return TagMaterials }

func init() {
	register(TagTextures, codec{
		introduced: Classic,
		required:   always,
		integrity:  true,
		decode:     decodeTextures,
		encode:     encodeTextures,
	})
	register(TagMaterials, codec{
		introduced: Classic,
		required:   always,
		integrity:  true,
		decode:     decodeMaterials,
		encode:     encodeMaterials,
	})
}

func decodeTextures(r *reader, v Version) (Chunk, error) {
	n := r.count(72)
	c := &TextureChunk{Textures: make([]Texture, n)}
	for i := range c.Textures {
		t := &c.Textures[i]
		t.Type = r.u32()
		t.Flags = r.u32()
		t.Filename = r.fixedStr(64)
	}
	return c, nil
}

func encodeTextures(w *writer, c Chunk, v Version) {
	texs := c.(*TextureChunk).Textures
	w.u32(uint32(len(texs)))
	for i := range texs {
		t := &texs[i]
		w.u32(t.Type)
		w.u32(t.Flags)
		w.fixedStr(t.Filename, 64)
	}
}

func decodeMaterials(r *reader, v Version) (Chunk, error) {
	n := r.count(4)
	c := &MaterialChunk{Materials: make([]Material, n)}
	for i := range c.Materials {
		c.Materials[i].Flags = r.u16()
		c.Materials[i].BlendMode = r.u16()
	}
	return c, nil
}

func encodeMaterials(w *writer, c Chunk, v Version) {
	mats := c.(*MaterialChunk).Materials
	w.u32(uint32(len(mats)))
	for i := range mats {
		w.u16(mats[i].Flags)
		w.u16(mats[i].BlendMode)
	}
}

package m2

// Animated-value chunks. COLA and TRSP alpha tracks are fixed16 before
// Cataclysm and f32 after; the transform narrows explicitly (see
// narrowAlphaTrack). Everything else is version-independent.
//
// COLA layout: count u32, then count x { color Track<C3Vector>, alpha AlphaTrack }.
// TRSP layout: count u32, then count x AlphaTrack.
// TXAN layout: count u32, then count x { translation Track<C3Vector>,
//              rotation Track<Quat>, scaling Track<C3Vector> }.
// TXTF layout: count u32, then count x { type u32, param f32 }.

type ColorAnimation struct {
	Color Track[C3Vector]
	Alpha Track[float32]
}

type ColorAnimationChunk struct {
	Entries []ColorAnimation
}

func (c *ColorAnimationChunk) ChunkTag() Tag { return TagColorAnim }

type TransparencyChunk struct {
	Tracks []Track[float32]
}

func (c *TransparencyChunk) ChunkTag() Tag { return TagTranspAnim }

type TextureAnimation struct {
	Translation Track[C3Vector]
	Rotation    Track[Quat]
	Scaling     Track[C3Vector]
}

type TextureAnimationChunk struct {
	Entries []TextureAnimation
}

func (c *TextureAnimationChunk) ChunkTag() Tag { return TagTextureAnim }

type TextureTransform struct {
	Type  uint32
	Param float32
}

type TextureTransformChunk struct {
	Transforms []TextureTransform
}

func (c *TextureTransformChunk) ChunkTag() Tag { return TagTextureXform }

func init() {
	register(TagColorAnim, codec{
		introduced: Classic,
		decode:     decodeColorAnim,
		encode:     encodeColorAnim,
		transform:  transformColorAnim,
	})
	register(TagTranspAnim, codec{
		introduced: Classic,
		decode:     decodeTranspAnim,
		encode:     encodeTranspAnim,
		transform:  transformTranspAnim,
	})
	register(TagTextureAnim, codec{
		introduced: Classic,
		decode:     decodeTextureAnim,
		encode:     encodeTextureAnim,
	})
	register(TagTextureXform, codec{
		introduced: Classic,
		decode:     decodeTextureXform,
		encode:     encodeTextureXform,
	})
}

// Empty tracks still occupy interp+globalSeq+count = 8 bytes.
const minTrackSize = 8

func decodeColorAnim(r *reader, v Version) (Chunk, error) {
	n := r.count(2 * minTrackSize)
	c := &ColorAnimationChunk{Entries: make([]ColorAnimation, n)}
	for i := range c.Entries {
		c.Entries[i].Color = decodeVec3Track(r)
		c.Entries[i].Alpha = decodeAlphaTrack(r, v)
	}
	return c, nil
}

func encodeColorAnim(w *writer, c Chunk, v Version) {
	entries := c.(*ColorAnimationChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		encodeVec3Track(w, entries[i].Color)
		encodeAlphaTrack(w, entries[i].Alpha, v)
	}
}

func transformColorAnim(c Chunk, from, to Version) (Chunk, error) {
	if to >= Cataclysm {
		return c, nil
	}
	src := c.(*ColorAnimationChunk)
	out := &ColorAnimationChunk{Entries: make([]ColorAnimation, len(src.Entries))}
	copy(out.Entries, src.Entries)
	for i := range out.Entries {
		narrowed, err := narrowAlphaTrack(out.Entries[i].Alpha, TagColorAnim, i)
		if err != nil {
			return c, err
		}
		out.Entries[i].Alpha = narrowed
	}
	return out, nil
}

func decodeTranspAnim(r *reader, v Version) (Chunk, error) {
	n := r.count(minTrackSize)
	c := &TransparencyChunk{Tracks: make([]Track[float32], n)}
	for i := range c.Tracks {
		c.Tracks[i] = decodeAlphaTrack(r, v)
	}
	return c, nil
}

func encodeTranspAnim(w *writer, c Chunk, v Version) {
	tracks := c.(*TransparencyChunk).Tracks
	w.u32(uint32(len(tracks)))
	for i := range tracks {
		encodeAlphaTrack(w, tracks[i], v)
	}
}

func transformTranspAnim(c Chunk, from, to Version) (Chunk, error) {
	if to >= Cataclysm {
		return c, nil
	}
	src := c.(*TransparencyChunk)
	out := &TransparencyChunk{Tracks: make([]Track[float32], len(src.Tracks))}
	copy(out.Tracks, src.Tracks)
	for i := range out.Tracks {
		narrowed, err := narrowAlphaTrack(out.Tracks[i], TagTranspAnim, i)
		if err != nil {
			return c, err
		}
		out.Tracks[i] = narrowed
	}
	return out, nil
}

func decodeTextureAnim(r *reader, v Version) (Chunk, error) {
	n := r.count(3 * minTrackSize)
	c := &TextureAnimationChunk{Entries: make([]TextureAnimation, n)}
	for i := range c.Entries {
		c.Entries[i].Translation = decodeVec3Track(r)
		c.Entries[i].Rotation = decodeQuatTrack(r)
		c.Entries[i].Scaling = decodeVec3Track(r)
	}
	return c, nil
}

func encodeTextureAnim(w *writer, c Chunk, v Version) {
	entries := c.(*TextureAnimationChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		encodeVec3Track(w, entries[i].Translation)
		encodeQuatTrack(w, entries[i].Rotation)
		encodeVec3Track(w, entries[i].Scaling)
	}
}

func decodeTextureXform(r *reader, v Version) (Chunk, error) {
	n := r.count(8)
	c := &TextureTransformChunk{Transforms: make([]TextureTransform, n)}
	for i := range c.Transforms {
		c.Transforms[i].Type = r.u32()
		c.Transforms[i].Param = r.f32()
	}
	return c, nil
}

func encodeTextureXform(w *writer, c Chunk, v Version) {
	xforms := c.(*TextureTransformChunk).Transforms
	w.u32(uint32(len(xforms)))
	for i := range xforms {
		w.u32(xforms[i].Type)
		w.f32(xforms[i].Param)
	}
}

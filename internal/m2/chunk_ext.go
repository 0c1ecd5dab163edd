package m2

// Rendering-enhancement extension chunks (Legion+). None of them is required;
// downgrading a model drops every one of them with an informational note.
//
// Per-tag layouts:
//
//	EXPT: count u32, count x { zSource f32, colorMult f32, alphaMult f32 }
//	EXP2: count u32, count x { zSource f32, colorMult f32, alphaMult f32, weight f32 }
//	PABC: count u32, count x u16 sequence id (blacklist)
//	PADC: count u32, count x { animID u16, pad u16, weight f32 }
//	PSBC: count u32, count x BoundingBox (28 bytes)
//	PEDC: count u32, count x { id u32, bone u16, pad u16 }
//	EDGF: count u32, count x { fadeStart f32, fadeEnd f32, flags u32 }
//	NERF: { coef0 f32, coef1 f32 }
//	DETL: count u32, count x { flags u16, packedLight u16, lightIndex u16, pad u16 }
//	DBOC: { f32 x 4 }
//	AFRA: u32 frame rate
//	WFV1: { f32 x 6 } waterfall parameters
//	WFV3: { f32 x 8 } extended waterfall parameters
//	RPID: count u32, count x u32 recursive-model file id
//	GPID: count u32, count x u32 geometry-particle file id

type ExtParticle struct {
	ZSource   float32
	ColorMult float32
	AlphaMult float32
	Weight    float32 // EXP2 only; zero under EXPT
}

// ExtParticleChunk backs both EXPT and EXP2; EXP2 carries the extra weight
// field on disk.
type ExtParticleChunk struct {
	tag     Tag
	Entries []ExtParticle
}

func NewExtParticleChunk(tag Tag, entries []ExtParticle) *ExtParticleChunk {
	return &ExtParticleChunk{tag: tag, Entries: entries}
}

func (c *ExtParticleChunk) ChunkTag() Tag { return c.tag }

type ParentBlacklistChunk struct {
	SequenceIDs []uint16
}

func (c *ParentBlacklistChunk) ChunkTag() Tag { return TagParentBlacklist }

type ParentAnimEntry struct {
	AnimID uint16
	Weight float32
}

type ParentAnimDataChunk struct {
	Entries []ParentAnimEntry
}

func (c *ParentAnimDataChunk) ChunkTag() Tag { return TagParentAnimData }

type ParentSeqBoundsChunk struct {
	Bounds []BoundingBox
}

func (c *ParentSeqBoundsChunk) ChunkTag() Tag { return TagParentSeqBounds }

type ParentEventEntry struct {
	ID   uint32
	Bone uint16
}

type ParentEventDataChunk struct {
	Entries []ParentEventEntry
}

func (c *ParentEventDataChunk) ChunkTag() Tag { return TagParentEventData }

type EdgeFadeEntry struct {
	FadeStart float32
	FadeEnd   float32
	Flags     uint32
}

type EdgeFadeChunk struct {
	Entries []EdgeFadeEntry
}

func (c *EdgeFadeChunk) ChunkTag() Tag { return TagEdgeFade }

type AlphaAttenuationChunk struct {
	Coef0 float32
	Coef1 float32
}

func (c *AlphaAttenuationChunk) ChunkTag() Tag { return TagAlphaAttenuation }

type LightingDetail struct {
	Flags       uint16
	PackedLight uint16
	LightIndex  uint16
}

type LightingDetailChunk struct {
	Entries []LightingDetail
}

func (c *LightingDetailChunk) ChunkTag() Tag { return TagLightingDetail }

type BoundingOverrideChunk struct {
	Values [4]float32
}

func (c *BoundingOverrideChunk) ChunkTag() Tag { return TagBoundingOverride }

type AnimFrameRateChunk struct {
	FrameRate uint32
}

func (c *AnimFrameRateChunk) ChunkTag() Tag { return TagAnimFrameRate }

// WaterfallChunk backs WFV1 and WFV3; WFV3 extends the parameter block from
// six to eight floats.
type WaterfallChunk struct {
	tag    Tag
	Params []float32
}

func NewWaterfallChunk(tag Tag, params []float32) *WaterfallChunk {
	return &WaterfallChunk{tag: tag, Params: params}
}

func (c *WaterfallChunk) ChunkTag() Tag { return c.tag }

func init() {
	for _, tag := range []Tag{TagExtParticle, TagExtParticle2} {
		register(tag, codec{
			introduced: Legion,
			decode:     decodeExtParticles(tag),
			encode:     encodeExtParticles,
		})
	}
	register(TagParentBlacklist, codec{
		introduced: Legion,
		decode:     decodeParentBlacklist,
		encode:     encodeParentBlacklist,
	})
	register(TagParentAnimData, codec{
		introduced: Legion,
		decode:     decodeParentAnimData,
		encode:     encodeParentAnimData,
	})
	register(TagParentSeqBounds, codec{
		introduced: Legion,
		decode:     decodeParentSeqBounds,
		encode:     encodeParentSeqBounds,
	})
	register(TagParentEventData, codec{
		introduced: Legion,
		decode:     decodeParentEventData,
		encode:     encodeParentEventData,
	})
	register(TagEdgeFade, codec{
		introduced: Legion,
		decode:     decodeEdgeFade,
		encode:     encodeEdgeFade,
	})
	register(TagAlphaAttenuation, codec{
		introduced: Legion,
		decode:     decodeAlphaAttenuation,
		encode:     encodeAlphaAttenuation,
	})
	register(TagLightingDetail, codec{
		introduced: Legion,
		decode:     decodeLightingDetail,
		encode:     encodeLightingDetail,
	})
	register(TagBoundingOverride, codec{
		introduced: Legion,
		decode:     decodeBoundingOverride,
		encode:     encodeBoundingOverride,
	})
	register(TagAnimFrameRate, codec{
		introduced: Legion,
		decode:     decodeAnimFrameRate,
		encode:     encodeAnimFrameRate,
	})
	register(TagWaterfallV1, codec{
		introduced: Legion,
		decode:     decodeWaterfall(TagWaterfallV1, 6),
		encode:     encodeWaterfall,
	})
	register(TagWaterfallV3, codec{
		introduced: Legion,
		decode:     decodeWaterfall(TagWaterfallV3, 8),
		encode:     encodeWaterfall,
	})
	for _, tag := range []Tag{TagRecursiveParticle, TagGeometryParticle} {
		register(tag, codec{
			introduced: Legion,
			decode:     decodeFileIDList(tag),
			encode:     encodeFileIDList,
		})
	}
}

func decodeExtParticles(tag Tag) func(*reader, Version) (Chunk, error) {
	return func(r *reader, v Version) (Chunk, error) {
		size := 12
		if tag == TagExtParticle2 {
			size = 16
		}
		n := r.count(size)
		c := &ExtParticleChunk{tag: tag, Entries: make([]ExtParticle, n)}
		for i := range c.Entries {
			e := &c.Entries[i]
			e.ZSource = r.f32()
			e.ColorMult = r.f32()
			e.AlphaMult = r.f32()
			if tag == TagExtParticle2 {
				e.Weight = r.f32()
			}
		}
		return c, nil
	}
}

func encodeExtParticles(w *writer, c Chunk, v Version) {
	ep := c.(*ExtParticleChunk)
	w.u32(uint32(len(ep.Entries)))
	for i := range ep.Entries {
		e := &ep.Entries[i]
		w.f32(e.ZSource)
		w.f32(e.ColorMult)
		w.f32(e.AlphaMult)
		if ep.tag == TagExtParticle2 {
			w.f32(e.Weight)
		}
	}
}

func decodeParentBlacklist(r *reader, v Version) (Chunk, error) {
	n := r.count(2)
	c := &ParentBlacklistChunk{SequenceIDs: make([]uint16, n)}
	for i := range c.SequenceIDs {
		c.SequenceIDs[i] = r.u16()
	}
	return c, nil
}

func encodeParentBlacklist(w *writer, c Chunk, v Version) {
	ids := c.(*ParentBlacklistChunk).SequenceIDs
	w.u32(uint32(len(ids)))
	for _, id := range ids {
		w.u16(id)
	}
}

func decodeParentAnimData(r *reader, v Version) (Chunk, error) {
	n := r.count(8)
	c := &ParentAnimDataChunk{Entries: make([]ParentAnimEntry, n)}
	for i := range c.Entries {
		c.Entries[i].AnimID = r.u16()
		r.u16() // pad
		c.Entries[i].Weight = r.f32()
	}
	return c, nil
}

func encodeParentAnimData(w *writer, c Chunk, v Version) {
	entries := c.(*ParentAnimDataChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		w.u16(entries[i].AnimID)
		w.u16(0)
		w.f32(entries[i].Weight)
	}
}

func decodeParentSeqBounds(r *reader, v Version) (Chunk, error) {
	n := r.count(28)
	c := &ParentSeqBoundsChunk{Bounds: make([]BoundingBox, n)}
	for i := range c.Bounds {
		c.Bounds[i] = r.bounds()
	}
	return c, nil
}

func encodeParentSeqBounds(w *writer, c Chunk, v Version) {
	bounds := c.(*ParentSeqBoundsChunk).Bounds
	w.u32(uint32(len(bounds)))
	for i := range bounds {
		w.bounds(bounds[i])
	}
}

func decodeParentEventData(r *reader, v Version) (Chunk, error) {
	n := r.count(8)
	c := &ParentEventDataChunk{Entries: make([]ParentEventEntry, n)}
	for i := range c.Entries {
		c.Entries[i].ID = r.u32()
		c.Entries[i].Bone = r.u16()
		r.u16() // pad
	}
	return c, nil
}

func encodeParentEventData(w *writer, c Chunk, v Version) {
	entries := c.(*ParentEventDataChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		w.u32(entries[i].ID)
		w.u16(entries[i].Bone)
		w.u16(0)
	}
}

func decodeEdgeFade(r *reader, v Version) (Chunk, error) {
	n := r.count(12)
	c := &EdgeFadeChunk{Entries: make([]EdgeFadeEntry, n)}
	for i := range c.Entries {
		c.Entries[i].FadeStart = r.f32()
		c.Entries[i].FadeEnd = r.f32()
		c.Entries[i].Flags = r.u32()
	}
	return c, nil
}

func encodeEdgeFade(w *writer, c Chunk, v Version) {
	entries := c.(*EdgeFadeChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		w.f32(entries[i].FadeStart)
		w.f32(entries[i].FadeEnd)
		w.u32(entries[i].Flags)
	}
}

func decodeAlphaAttenuation(r *reader, v Version) (Chunk, error) {
	return &AlphaAttenuationChunk{Coef0: r.f32(), Coef1: r.f32()}, nil
}

func encodeAlphaAttenuation(w *writer, c Chunk, v Version) {
	nerf := c.(*AlphaAttenuationChunk)
	w.f32(nerf.Coef0)
	w.f32(nerf.Coef1)
}

func decodeLightingDetail(r *reader, v Version) (Chunk, error) {
	n := r.count(8)
	c := &LightingDetailChunk{Entries: make([]LightingDetail, n)}
	for i := range c.Entries {
		c.Entries[i].Flags = r.u16()
		c.Entries[i].PackedLight = r.u16()
		c.Entries[i].LightIndex = r.u16()
		r.u16() // pad
	}
	return c, nil
}

func encodeLightingDetail(w *writer, c Chunk, v Version) {
	entries := c.(*LightingDetailChunk).Entries
	w.u32(uint32(len(entries)))
	for i := range entries {
		w.u16(entries[i].Flags)
		w.u16(entries[i].PackedLight)
		w.u16(entries[i].LightIndex)
		w.u16(0)
	}
}

func decodeBoundingOverride(r *reader, v Version) (Chunk, error) {
	c := &BoundingOverrideChunk{}
	for i := range c.Values {
		c.Values[i] = r.f32()
	}
	return c, nil
}

func encodeBoundingOverride(w *writer, c Chunk, v Version) {
	for _, f := range c.(*BoundingOverrideChunk).Values {
		w.f32(f)
	}
}

func decodeAnimFrameRate(r *reader, v Version) (Chunk, error) {
	return &AnimFrameRateChunk{FrameRate: r.u32()}, nil
}

func encodeAnimFrameRate(w *writer, c Chunk, v Version) {
	w.u32(c.(*AnimFrameRateChunk).FrameRate)
}

func decodeWaterfall(tag Tag, params int) func(*reader, Version) (Chunk, error) {
	return func(r *reader, v Version) (Chunk, error) {
		c := &WaterfallChunk{tag: tag, Params: make([]float32, params)}
		for i := range c.Params {
			c.Params[i] = r.f32()
		}
		return c, nil
	}
}

func encodeWaterfall(w *writer, c Chunk, v Version) {
	for _, f := range c.(*WaterfallChunk).Params {
		w.f32(f)
	}
}

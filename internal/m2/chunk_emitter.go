package m2

// PREM layout:
//
//	count   u32
//	records count x:
//	  id             u32
//	  flags          u32
//	  position       C3Vector
//	  bone           u16
//	  texture        u16
//	  geometryModel  u16   (index into RPID/GPID tables under Legion rules)
//	  pad            u16
//	  emissionSpeed  f32
//	  speedVariation f32
//	  emissionRate   f32
//	  lifespan       f32
//	  windVector     C3Vector   WoD+ only
//
// Record size: 44 bytes before WoD, 56 from WoD on. Downgrading drops the
// wind vector (documented lossy); upgrading zero-fills it.
//
// RIBB layout:
//
//	count   u32
//	records count x:
//	  id             u32
//	  bone           u16
//	  pad            u16
//	  position       C3Vector
//	  edgesPerSecond f32
//	  edgeLifetime   f32
//	  gravity        f32
//	  textureRows    u16
//	  textureCols    u16
//
// Record size 36, all versions.

type ParticleEmitter struct {
	ID             uint32
	Flags          uint32
	Position       C3Vector
	Bone           uint16
	Texture        uint16
	GeometryModel  uint16
	EmissionSpeed  float32
	SpeedVariation float32
	EmissionRate   float32
	Lifespan       float32
	WindVector     C3Vector
}

type ParticleChunk struct {
	Emitters []ParticleEmitter
}

func (c *ParticleChunk) ChunkTag() Tag { return TagParticles }

type RibbonEmitter struct {
	ID             uint32
	Bone           uint16
	Position       C3Vector
	EdgesPerSecond float32
	EdgeLifetime   float32
	Gravity        float32
	TextureRows    uint16
	TextureCols    uint16
}

type RibbonChunk struct {
	Emitters []RibbonEmitter
}

func (c *RibbonChunk) ChunkTag() Tag { return TagRibbons }

func init() {
	register(TagParticles, codec{
		introduced: Classic,
		decode:     decodeParticles,
		encode:     encodeParticles,
		transform:  transformParticles,
	})
	register(TagRibbons, codec{
		introduced: Classic,
		decode:     decodeRibbons,
		encode:     encodeRibbons,
	})
}

func particleRecordSize(v Version) int {
	if v >= WarlordsOfDraenor {
		return 56
	}
	return 44
}

func decodeParticles(r *reader, v Version) (Chunk, error) {
	n := r.count(particleRecordSize(v))
	c := &ParticleChunk{Emitters: make([]ParticleEmitter, n)}
	for i := range c.Emitters {
		p := &c.Emitters[i]
		p.ID = r.u32()
		p.Flags = r.u32()
		p.Position = r.vec3()
		p.Bone = r.u16()
		p.Texture = r.u16()
		p.GeometryModel = r.u16()
		r.u16() // pad
		p.EmissionSpeed = r.f32()
		p.SpeedVariation = r.f32()
		p.EmissionRate = r.f32()
		p.Lifespan = r.f32()
		if v >= WarlordsOfDraenor {
			p.WindVector = r.vec3()
		}
	}
	return c, nil
}

func encodeParticles(w *writer, c Chunk, v Version) {
	emitters := c.(*ParticleChunk).Emitters
	w.u32(uint32(len(emitters)))
	for i := range emitters {
		p := &emitters[i]
		w.u32(p.ID)
		w.u32(p.Flags)
		w.vec3(p.Position)
		w.u16(p.Bone)
		w.u16(p.Texture)
		w.u16(p.GeometryModel)
		w.u16(0)
		w.f32(p.EmissionSpeed)
		w.f32(p.SpeedVariation)
		w.f32(p.EmissionRate)
		w.f32(p.Lifespan)
		if v >= WarlordsOfDraenor {
			w.vec3(p.WindVector)
		}
	}
}

func transformParticles(c Chunk, from, to Version) (Chunk, error) {
	if to >= WarlordsOfDraenor {
		return c, nil
	}
	src := c.(*ParticleChunk)
	out := &ParticleChunk{Emitters: make([]ParticleEmitter, len(src.Emitters))}
	copy(out.Emitters, src.Emitters)
	for i := range out.Emitters {
		out.Emitters[i].WindVector = C3Vector{}
	}
	return out, nil
}

func decodeRibbons(r *reader, v Version) (Chunk, error) {
	n := r.count(36)
	c := &RibbonChunk{Emitters: make([]RibbonEmitter, n)}
	for i := range c.Emitters {
		rb := &c.Emitters[i]
		rb.ID = r.u32()
		rb.Bone = r.u16()
		r.u16() // pad
		rb.Position = r.vec3()
		rb.EdgesPerSecond = r.f32()
		rb.EdgeLifetime = r.f32()
		rb.Gravity = r.f32()
		rb.TextureRows = r.u16()
		rb.TextureCols = r.u16()
	}
	return c, nil
}

func encodeRibbons(w *writer, c Chunk, v Version) {
	emitters := c.(*RibbonChunk).Emitters
	w.u32(uint32(len(emitters)))
	for i := range emitters {
		rb := &emitters[i]
		w.u32(rb.ID)
		w.u16(rb.Bone)
		w.u16(0)
		w.vec3(rb.Position)
		w.f32(rb.EdgesPerSecond)
		w.f32(rb.EdgeLifetime)
		w.f32(rb.Gravity)
		w.u16(rb.TextureRows)
		w.u16(rb.TextureCols)
	}
}

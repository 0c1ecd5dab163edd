package m2

// VRTX layout:
//
//	count   u32
//	records count x:
//	  position     C3Vector
//	  boneWeights  4 x u8
//	  boneIndices  4 x u8
//	  normal       C3Vector
//	  texCoord     2 x f32
//	  texCoord2    2 x f32   Cataclysm+ only
//
// Record size: 40 bytes before Cataclysm, 48 from Cataclysm on. Downgrading
// drops the second UV set (documented lossy); upgrading zero-fills it.

type Vertex struct {
	Position    C3Vector
	BoneWeights [4]uint8
	BoneIndices [4]uint8
	Normal      C3Vector
	TexCoord    [2]float32
	TexCoord2   [2]float32
}

type VertexChunk struct {
	Vertices []Vertex
}

func (c *VertexChunk) ChunkTag() Tag { return TagVertices }

func init() {
	register(TagVertices, codec{
		introduced: Classic,
		required:   always,
		integrity:  true,
		decode:     decodeVertices,
		encode:     encodeVertices,
		transform:  transformVertices,
	})
}

func vertexRecordSize(v Version) int {
	if v >= Cataclysm {
		return 48
	}
	return 40
}

func decodeVertices(r *reader, v Version) (Chunk, error) {
	n := r.count(vertexRecordSize(v))
	c := &VertexChunk{Vertices: make([]Vertex, n)}
	for i := range c.Vertices {
		vx := &c.Vertices[i]
		vx.Position = r.vec3()
		for j := range vx.BoneWeights {
			vx.BoneWeights[j] = r.u8()
		}
		for j := range vx.BoneIndices {
			vx.BoneIndices[j] = r.u8()
		}
		vx.Normal = r.vec3()
		vx.TexCoord[0] = r.f32()
		vx.TexCoord[1] = r.f32()
		if v >= Cataclysm {
			vx.TexCoord2[0] = r.f32()
			vx.TexCoord2[1] = r.f32()
		}
	}
	return c, nil
}

func encodeVertices(w *writer, c Chunk, v Version) {
	verts := c.(*VertexChunk).Vertices
	w.u32(uint32(len(verts)))
	for i := range verts {
		vx := &verts[i]
		w.vec3(vx.Position)
		for _, b := range vx.BoneWeights {
			w.u8(b)
		}
		for _, b := range vx.BoneIndices {
			w.u8(b)
		}
		w.vec3(vx.Normal)
		w.f32(vx.TexCoord[0])
		w.f32(vx.TexCoord[1])
		if v >= Cataclysm {
			w.f32(vx.TexCoord2[0])
			w.f32(vx.TexCoord2[1])
		}
	}
}

func transformVertices(c Chunk, from, to Version) (Chunk, error) {
	if to >= Cataclysm {
		return c, nil
	}
	src := c.(*VertexChunk)
	out := &VertexChunk{Vertices: make([]Vertex, len(src.Vertices))}
	copy(out.Vertices, src.Vertices)
	for i := range out.Vertices {
		out.Vertices[i].TexCoord2 = [2]float32{}
	}
	return out, nil
}

package m2

// BONE layout:
//
//	count   u32
//	records count x:
//	  keyBoneID  i32
//	  flags      u32
//	  parent     i16   (-1 = root)
//	  submeshID  u16
//	  pivot      C3Vector
//	  nameCRC    u32   Cataclysm+ only
//
// Record size: 24 bytes before Cataclysm, 28 from Cataclysm on. Downgrading
// drops nameCRC (documented lossy); upgrading synthesizes nameCRC = 0.

type Bone struct {
	KeyBoneID int32
	Flags     uint32
	Parent    int16
	SubmeshID uint16
	Pivot     C3Vector
	NameCRC   uint32
}

type BoneChunk struct {
	Bones []Bone
}

func (c *BoneChunk) ChunkTag() Tag { return TagBone }

func init() {
	register(TagBone, codec{
		introduced: Classic,
		required:   always,
		integrity:  true,
		decode:     decodeBones,
		encode:     encodeBones,
		transform:  transformBones,
	})
}

func boneRecordSize(v Version) int {
	if v >= Cataclysm {
		return 28
	}
	return 24
}

func decodeBones(r *reader, v Version) (Chunk, error) {
	n := r.count(boneRecordSize(v))
	c := &BoneChunk{Bones: make([]Bone, n)}
	for i := range c.Bones {
		b := &c.Bones[i]
		b.KeyBoneID = r.i32()
		b.Flags = r.u32()
		b.Parent = r.i16()
		b.SubmeshID = r.u16()
		b.Pivot = r.vec3()
		if v >= Cataclysm {
			b.NameCRC = r.u32()
		}
	}
	return c, nil
}

func encodeBones(w *writer, c Chunk, v Version) {
	bones := c.(*BoneChunk).Bones
	w.u32(uint32(len(bones)))
	for i := range bones {
		b := &bones[i]
		w.i32(b.KeyBoneID)
		w.u32(b.Flags)
		w.i16(b.Parent)
		w.u16(b.SubmeshID)
		w.vec3(b.Pivot)
		if v >= Cataclysm {
			w.u32(b.NameCRC)
		}
	}
}

func transformBones(c Chunk, from, to Version) (Chunk, error) {
	if to >= Cataclysm {
		return c, nil
	}
	src := c.(*BoneChunk)
	out := &BoneChunk{Bones: make([]Bone, len(src.Bones))}
	copy(out.Bones, src.Bones)
	for i := range out.Bones {
		out.Bones[i].NameCRC = 0
	}
	return out, nil
}

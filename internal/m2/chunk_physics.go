package m2

// PHYS layout (Cataclysm+):
//
//	physVersion u16
//	pad         u16
//	count       u32
//	records count x:
//	  boneA     u16
//	  boneB     u16
//	  shapeType u16   (0 = sphere, 1 = box, 2 = capsule)
//	  pad       u16
//	  extents   C3Vector
//
// Joint record size 20, all supporting versions. Forbidden before Cataclysm;
// conversion to an older version drops the chunk (not required).

type PhysicsJoint struct {
	BoneA     uint16
	BoneB     uint16
	ShapeType uint16
	Extents   C3Vector
}

type PhysicsChunk struct {
	PhysVersion uint16
	Joints      []PhysicsJoint
}

func (c *PhysicsChunk) ChunkTag() Tag { return TagPhysics }

func init() {
	register(TagPhysics, codec{
		introduced: Cataclysm,
		decode:     decodePhysics,
		encode:     encodePhysics,
	})
}

func decodePhysics(r *reader, v Version) (Chunk, error) {
	c := &PhysicsChunk{PhysVersion: r.u16()}
	r.u16() // pad
	n := r.count(20)
	c.Joints = make([]PhysicsJoint, n)
	for i := range c.Joints {
		j := &c.Joints[i]
		j.BoneA = r.u16()
		j.BoneB = r.u16()
		j.ShapeType = r.u16()
		r.u16() // pad
		j.Extents = r.vec3()
	}
	return c, nil
}

func encodePhysics(w *writer, c Chunk, v Version) {
	phys := c.(*PhysicsChunk)
	w.u16(phys.PhysVersion)
	w.u16(0)
	w.u32(uint32(len(phys.Joints)))
	for i := range phys.Joints {
		j := &phys.Joints[i]
		w.u16(j.BoneA)
		w.u16(j.BoneB)
		w.u16(j.ShapeType)
		w.u16(0)
		w.vec3(j.Extents)
	}
}

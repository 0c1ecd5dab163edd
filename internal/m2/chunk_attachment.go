package m2

// ATCH layout:
//
//	count   u32
//	records count x { id u32, bone u16, pad u16, position C3Vector }
//
// EVNT layout:
//
//	count   u32
//	records count x { id 4-byte tag, data u32, bone u16, pad u16, position C3Vector }
//
// Both reference the BONE table by index; validation flags dangling bones.

type Attachment struct {
	ID       uint32
	Bone     uint16
	Position C3Vector
}

type AttachmentChunk struct {
	Attachments []Attachment
}

func (c *AttachmentChunk) ChunkTag() Tag { return TagAttachments }

type Event struct {
	ID       Tag
	Data     uint32
	Bone     uint16
	Position C3Vector
}

type EventChunk struct {
	Events []Event
}

func (c *EventChunk) ChunkTag() Tag { return TagEvents }

func init() {
	register(TagAttachments, codec{
		introduced: Classic,
		decode:     decodeAttachments,
		encode:     encodeAttachments,
	})
	register(TagEvents, codec{
		introduced: Classic,
		decode:     decodeEvents,
		encode:     encodeEvents,
	})
}

func decodeAttachments(r *reader, v Version) (Chunk, error) {
	n := r.count(20)
	c := &AttachmentChunk{Attachments: make([]Attachment, n)}
	for i := range c.Attachments {
		a := &c.Attachments[i]
		a.ID = r.u32()
		a.Bone = r.u16()
		r.u16() // pad
		a.Position = r.vec3()
	}
	return c, nil
}

func encodeAttachments(w *writer, c Chunk, v Version) {
	atts := c.(*AttachmentChunk).Attachments
	w.u32(uint32(len(atts)))
	for i := range atts {
		a := &atts[i]
		w.u32(a.ID)
		w.u16(a.Bone)
		w.u16(0)
		w.vec3(a.Position)
	}
}

func decodeEvents(r *reader, v Version) (Chunk, error) {
	n := r.count(24)
	c := &EventChunk{Events: make([]Event, n)}
	for i := range c.Events {
		e := &c.Events[i]
		copy(e.ID[:], r.bytes(4))
		e.Data = r.u32()
		e.Bone = r.u16()
		r.u16() // pad
		e.Position = r.vec3()
	}
	return c, nil
}

func encodeEvents(w *writer, c Chunk, v Version) {
	events := c.(*EventChunk).Events
	w.u32(uint32(len(events)))
	for i := range events {
		e := &events[i]
		w.buf = append(w.buf, e.ID[:]...)
		w.u32(e.Data)
		w.u16(e.Bone)
		w.u16(0)
		w.vec3(e.Position)
	}
}

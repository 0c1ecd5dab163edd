package m2

// SEQS layout:
//
//	count   u32
//	records count x:
//	  id         u16
//	  variation  u16
//	  start      u32   pre-WotLK only
//	  end        u32   pre-WotLK: absolute end time; WotLK+: duration
//	  moveSpeed  f32
//	  flags      u32
//
// Record size: 20 bytes before WotLK, 16 from WotLK on. WotLK dropped the
// absolute start time; upgrading across the boundary rebases every sequence
// to start 0 with End holding the duration (documented lossy: the absolute
// start offset is gone). Downgrading keeps the rebased times as-is.

type Sequence struct {
	ID        uint16
	Variation uint16
	Start     uint32
	End       uint32
	MoveSpeed float32
	Flags     uint32
}

// Duration returns the sequence length in ms.
func (s Sequence) Duration() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

type SequenceChunk struct {
	Sequences []Sequence
}

func (c *SequenceChunk) ChunkTag() Tag { return TagSequences }

func init() {
	register(TagSequences, codec{
		introduced: Classic,
		required:   always,
		integrity:  true,
		decode:     decodeSequences,
		encode:     encodeSequences,
		transform:  transformSequences,
	})
}

func sequenceRecordSize(v Version) int {
	if v >= WrathOfTheLichKing {
		return 16
	}
	return 20
}

func decodeSequences(r *reader, v Version) (Chunk, error) {
	n := r.count(sequenceRecordSize(v))
	c := &SequenceChunk{Sequences: make([]Sequence, n)}
	for i := range c.Sequences {
		s := &c.Sequences[i]
		s.ID = r.u16()
		s.Variation = r.u16()
		if v >= WrathOfTheLichKing {
			s.End = r.u32()
		} else {
			s.Start = r.u32()
			s.End = r.u32()
		}
		s.MoveSpeed = r.f32()
		s.Flags = r.u32()
	}
	return c, nil
}

func encodeSequences(w *writer, c Chunk, v Version) {
	seqs := c.(*SequenceChunk).Sequences
	w.u32(uint32(len(seqs)))
	for i := range seqs {
		s := &seqs[i]
		w.u16(s.ID)
		w.u16(s.Variation)
		if v >= WrathOfTheLichKing {
			w.u32(s.Duration())
		} else {
			w.u32(s.Start)
			w.u32(s.End)
		}
		w.f32(s.MoveSpeed)
		w.u32(s.Flags)
	}
}

func transformSequences(c Chunk, from, to Version) (Chunk, error) {
	if to < WrathOfTheLichKing {
		return c, nil
	}
	src := c.(*SequenceChunk)
	out := &SequenceChunk{Sequences: make([]Sequence, len(src.Sequences))}
	copy(out.Sequences, src.Sequences)
	for i := range out.Sequences {
		s := &out.Sequences[i]
		s.End = s.Duration()
		s.Start = 0
	}
	return out, nil
}

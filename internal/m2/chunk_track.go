package m2

import "fmt"

// Track layout, all versions:
//
//	interp     u16
//	globalSeq  i16
//	count      u32
//	times      count x u32 (ms)
//	values     count x elem
//
// Alpha-valued tracks store elem as fixed16 (i16, 0..0x7fff maps to 0..1)
// before Cataclysm and as f32 from Cataclysm on. Every other element type is
// version-independent.

func decodeTrack[T any](r *reader, elemSize int, read func(*reader) T) Track[T] {
	t := Track[T]{Interp: r.u16(), GlobalSeq: r.i16()}
	n := r.count(4 + elemSize)
	t.Times = make([]uint32, n)
	for i := range t.Times {
		t.Times[i] = r.u32()
	}
	t.Values = make([]T, n)
	for i := range t.Values {
		t.Values[i] = read(r)
	}
	return t
}

func encodeTrack[T any](w *writer, t Track[T], write func(*writer, T)) {
	w.u16(t.Interp)
	w.i16(t.GlobalSeq)
	w.u32(uint32(len(t.Times)))
	for _, ts := range t.Times {
		w.u32(ts)
	}
	for _, v := range t.Values {
		write(w, v)
	}
}

func decodeVec3Track(r *reader) Track[C3Vector] {
	return decodeTrack(r, 12, (*reader).vec3)
}

func encodeVec3Track(w *writer, t Track[C3Vector]) {
	encodeTrack(w, t, (*writer).vec3)
}

func decodeQuatTrack(r *reader) Track[Quat] {
	return decodeTrack(r, 16, (*reader).quat)
}

func encodeQuatTrack(w *writer, t Track[Quat]) {
	encodeTrack(w, t, (*writer).quat)
}

func decodeAlphaTrack(r *reader, v Version) Track[float32] {
	if v >= Cataclysm {
		return decodeTrack(r, 4, (*reader).f32)
	}
	return decodeTrack(r, 2, func(r *reader) float32 {
		return fixed16ToFloat(r.i16())
	})
}

func encodeAlphaTrack(w *writer, t Track[float32], v Version) {
	if v >= Cataclysm {
		encodeTrack(w, t, (*writer).f32)
		return
	}
	encodeTrack(w, t, func(w *writer, a float32) {
		w.i16(floatToFixed16(a))
	})
}

// narrowAlphaTrack prepares an alpha track for a pre-Cataclysm target:
// values outside [0,1] cannot be represented as fixed16 and fail with
// ErrFieldOverflow; in-range values are quantized to the fixed16 grid so the
// narrowed value round-trips exactly.
func narrowAlphaTrack(t Track[float32], chunk Tag, entry int) (Track[float32], error) {
	out := t
	out.Values = make([]float32, len(t.Values))
	for i, a := range t.Values {
		if a < 0 || a > 1 {
			return t, fmt.Errorf("m2: %w: %s[%d] alpha key %d = %g outside fixed16 range [0,1]",
				ErrFieldOverflow, chunk, entry, i, a)
		}
		out.Values[i] = fixed16ToFloat(floatToFixed16(a))
	}
	return out, nil
}

package anim

// Per-keyframe byte model: a u32 timestamp plus the value payload.
const (
	translationKeyframeBytes = 16 // u32 + C3Vector
	rotationKeyframeBytes    = 20 // u32 + Quat
	scalingKeyframeBytes     = 16 // u32 + C3Vector
)

// MemoryUsage is a diagnostic estimate of the keyframe footprint, tracked
// per track kind.
type MemoryUsage struct {
	Sections             int
	BoneAnimations       int
	TranslationKeyframes int
	RotationKeyframes    int
	ScalingKeyframes     int
	ApproximateBytes     int
}

// TotalKeyframes sums the keyframe counts across all track kinds.
func (u MemoryUsage) TotalKeyframes() int {
	return u.TranslationKeyframes + u.RotationKeyframes + u.ScalingKeyframes
}

// MemoryUsage sums keyframe counts across every bone track of every section
// and applies the fixed per-keyframe size model.
func (f *File) MemoryUsage() MemoryUsage {
	u := MemoryUsage{Sections: len(f.Sections)}
	for _, sec := range f.Sections {
		u.BoneAnimations += len(sec.BoneTracks)
		for _, bt := range sec.BoneTracks {
			u.TranslationKeyframes += len(bt.Translation.Times)
			u.RotationKeyframes += len(bt.Rotation.Times)
			u.ScalingKeyframes += len(bt.Scaling.Times)
		}
	}
	u.ApproximateBytes = u.TranslationKeyframes*translationKeyframeBytes +
		u.RotationKeyframes*rotationKeyframeBytes +
		u.ScalingKeyframes*scalingKeyframeBytes
	return u
}

package m2

import "fmt"

// Chunk tags. Core geometry/animation tags exist since Classic; PHYS arrives
// with Cataclysm; file-id tables and rendering-enhancement extensions arrive
// with Legion.
var (
	TagBone         = MakeTag("BONE")
	TagSequences    = MakeTag("SEQS")
	TagVertices     = MakeTag("VRTX")
	TagTextures     = MakeTag("TEXX")
	TagMaterials    = MakeTag("MATL")
	TagAttachments  = MakeTag("ATCH")
	TagEvents       = MakeTag("EVNT")
	TagLights       = MakeTag("LITE")
	TagCameras      = MakeTag("CAMS")
	TagColorAnim    = MakeTag("COLA")
	TagTranspAnim   = MakeTag("TRSP")
	TagTextureAnim  = MakeTag("TXAN")
	TagTextureXform = MakeTag("TXTF")
	TagParticles    = MakeTag("PREM")
	TagRibbons      = MakeTag("RIBB")
	TagPhysics      = MakeTag("PHYS")

	TagSkinFileIDs     = MakeTag("SFID")
	TagAnimFileIDs     = MakeTag("AFID")
	TagBoneFileIDs     = MakeTag("BFID")
	TagTextureFileIDs  = MakeTag("TXID")
	TagSkeletonFileID  = MakeTag("SKID")
	TagPhysicsFileID   = MakeTag("PFID")
	TagTextureCombiner = MakeTag("TXAC")
	TagLodData         = MakeTag("LDV1")

	TagExtParticle       = MakeTag("EXPT")
	TagExtParticle2      = MakeTag("EXP2")
	TagParentBlacklist   = MakeTag("PABC")
	TagParentAnimData    = MakeTag("PADC")
	TagParentSeqBounds   = MakeTag("PSBC")
	TagParentEventData   = MakeTag("PEDC")
	TagEdgeFade          = MakeTag("EDGF")
	TagAlphaAttenuation  = MakeTag("NERF")
	TagLightingDetail    = MakeTag("DETL")
	TagBoundingOverride  = MakeTag("DBOC")
	TagAnimFrameRate     = MakeTag("AFRA")
	TagWaterfallV1       = MakeTag("WFV1")
	TagWaterfallV3       = MakeTag("WFV3")
	TagRecursiveParticle = MakeTag("RPID")
	TagGeometryParticle  = MakeTag("GPID")
)

// Chunk is one decoded chunk value. The concrete type is determined by the
// tag; callers switch on the type or use the Model accessors.
type Chunk interface {
	ChunkTag() Tag
}

// RawChunk preserves a tag this build does not understand so it survives
// decode, convert, and encode untouched.
type RawChunk struct {
	Raw     Tag
	Payload []byte
}

func (c *RawChunk) ChunkTag() Tag { return c.Raw }

// codec binds a tag to its version-aware decode/encode pair plus the
// conversion metadata the orchestrator needs.
type codec struct {
	// introduced is the first version whose rules allow the tag.
	introduced Version
	// required reports whether a well-formed model of the given version
	// must carry the tag.
	required func(Version) bool
	// integrity marks chunks the model cannot function without; convert
	// refuses to drop them even when the target version forbids the tag.
	integrity bool
	// decode parses a payload under one version's layout rules.
	decode func(r *reader, v Version) (Chunk, error)
	// encode is decode's inverse for the same version.
	encode func(w *writer, c Chunk, v Version)
	// transform rewrites a value from one version's rules to another's.
	// nil means the layout is version-independent and the value is reused.
	transform func(c Chunk, from, to Version) (Chunk, error)
	// synthesize builds the documented zero-cost default for a version
	// that requires the tag. nil means no safe default exists.
	synthesize func(v Version) Chunk
}

var codecs = map[Tag]codec{}

func register(t Tag, c codec) {
	if _, dup := codecs[t]; dup {
		panic(fmt.Sprintf("m2: duplicate codec for %s", t))
	}
	codecs[t] = c
}

func always(Version) bool { return true }

func legionOnly(v Version) bool { return v >= Legion }

// chunkOrder is the canonical, dependency-aware tag order. Structural chunks
// come before every chunk that refers into them by index: bones and sequences
// first, then geometry and surface tables, then the referencing chunks, then
// the Legion file-id tables and extension chunks. Save emits present chunks
// in this order and Convert walks it so bone-index consumers always see the
// finalized bone table.
var chunkOrder = []Tag{
	TagBone,
	TagSequences,
	TagVertices,
	TagTextures,
	TagMaterials,
	TagAttachments,
	TagEvents,
	TagLights,
	TagCameras,
	TagColorAnim,
	TagTranspAnim,
	TagTextureAnim,
	TagTextureXform,
	TagParticles,
	TagRibbons,
	TagPhysics,
	TagSkinFileIDs,
	TagAnimFileIDs,
	TagBoneFileIDs,
	TagTextureFileIDs,
	TagSkeletonFileID,
	TagPhysicsFileID,
	TagTextureCombiner,
	TagLodData,
	TagExtParticle,
	TagExtParticle2,
	TagParentBlacklist,
	TagParentAnimData,
	TagParentSeqBounds,
	TagParentEventData,
	TagEdgeFade,
	TagAlphaAttenuation,
	TagLightingDetail,
	TagBoundingOverride,
	TagAnimFrameRate,
	TagWaterfallV1,
	TagWaterfallV3,
	TagRecursiveParticle,
	TagGeometryParticle,
}

// decodeChunk dispatches one record to its codec. Unknown tags come back as
// RawChunk. The codec must consume the payload exactly; trailing garbage is
// a parse error.
func decodeChunk(rec ChunkRecord, v Version) (Chunk, error) {
	c, ok := codecs[rec.Tag]
	if !ok {
		payload := make([]byte, len(rec.Payload))
		copy(payload, rec.Payload)
		return &RawChunk{Raw: rec.Tag, Payload: payload}, nil
	}
	r := newReader(rec.Payload)
	decoded, err := c.decode(r, v)
	if err != nil {
		return nil, fmt.Errorf("m2: decode %s: %w", rec.Tag, err)
	}
	if r.err != nil {
		return nil, fmt.Errorf("m2: decode %s: %w", rec.Tag, r.err)
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("m2: decode %s: %w: %d trailing bytes",
			rec.Tag, ErrTruncated, r.remaining())
	}
	return decoded, nil
}

// encodeChunk renders one chunk back to a tagged record.
func encodeChunk(w *writer, c Chunk, v Version) {
	if raw, ok := c.(*RawChunk); ok {
		w.chunk(raw.Raw, raw.Payload)
		return
	}
	body := &writer{}
	codecs[c.ChunkTag()].encode(body, c, v)
	w.chunk(c.ChunkTag(), body.buf)
}

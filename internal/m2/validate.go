package m2

import "fmt"

// Validate checks referential integrity and count consistency across the
// decoded chunks. It collects every violation instead of failing on the
// first and never mutates the model. An empty result means the model is
// structurally sound; a model with findings still exists and can be
// inspected, it just should not be treated as render-ready.
func (m *Model) Validate() []Finding {
	var findings []Finding
	add := func(kind FindingKind, chunk Tag, index int, format string, args ...any) {
		findings = append(findings, Finding{
			Kind:   kind,
			Chunk:  chunk,
			Index:  index,
			Detail: fmt.Sprintf(format, args...),
		})
	}

	for _, tag := range chunkOrder {
		if m.Header.Version.Requires(tag) {
			if _, ok := m.Chunks[tag]; !ok {
				add(CountMismatch, tag, -1, "required chunk missing under %s", m.Header.Version)
			}
		}
	}

	boneCount := 0
	if b := m.Bones(); b != nil {
		boneCount = len(b.Bones)
		for i, bone := range b.Bones {
			if bone.Parent >= 0 && int(bone.Parent) >= boneCount {
				add(OutOfBoundsIndex, TagBone, i, "parent %d >= bone count %d", bone.Parent, boneCount)
			}
		}
	}
	checkBone := func(tag Tag, index int, bone int) {
		if bone >= boneCount {
			add(DanglingReference, tag, index, "bone %d >= bone count %d", bone, boneCount)
		}
	}

	texCount := 0
	var textures *TextureChunk
	if t := m.Textures(); t != nil {
		textures = t
		texCount = len(t.Textures)
	}

	seqIDs := map[uint16]bool{}
	if s := m.Sequences(); s != nil {
		for _, seq := range s.Sequences {
			seqIDs[seq.ID] = true
		}
	}

	if v := m.Vertices(); v != nil {
		for i, vx := range v.Vertices {
			for j, w := range vx.BoneWeights {
				if w > 0 && int(vx.BoneIndices[j]) >= boneCount {
					add(DanglingReference, TagVertices, i,
						"weighted bone index %d >= bone count %d", vx.BoneIndices[j], boneCount)
				}
			}
		}
	}

	if c, ok := m.Chunks[TagAttachments].(*AttachmentChunk); ok {
		for i, a := range c.Attachments {
			checkBone(TagAttachments, i, int(a.Bone))
		}
	}
	if c, ok := m.Chunks[TagEvents].(*EventChunk); ok {
		for i, e := range c.Events {
			checkBone(TagEvents, i, int(e.Bone))
		}
	}
	if c, ok := m.Chunks[TagLights].(*LightChunk); ok {
		for i, l := range c.Lights {
			if l.Bone >= 0 {
				checkBone(TagLights, i, int(l.Bone))
			}
		}
	}
	if c := m.Particles(); c != nil {
		for i, p := range c.Emitters {
			checkBone(TagParticles, i, int(p.Bone))
			if int(p.Texture) >= texCount {
				add(DanglingReference, TagParticles, i,
					"texture %d >= texture count %d", p.Texture, texCount)
			}
		}
	}
	if c, ok := m.Chunks[TagRibbons].(*RibbonChunk); ok {
		for i, rb := range c.Emitters {
			checkBone(TagRibbons, i, int(rb.Bone))
		}
	}
	if c, ok := m.Chunks[TagPhysics].(*PhysicsChunk); ok {
		for i, j := range c.Joints {
			checkBone(TagPhysics, i, int(j.BoneA))
			checkBone(TagPhysics, i, int(j.BoneB))
		}
	}

	if c, ok := m.Chunks[TagColorAnim].(*ColorAnimationChunk); ok {
		for i, e := range c.Entries {
			checkTrack(&findings, TagColorAnim, i, len(e.Color.Times), len(e.Color.Values))
			checkTrack(&findings, TagColorAnim, i, len(e.Alpha.Times), len(e.Alpha.Values))
		}
	}
	if c, ok := m.Chunks[TagTranspAnim].(*TransparencyChunk); ok {
		for i, t := range c.Tracks {
			checkTrack(&findings, TagTranspAnim, i, len(t.Times), len(t.Values))
		}
	}
	if c, ok := m.Chunks[TagTextureAnim].(*TextureAnimationChunk); ok {
		for i, e := range c.Entries {
			checkTrack(&findings, TagTextureAnim, i, len(e.Translation.Times), len(e.Translation.Values))
			checkTrack(&findings, TagTextureAnim, i, len(e.Rotation.Times), len(e.Rotation.Values))
			checkTrack(&findings, TagTextureAnim, i, len(e.Scaling.Times), len(e.Scaling.Values))
		}
	}

	if c, ok := m.Chunks[TagAnimFileIDs].(*AnimFileIDChunk); ok {
		for i, e := range c.Entries {
			if !seqIDs[e.AnimID] {
				add(DanglingReference, TagAnimFileIDs, i, "sequence id %d not in SEQS", e.AnimID)
			}
		}
	}
	if c, ok := m.Chunks[TagParentBlacklist].(*ParentBlacklistChunk); ok {
		for i, id := range c.SequenceIDs {
			if !seqIDs[id] {
				add(DanglingReference, TagParentBlacklist, i, "sequence id %d not in SEQS", id)
			}
		}
	}

	if c, ok := m.Chunks[TagTextureCombiner].(*TextureCombinerChunk); ok {
		if mats := m.Materials(); mats != nil && len(c.Combiners) != len(mats.Materials) {
			add(CountMismatch, TagTextureCombiner, -1,
				"%d combiners for %d materials", len(c.Combiners), len(mats.Materials))
		}
	}
	if textures != nil {
		txid, hasTxid := m.Chunks[TagTextureFileIDs].(*FileIDChunk)
		for i, t := range textures.Textures {
			if t.Type == 0 && t.Filename == "" {
				if !hasTxid || i >= len(txid.IDs) || txid.IDs[i] == 0 {
					add(DanglingReference, TagTextures, i,
						"hardcoded texture has neither filename nor TXID entry")
				}
			}
		}
	}

	return findings
}

func checkTrack(findings *[]Finding, chunk Tag, index, times, values int) {
	if times != values {
		*findings = append(*findings, Finding{
			Kind:   CountMismatch,
			Chunk:  chunk,
			Index:  index,
			Detail: fmt.Sprintf("%d timestamps but %d values", times, values),
		})
	}
}

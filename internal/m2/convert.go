package m2

import "fmt"

// Converter rewrites a model from one version's layout rules to another's.
// Conversion is all-or-nothing: the source model is never touched, and any
// failure returns it unchanged with no partially converted result.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// Convert builds a new model obeying the target version's rules. It walks
// the canonical chunk order (structural chunks first, so bone-index
// consumers transform against the finalized bone table), applying per-chunk
// version transforms, dropping tags the target forbids, and synthesizing
// documented defaults for tags the target requires. The returned notes
// record every non-fatal decision (dropped or synthesized chunks).
//
// After the chunk walk the result is re-validated; a result with findings
// fails with ErrPostConversionValidation.
func (cv *Converter) Convert(m *Model, target Version) (*Model, []string, error) {
	from := m.Header.Version
	out := &Model{
		Header: m.Header,
		Chunks: make(map[Tag]Chunk, len(m.Chunks)),
	}
	out.Header.Version = target
	var notes []string

	for _, tag := range chunkOrder {
		c := codecs[tag]
		src, present := m.Chunks[tag]

		if present && !target.Allows(tag) {
			if c.integrity {
				return nil, nil, fmt.Errorf("m2: convert %s -> %s: %w: %s",
					from, target, ErrCannotDropRequiredChunk, tag)
			}
			notes = append(notes, fmt.Sprintf("dropped %s: not legal under %s", tag, target))
			continue
		}

		if !present {
			if target.Requires(tag) {
				if c.synthesize == nil {
					return nil, nil, fmt.Errorf("m2: convert %s -> %s: %w: %s",
						from, target, ErrMissingRequiredChunk, tag)
				}
				out.Chunks[tag] = c.synthesize(target)
				notes = append(notes, fmt.Sprintf("synthesized empty %s required by %s", tag, target))
			}
			continue
		}

		if c.transform != nil && from != target {
			transformed, err := c.transform(src, from, target)
			if err != nil {
				return nil, nil, fmt.Errorf("m2: convert %s -> %s: %w", from, target, err)
			}
			out.Chunks[tag] = transformed
		} else {
			out.Chunks[tag] = src
		}
	}

	// Unknown chunks pass through untouched; forward compatibility is
	// structural, not a special case.
	out.Unknown = append([]RawChunk(nil), m.Unknown...)

	if findings := out.Validate(); len(findings) > 0 {
		return nil, nil, fmt.Errorf("m2: convert %s -> %s: %w: %d findings, first: %s",
			from, target, ErrPostConversionValidation, len(findings), findings[0])
	}
	return out, notes, nil
}

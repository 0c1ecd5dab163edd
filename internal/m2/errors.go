package m2

import (
	"errors"
	"fmt"
)

// Parse failures. All of them abort the load; no partial model is returned.
var (
	ErrTruncated      = errors.New("truncated data")
	ErrInvalidMagic   = errors.New("invalid magic")
	ErrUnknownVersion = errors.New("unknown version")
	ErrDuplicateChunk = errors.New("duplicate chunk")
	ErrIllegalChunk   = errors.New("chunk not legal for version")
)

// Conversion failures. Conversion is transactional: any of these leaves the
// source model untouched.
var (
	ErrCannotDropRequiredChunk  = errors.New("cannot drop required chunk")
	ErrMissingRequiredChunk     = errors.New("missing required chunk")
	ErrFieldOverflow            = errors.New("field overflows target representation")
	ErrPostConversionValidation = errors.New("converted model failed validation")
)

// FindingKind classifies one validation finding.
type FindingKind int

const (
	DanglingReference FindingKind = iota
	CountMismatch
	OutOfBoundsIndex
)

func (k FindingKind) String() string {
	switch k {
	case DanglingReference:
		return "dangling reference"
	case CountMismatch:
		return "count mismatch"
	case OutOfBoundsIndex:
		return "out-of-bounds index"
	}
	return fmt.Sprintf("FindingKind(%d)", int(k))
}

// Finding is one validation violation. Validation collects every finding
// instead of failing fast; severity policy is the caller's.
type Finding struct {
	Kind   FindingKind
	Chunk  Tag
	Index  int // record index within the chunk, -1 when not applicable
	Detail string
}

func (f Finding) String() string {
	if f.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d]: %s", f.Kind, f.Chunk, f.Index, f.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", f.Kind, f.Chunk, f.Detail)
}

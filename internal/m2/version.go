package m2

import (
	"fmt"
	"strings"
)

// Version identifies one historical layout ruleset. The ordering of the
// constants is the upgrade order; comparing two versions with < or >
// gives the conversion direction.
type Version int

const (
	Classic Version = iota
	BurningCrusade
	WrathOfTheLichKing
	Cataclysm
	MistsOfPandaria
	WarlordsOfDraenor
	Legion
)

func (v Version) String() string {
	switch v {
	case Classic:
		return "Classic"
	case BurningCrusade:
		return "TBC"
	case WrathOfTheLichKing:
		return "WotLK"
	case Cataclysm:
		return "Cataclysm"
	case MistsOfPandaria:
		return "MoP"
	case WarlordsOfDraenor:
		return "WoD"
	case Legion:
		return "Legion"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// HeaderVersion is the u32 written into the fixed file header.
// Cataclysm and MoP share 272 on disk; VersionFromHeader resolves
// the ambiguity toward Cataclysm.
func (v Version) HeaderVersion() uint32 {
	switch v {
	case Classic:
		return 256
	case BurningCrusade:
		return 260
	case WrathOfTheLichKing:
		return 264
	case Cataclysm, MistsOfPandaria:
		return 272
	case WarlordsOfDraenor:
		return 273
	default:
		return 274
	}
}

// VersionFromHeader maps an on-disk header version to a ruleset.
func VersionFromHeader(raw uint32) (Version, error) {
	switch {
	case raw >= 256 && raw <= 259:
		return Classic, nil
	case raw >= 260 && raw <= 263:
		return BurningCrusade, nil
	case raw >= 264 && raw <= 271:
		return WrathOfTheLichKing, nil
	case raw == 272:
		return Cataclysm, nil
	case raw == 273:
		return WarlordsOfDraenor, nil
	case raw >= 274 && raw <= 280:
		return Legion, nil
	}
	return 0, fmt.Errorf("m2: %w: header version %d", ErrUnknownVersion, raw)
}

// VersionFromExpansion resolves an expansion name or a patch-style string
// ("WotLK", "wrath", "3.3.5a") to a Version.
func VersionFromExpansion(name string) (Version, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "")
	if v, ok := expansionNames[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("m2: %w: %q", ErrUnknownVersion, name)
}

var expansionNames = map[string]Version{
	"classic": Classic,
	"vanilla": Classic,
	"1.12":    Classic,
	"1.12.1":  Classic,

	"tbc":            BurningCrusade,
	"bc":             BurningCrusade,
	"burningcrusade": BurningCrusade,
	"2.4.3":          BurningCrusade,

	"wotlk":  WrathOfTheLichKing,
	"wrath":  WrathOfTheLichKing,
	"lk":     WrathOfTheLichKing,
	"3.3.5":  WrathOfTheLichKing,
	"3.3.5a": WrathOfTheLichKing,

	"cata":      Cataclysm,
	"cataclysm": Cataclysm,
	"4.3.4":     Cataclysm,

	"mop":   MistsOfPandaria,
	"mists": MistsOfPandaria,
	"5.4.8": MistsOfPandaria,

	"wod":      WarlordsOfDraenor,
	"warlords": WarlordsOfDraenor,
	"6.2.4":    WarlordsOfDraenor,

	"legion": Legion,
	"7.3.5":  Legion,
}

// Allows reports whether a chunk tag is legal under this version's rules.
// Unknown tags are always allowed; they round-trip as opaque payloads.
func (v Version) Allows(t Tag) bool {
	c, ok := codecs[t]
	if !ok {
		return true
	}
	return v >= c.introduced
}

// Requires reports whether the tag must be present in a well-formed model
// of this version.
func (v Version) Requires(t Tag) bool {
	c, ok := codecs[t]
	if !ok {
		return false
	}
	return c.required != nil && c.required(v)
}

// Package companion locates the sibling files that belong to a model:
// skin files named <model>NN.skin and animation files named
// <model>AAAA-BB.anim, where AAAA is the animation id and BB the variation.
package companion

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Index maps lowercase model stems to their discovered companion files.
type Index struct {
	skins map[string][]string // stem -> skin paths, NN order
	anims map[string][]string // stem -> anim paths, id/variation order
}

var (
	skinSuffix = regexp.MustCompile(`^(.*?)(\d{2})$`)
	animSuffix = regexp.MustCompile(`^(.*?)(\d{4})-(\d{2})$`)
)

// BuildIndex scans dir recursively for .skin and .anim files and groups
// them by the model stem their names encode.
func BuildIndex(dir string) *Index {
	idx := &Index{
		skins: make(map[string][]string),
		anims: make(map[string][]string),
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		switch ext {
		case ".skin":
			if m := skinSuffix.FindStringSubmatch(stem); m != nil {
				idx.skins[m[1]] = append(idx.skins[m[1]], path)
			}
		case ".anim":
			if m := animSuffix.FindStringSubmatch(stem); m != nil {
				idx.anims[m[1]] = append(idx.anims[m[1]], path)
			}
		}
		return nil
	})

	for _, paths := range idx.skins {
		sort.Strings(paths)
	}
	for _, paths := range idx.anims {
		sort.Strings(paths)
	}
	return idx
}

// modelStem normalizes a model path to the lowercase stem companion names
// are keyed by. Backslash separators from archive listings are accepted.
func modelStem(modelPath string) string {
	modelPath = strings.ReplaceAll(modelPath, "\\", "/")
	base := filepath.Base(modelPath)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Skins returns the skin files for a model, in NN order.
func (idx *Index) Skins(modelPath string) []string {
	return idx.skins[modelStem(modelPath)]
}

// Anims returns the animation files for a model, in id/variation order.
func (idx *Index) Anims(modelPath string) []string {
	return idx.anims[modelStem(modelPath)]
}

// Len returns the number of model stems with at least one companion file.
func (idx *Index) Len() int {
	stems := make(map[string]bool, len(idx.skins)+len(idx.anims))
	for s := range idx.skins {
		stems[s] = true
	}
	for s := range idx.anims {
		stems[s] = true
	}
	return len(stems)
}

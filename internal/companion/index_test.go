package companion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEmpty(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	wolf00 := writeEmpty(t, dir, "Wolf00.skin")
	wolf01 := writeEmpty(t, dir, "Wolf01.skin")
	wolfAnim := writeEmpty(t, dir, "Wolf0001-00.anim")
	wolfAnim2 := writeEmpty(t, dir, "Wolf0001-01.anim")
	writeEmpty(t, dir, "Bear00.skin")
	writeEmpty(t, dir, "notes.txt")
	writeEmpty(t, dir, "Loose.skin") // no NN suffix, not a companion

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	assert.Equal(t, []string{wolf00, wolf01}, idx.Skins(filepath.Join(dir, "Wolf.m2")))
	assert.Equal(t, []string{wolfAnim, wolfAnim2}, idx.Anims(filepath.Join(dir, "Wolf.m2")))
	assert.Len(t, idx.Skins(filepath.Join(dir, "Bear.m2")), 1)
	assert.Empty(t, idx.Skins(filepath.Join(dir, "Cat.m2")))
}

func TestIndexMatchingIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeEmpty(t, dir, "WOLF00.skin")

	idx := BuildIndex(dir)
	assert.Len(t, idx.Skins("wolf.m2"), 1)
	assert.Len(t, idx.Skins("Wolf.M2"), 1)
}

func TestIndexAcceptsArchivePaths(t *testing.T) {
	dir := t.TempDir()
	writeEmpty(t, dir, "wolf00.skin")

	idx := BuildIndex(dir)
	assert.Len(t, idx.Skins(`Creature\Wolf\Wolf.m2`), 1)
}

func TestIndexWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "creature")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeEmpty(t, sub, "raptor00.skin")

	idx := BuildIndex(dir)
	assert.Len(t, idx.Skins("raptor.m2"), 1)
}

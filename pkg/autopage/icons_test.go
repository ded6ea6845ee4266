package autopage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []IconCatalogEntry {
	return []IconCatalogEntry{
		{Pack: "material", Name: "terminal", AssetPath: "/packs/material/terminal.png"},
		{Pack: "material", Name: "web-browser", AssetPath: "/packs/material/web-browser.png"},
		{Pack: "retro", Name: "terminal", AssetPath: "/packs/retro/terminal.png"},
		{Pack: "retro", Name: "floppy", AssetPath: "/packs/retro/floppy.png"},
	}
}

func TestResolveExactMatchHonorsPackPriority(t *testing.T) {
	r := NewResolver(testCatalog(), []string{"retro", "material"})

	got := r.Resolve("terminal")
	require.NotNil(t, got)
	assert.Equal(t, "retro", got.Pack)
}

func TestResolveExactBeatsLooseInLowerPack(t *testing.T) {
	// "floppy" exists exactly in retro; a loose match in the higher
	// priority pack must not shadow it.
	r := NewResolver(testCatalog(), []string{"material", "retro"})

	got := r.Resolve("floppy")
	require.NotNil(t, got)
	assert.Equal(t, "/packs/retro/floppy.png", got.AssetPath)
}

func TestResolveLooseMatch(t *testing.T) {
	r := NewResolver(testCatalog(), []string{"material", "retro"})

	got := r.Resolve("Browser")
	require.NotNil(t, got)
	assert.Equal(t, "web-browser", got.Name)
}

func TestResolveRegexRequest(t *testing.T) {
	r := NewResolver(testCatalog(), []string{"material"})

	got := r.Resolve("^web-.*$")
	require.NotNil(t, got)
	assert.Equal(t, "web-browser", got.Name)
}

func TestResolveInvalidRegexFallsBackToSubstring(t *testing.T) {
	catalog := []IconCatalogEntry{
		{Pack: "misc", Name: "c++ compiler", AssetPath: "/packs/misc/cpp.png"},
	}
	r := NewResolver(catalog, nil)

	got := r.Resolve("c++")
	require.NotNil(t, got)
	assert.Equal(t, "c++ compiler", got.Name)
}

func TestResolveMissReturnsNil(t *testing.T) {
	r := NewResolver(testCatalog(), []string{"material"})

	assert.Nil(t, r.Resolve("nonexistent_icon_xyz"))
	assert.Nil(t, r.Resolve(""))
}

func TestResolveUnlistedPacksStillSearched(t *testing.T) {
	r := NewResolver(testCatalog(), nil)

	got := r.Resolve("floppy")
	require.NotNil(t, got)
	assert.Equal(t, "retro", got.Pack)
}

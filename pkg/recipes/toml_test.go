package recipes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

const sampleRecipe = `
page = "firefox"
background = "wallpapers/dark.png"

[[match]]
class = "^firefox$"

[[match]]
package = "org.mozilla.firefox"

[[button]]
location = "1x2"
icon = "web-browser"
top = "New Tab"
background = "#ff2244aa"
action = "Ctrl+T"

[[button]]
icon = "terminal"
action = "plugin_dev::OpenTerminal"
`

func TestParseFullDocument(t *testing.T) {
	recipe, err := Parse([]byte(sampleRecipe), "fallback")
	require.NoError(t, err)

	assert.Equal(t, "firefox", recipe.PageName)
	assert.Equal(t, "wallpapers/dark.png", recipe.Background)

	require.Len(t, recipe.Keys, 2)
	pattern, ok := recipe.Keys[0].(autopage.KeyPattern)
	require.True(t, ok)
	assert.Equal(t, "^firefox$", pattern.Class.String())
	assert.Nil(t, pattern.Name)
	assert.Equal(t, autopage.KeyPackage{Namespace: "org.mozilla.firefox"}, recipe.Keys[1])

	require.Len(t, recipe.Buttons, 2)
	first := recipe.Buttons[0]
	require.NotNil(t, first.Coord)
	assert.Equal(t, autopage.Coord{Row: 2, Col: 1}, *first.Coord)
	assert.Equal(t, "web-browser", first.IconRequest)
	assert.Equal(t, "New Tab", first.Labels.Top)
	require.NotNil(t, first.Color)
	assert.Equal(t, autopage.RGBA{R: 0xff, G: 0x22, B: 0x44, A: 0xaa}, *first.Color)

	second := recipe.Buttons[1]
	assert.Nil(t, second.Coord)
	assert.Nil(t, second.Color)
	assert.Equal(t, "plugin_dev::OpenTerminal", second.Action)
}

func TestParseSteamMatch(t *testing.T) {
	doc := `
[[match]]
steam = 620

[[button]]
action = "F5"
`
	recipe, err := Parse([]byte(doc), "portal2")
	require.NoError(t, err)

	assert.Equal(t, "portal2", recipe.PageName)
	require.Len(t, recipe.Keys, 1)
	assert.Equal(t, autopage.KeyStorefront{Store: autopage.StorefrontSteam, AppID: 620}, recipe.Keys[0])
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not toml", `this is { not toml`},
		{"no match table", `[[button]]` + "\n" + `action = "F1"`},
		{"empty match table", `[[match]]`},
		{"mixed schemes", "[[match]]\nclass = \"a\"\npackage = \"b.c.d\""},
		{"bad regex", "[[match]]\nclass = \"[unclosed\""},
		{"bad location", "[[match]]\nclass = \"a\"\n[[button]]\nlocation = \"nope\""},
		{"bad color", "[[match]]\nclass = \"a\"\n[[button]]\nbackground = \"#12\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "x")
			assert.Error(t, err)
		})
	}
}

func TestParseNoPageNameAnywhere(t *testing.T) {
	_, err := Parse([]byte("[[match]]\nclass = \"a\""), "")
	assert.Error(t, err)
}

func TestLoadDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()

	good := "[[match]]\nclass = \"^vim$\"\n[[button]]\naction = \"F1\"\n"
	bad := "[[match]]\nclass = \"[unclosed\"\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "vim.ap.toml"), []byte(good), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ap.toml"), []byte(bad), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))

	loaded, err := LoadDir(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	require.Len(t, loaded, 1)
	assert.Equal(t, "vim", loaded[0].PageName)
}

func TestLoadDirStableOrder(t *testing.T) {
	dir := t.TempDir()
	doc := "[[match]]\nclass = \"x\"\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ap.toml"), []byte(doc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ap.toml"), []byte(doc), 0644))

	loaded, err := LoadDir(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, "a", loaded[0].PageName)
	assert.Equal(t, "b", loaded[1].PageName)
}

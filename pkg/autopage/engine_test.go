package autopage_test

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/martonv/autopage/pkg/autopage"
	genmemory "codeberg.org/martonv/autopage/pkg/genstore/memory"
	hostmemory "codeberg.org/martonv/autopage/pkg/pagehost/memory"
	"codeberg.org/martonv/autopage/pkg/pagejson"
	"codeberg.org/martonv/autopage/pkg/recipes"
)

func patternRecipe(page, classPattern string) *autopage.Recipe {
	return &autopage.Recipe{
		Keys:     []autopage.RecipeKey{autopage.KeyPattern{Class: regexp.MustCompile(classPattern)}},
		PageName: page,
		Buttons: []autopage.ButtonSpec{
			{IconRequest: "terminal", Action: "Ctrl+T", Labels: autopage.Labels{Top: "New Tab"}},
			{Action: "F5"},
		},
	}
}

func newTestEngine(host *hostmemory.Host, record *genmemory.Store, loaded ...*autopage.Recipe) *autopage.Engine {
	store := recipes.NewStore()
	store.Replace(loaded)

	catalog := []autopage.IconCatalogEntry{
		{Pack: "material", Name: "terminal", AssetPath: "/packs/material/terminal.png"},
	}

	log := zap.NewNop().Sugar()
	return autopage.NewEngine(
		nil, // tests drive Process directly, no window source needed
		store,
		autopage.NewResolver(catalog, []string{"material"}),
		autopage.NewCompiler(4, 5),
		pagejson.NewRenderer(log),
		host,
		record,
		log,
	)
}

func TestEngineCreatesPage(t *testing.T) {
	host := hostmemory.NewHost()
	record := genmemory.NewStore()
	e := newTestEngine(host, record, patternRecipe("firefox", "^firefox$"))

	err := e.Process(autopage.WindowObservation{Class: "firefox", Title: "Mozilla Firefox"})
	require.NoError(t, err)

	doc, ok := host.Page("firefox")
	require.True(t, ok)

	var page map[string]any
	require.NoError(t, json.Unmarshal(doc, &page))
	keys := page["keys"].(map[string]any)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "0x0")
	assert.Contains(t, keys, "1x0")

	generated, err := record.Generated()
	require.NoError(t, err)
	assert.True(t, generated["firefox"])
}

func TestEngineReplacesOwnPage(t *testing.T) {
	host := hostmemory.NewHost()
	require.NoError(t, host.AddPage("firefox", []byte("old")))
	record := genmemory.NewStore()
	require.NoError(t, record.Record("firefox"))
	e := newTestEngine(host, record, patternRecipe("firefox", "^firefox$"))

	err := e.Process(autopage.WindowObservation{Class: "firefox"})
	require.NoError(t, err)

	doc, ok := host.Page("firefox")
	require.True(t, ok)
	assert.NotEqual(t, []byte("old"), doc)
}

func TestEngineSkipsUserOwnedPage(t *testing.T) {
	host := hostmemory.NewHost()
	// Present on the host but absent from the generated record: the page
	// belongs to the user and must survive untouched.
	require.NoError(t, host.AddPage("firefox", []byte("user edited")))
	e := newTestEngine(host, genmemory.NewStore(), patternRecipe("firefox", "^firefox$"))

	err := e.Process(autopage.WindowObservation{Class: "firefox"})
	require.NoError(t, err)

	doc, _ := host.Page("firefox")
	assert.Equal(t, []byte("user edited"), doc)
}

func TestEngineIgnoresUnmatchedWindow(t *testing.T) {
	host := hostmemory.NewHost()
	e := newTestEngine(host, genmemory.NewStore(), patternRecipe("firefox", "^firefox$"))

	err := e.Process(autopage.WindowObservation{Class: "krita", Title: "Krita"})
	require.NoError(t, err)

	pages, err := host.Pages()
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestEngineIgnoresEmptyObservation(t *testing.T) {
	host := hostmemory.NewHost()
	e := newTestEngine(host, genmemory.NewStore(), patternRecipe("firefox", "^firefox$"))

	err := e.Process(autopage.WindowObservation{PID: 99})
	require.NoError(t, err)

	pages, err := host.Pages()
	require.NoError(t, err)
	assert.Empty(t, pages)
}

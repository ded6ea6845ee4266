package fsdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostRoundTrip(t *testing.T) {
	dir := t.TempDir()
	host, err := NewHost(filepath.Join(dir, "pages"))
	require.NoError(t, err)

	pages, err := host.Pages()
	require.NoError(t, err)
	assert.Empty(t, pages)

	require.NoError(t, host.AddPage("firefox", []byte(`{"keys":{}}`)))
	require.NoError(t, host.AddPage("krita", []byte(`{"keys":{}}`)))

	pages, err = host.Pages()
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox", "krita"}, pages)

	require.NoError(t, host.RemovePage("firefox"))

	pages, err = host.Pages()
	require.NoError(t, err)
	assert.Equal(t, []string{"krita"}, pages)
}

func TestHostIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	host, err := NewHost(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backups"), 0755))

	pages, err := host.Pages()
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestHostRemoveMissingPageIsFine(t *testing.T) {
	host, err := NewHost(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, host.RemovePage("never-existed"))
}

func TestHostRejectsPathTraversal(t *testing.T) {
	host, err := NewHost(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, host.AddPage("../evil", []byte("{}")))
	assert.Error(t, host.AddPage("", []byte("{}")))
}

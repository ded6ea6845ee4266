// Package iconpacks reads the controller host's installed icon packs into
// an in-memory catalog.
package iconpacks

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

// manifest is the pack.json file at an icon pack's root. Only the id
// matters here; missing manifests fall back to the directory name.
type manifest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var assetExtensions = map[string]bool{
	".png":  true,
	".svg":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Scan walks the icon pack root directory (one subdirectory per pack) and
// returns the catalog plus the installed pack ids in name order. A pack
// that can't be read is skipped; an empty or missing root yields an empty
// catalog, not an error, since running without icons is fine.
func Scan(root string) ([]autopage.IconCatalogEntry, []string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read icon pack root: %w", err)
	}

	var catalog []autopage.IconCatalogEntry
	var packs []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		packDir := filepath.Join(root, entry.Name())
		packID := packIdentifier(packDir, entry.Name())

		icons, err := scanPack(packDir, packID)
		if err != nil {
			continue
		}

		catalog = append(catalog, icons...)
		packs = append(packs, packID)
	}

	sort.Strings(packs)
	return catalog, packs, nil
}

func packIdentifier(packDir, fallback string) string {
	data, err := os.ReadFile(filepath.Join(packDir, "pack.json"))
	if err != nil {
		return fallback
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fallback
	}

	if m.ID != "" {
		return m.ID
	}
	if m.Name != "" {
		return m.Name
	}
	return fallback
}

func scanPack(packDir, packID string) ([]autopage.IconCatalogEntry, error) {
	var icons []autopage.IconCatalogEntry

	err := filepath.WalkDir(packDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !assetExtensions[ext] {
			return nil
		}

		icons = append(icons, autopage.IconCatalogEntry{
			Pack:      packID,
			Name:      strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			AssetPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk pack %q: %w", packID, err)
	}

	return icons, nil
}

// Package fsdir talks to the controller host through its page directory:
// the host picks up one JSON document per page from there.
package fsdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

type Host struct {
	dir string
}

var _ autopage.PageHost = (*Host)(nil)

func NewHost(dir string) (*Host, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create pages dir: %w", err)
	}
	return &Host{dir: dir}, nil
}

func (h *Host) Pages() ([]string, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return names, nil
}

func (h *Host) AddPage(name string, doc []byte) error {
	path, err := h.pagePath(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("write page file: %w", err)
	}

	return nil
}

func (h *Host) RemovePage(name string) error {
	path, err := h.pagePath(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove page file: %w", err)
	}

	return nil
}

func (h *Host) pagePath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid page name %q", name)
	}
	return filepath.Join(h.dir, name+".json"), nil
}

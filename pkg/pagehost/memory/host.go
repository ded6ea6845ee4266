// Package memory is an in-memory page host for tests.
package memory

import (
	"sort"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

type Host struct {
	pages map[string][]byte
}

var _ autopage.PageHost = (*Host)(nil)

func NewHost() *Host {
	return &Host{pages: make(map[string][]byte)}
}

func (h *Host) Pages() ([]string, error) {
	names := make([]string, 0, len(h.pages))
	for name := range h.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (h *Host) AddPage(name string, doc []byte) error {
	h.pages[name] = doc
	return nil
}

func (h *Host) RemovePage(name string) error {
	delete(h.pages, name)
	return nil
}

// Page returns the stored document, for assertions.
func (h *Host) Page(name string) ([]byte, bool) {
	doc, ok := h.pages[name]
	return doc, ok
}

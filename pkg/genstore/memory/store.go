// Package memory is an in-memory generated-page record for tests.
package memory

import "codeberg.org/martonv/autopage/pkg/autopage"

type Store struct {
	generated map[string]bool
}

var _ autopage.GeneratedRecord = (*Store)(nil)

func NewStore() *Store {
	return &Store{generated: make(map[string]bool)}
}

func (s *Store) Generated() (map[string]bool, error) {
	out := make(map[string]bool, len(s.generated))
	for name := range s.generated {
		out[name] = true
	}
	return out, nil
}

func (s *Store) Record(name string) error {
	s.generated[name] = true
	return nil
}

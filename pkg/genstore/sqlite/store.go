// Package sqlite persists the names of pages this tool generated, so a
// restart can still tell generated pages apart from user-authored ones.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/martonv/autopage/pkg/autopage"
	"codeberg.org/martonv/autopage/pkg/genstore/sqlite/migrations"
)

type Store struct {
	db *sql.DB
}

var _ autopage.GeneratedRecord = (*Store)(nil)

func NewStore(filename string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Generated() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT name FROM generated_pages`)
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}
	defer rows.Close()

	generated := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite scan: %w", err)
		}
		generated[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite rows: %w", err)
	}

	return generated, nil
}

func (s *Store) Record(name string) error {
	_, err := s.db.Exec(
		`INSERT INTO generated_pages (name, generated_at) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET generated_at = excluded.generated_at`,
		name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}

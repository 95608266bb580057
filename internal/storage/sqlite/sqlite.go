// Package sqlite stores articles in a local SQLite database, one row per
// article plus one row per section. Duplicates are skipped by article id.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/docstream/ingest/internal/article"
	"github.com/docstream/ingest/internal/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id           TEXT PRIMARY KEY,
	source       TEXT,
	published    TEXT,
	publication  TEXT,
	authors      TEXT,
	affiliations TEXT,
	title        TEXT,
	tags         TEXT,
	reference    TEXT,
	entry        TEXT
);
CREATE TABLE IF NOT EXISTS sections (
	article TEXT NOT NULL,
	name    TEXT,
	text    TEXT,
	FOREIGN KEY (article) REFERENCES articles (id)
);
`

type Sink struct {
	db     *sql.DB
	logger *zap.Logger

	saved      int
	duplicates int
}

// Open creates or opens <dir>/<dbname>.sqlite. replace drops any
// existing database first.
func Open(dir, dbname string, replace bool, logger *zap.Logger) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink directory: %w", err)
	}

	path := filepath.Join(dir, dbname+".sqlite")
	if replace {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("replace database: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("sink ready", zap.String("path", path), zap.Bool("replace", replace))
	return &Sink{db: db, logger: logger}, nil
}

// Save inserts the article unless one with the same id was already
// stored in an earlier run or earlier in this run.
func (s *Sink) Save(a *article.Article) error {
	var existing string
	err := s.db.QueryRow(`SELECT entry FROM articles WHERE id = ?`, a.ID).Scan(&existing)
	switch {
	case err == nil:
		s.duplicates++
		metrics.DuplicatesSkippedTotal.Inc()
		s.logger.Debug("duplicate skipped", zap.String("id", a.ID), zap.String("entry", existing))
		return nil
	case err != sql.ErrNoRows:
		return fmt.Errorf("lookup article %s: %w", a.ID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO articles (id, source, published, publication, authors, affiliations, title, tags, reference, entry)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Source, a.Published, a.Publication, a.Authors, a.Affiliations,
		a.Title, a.Tags, a.Reference, a.Entry.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert article %s: %w", a.ID, err)
	}

	for _, section := range a.Sections {
		if _, err := tx.Exec(
			`INSERT INTO sections (article, name, text) VALUES (?, ?, ?)`,
			a.ID, section.Name, section.Text,
		); err != nil {
			return fmt.Errorf("insert section for %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit article %s: %w", a.ID, err)
	}

	s.saved++
	return nil
}

// Complete logs run totals. Saves commit individually, so there is no
// buffered state left to flush.
func (s *Sink) Complete() error {
	s.logger.Info("sink complete",
		zap.Int("saved", s.saved),
		zap.Int("duplicates_skipped", s.duplicates))
	return nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}

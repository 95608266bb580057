// Package storage defines the sink contract and the URL-based factory
// that selects a backend.
package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/article"
	"github.com/docstream/ingest/internal/storage/sqlite"
)

// Sink is durable article storage. Save applies the backend's own
// duplicate-skip policy and is only ever called from the single
// collector goroutine. Complete finalizes buffered state; Close releases
// resources.
type Sink interface {
	Save(a *article.Article) error
	Complete() error
	Close() error
}

// Open selects a backend for url. A bare path or sqlite:// URL is the
// SQLite backend, with the database file placed under that directory.
func Open(url, dbname string, replace bool, logger *zap.Logger) (Sink, error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"), dbname, replace, logger)
	case !strings.Contains(url, "://"):
		return sqlite.Open(url, dbname, replace, logger)
	default:
		return nil, fmt.Errorf("no storage backend for url %q", url)
	}
}

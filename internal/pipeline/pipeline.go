// Package pipeline wires the scanner, worker pool, collector and sink
// into one run.
package pipeline

import (
	"net/http"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/config"
	"github.com/docstream/ingest/internal/dispatch"
	"github.com/docstream/ingest/internal/grobid"
	"github.com/docstream/ingest/internal/parse/pubmed"
	"github.com/docstream/ingest/internal/scan"
	"github.com/docstream/ingest/internal/storage"
	"github.com/docstream/ingest/internal/sysload"
	"github.com/docstream/ingest/internal/worker"
)

// Run executes one full ingestion pass: scan the corpus, size the pool,
// process every file, finalize the sink, wait for the workers.
func Run(cfg *config.Config, logger *zap.Logger) error {
	sink, err := storage.Open(cfg.URL, cfg.DBName, cfg.Replace, logger)
	if err != nil {
		return err
	}

	if cfg.XMLDir != "" {
		if err := os.MkdirAll(cfg.XMLDir, 0o755); err != nil {
			sink.Close()
			return err
		}
	}

	items, err := scan.Scan(cfg.InDir, logger)
	if err != nil {
		sink.Close()
		return err
	}

	workers := workerCount(len(items))
	logAdvisory(workers, logger)

	converter := grobid.New(
		cfg.GrobidURL,
		cfg.GrobidDelay,
		cfg.XMLDir,
		&http.Client{Timeout: cfg.HTTPTimeout},
		logger,
	)
	dispatcher := dispatch.New(converter, pubmed.Options{ArtifactDir: cfg.XMLDir}, logger)

	pool := worker.NewPool(workers, cfg.ResultQueueSize, dispatcher, logger)
	pool.Start(items)

	if err := pool.Collect(sink); err != nil {
		sink.Close()
		return err
	}

	if err := sink.Complete(); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	return pool.Wait()
}

// workerCount is min(total items, logical cores); an empty corpus starts
// no workers at all.
func workerCount(total int) int {
	cores := runtime.NumCPU()
	if total < cores {
		return total
	}
	return cores
}

// logAdvisory logs which cores the workers would land on if placement
// were enforced. Purely informational: nothing is pinned, and sizing by
// core count stands on its own when sampling is unavailable.
func logAdvisory(workers int, logger *zap.Logger) {
	ranking, err := sysload.NewAdvisor().RankCoresByBusyness()
	if err != nil {
		logger.Warn("cpu usage sampling unavailable, sizing by core count only", zap.Error(err))
		logger.Info("starting workers", zap.Int("workers", workers))
		return
	}
	if workers < len(ranking) {
		ranking = ranking[:workers]
	}
	logger.Info("starting workers",
		zap.Int("workers", workers),
		zap.Ints("advised_cores", ranking))
}

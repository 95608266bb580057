package worker

import (
	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/metrics"
	"github.com/docstream/ingest/internal/storage"
)

// Collect is the single consumer of the pool's result queue. It forwards
// each article to the sink exactly once and returns when every worker
// has signaled completion and the queue is observed empty at that same
// moment, so a record still in flight behind another worker's signal is
// never abandoned.
//
// Sink failures are counted and logged per article; collection keeps
// draining so blocked workers are never deadlocked against a dead
// consumer. The first sink error is returned after the queue empties.
func (p *Pool) Collect(sink storage.Sink) error {
	var firstErr error
	forwarded := 0

	for done := 0; done < p.workers || len(p.results) > 0; {
		res := <-p.results

		if res.done {
			done++
			continue
		}
		if res.article == nil {
			continue
		}

		if err := sink.Save(res.article); err != nil {
			p.logger.Error("sink save failed",
				zap.String("article_id", res.article.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		forwarded++
		metrics.ArticlesSavedTotal.Inc()
	}

	metrics.ActiveWorkers.Set(0)
	p.logger.Info("collection complete", zap.Int("articles", forwarded))
	return firstErr
}

package worker

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docstream/ingest/internal/metrics"
	"github.com/docstream/ingest/internal/scan"
)

// Pool runs a fixed set of workers over a shared work queue and fans
// their articles into one bounded result queue. The result queue is the
// pipeline's only backpressure point: when the collector falls behind,
// publication blocks and each blocked worker stops taking new items.
type Pool struct {
	workers    int
	dispatcher Dispatcher
	results    chan result
	eg         *errgroup.Group
	logger     *zap.Logger
}

// NewPool sizes the result queue at resultQueueSize entries. workers may
// be zero, in which case Start launches nothing and the collector
// terminates immediately.
func NewPool(workers, resultQueueSize int, dispatcher Dispatcher, logger *zap.Logger) *Pool {
	return &Pool{
		workers:    workers,
		dispatcher: dispatcher,
		results:    make(chan result, resultQueueSize),
		logger:     logger,
	}
}

// Start enqueues every item, closes the work queue, and launches the
// workers. The queue buffers the full corpus so enqueueing never blocks;
// the closed channel is the workers' no-more-work sentinel, replacing
// any polled emptiness check.
func (p *Pool) Start(items []scan.Item) {
	work := make(chan scan.Item, len(items))
	for _, item := range items {
		work <- item
	}
	close(work)

	p.eg = &errgroup.Group{}
	for i := 0; i < p.workers; i++ {
		id := i
		p.eg.Go(func() error {
			p.run(id, work)
			return nil
		})
	}

	metrics.ActiveWorkers.Set(float64(p.workers))
}

// run drains the work queue. The completion signal is deferred so it
// fires on every exit path; the collector's termination count must never
// be starved by a failed worker.
func (p *Pool) run(id int, work <-chan scan.Item) {
	defer func() {
		p.results <- result{done: true}
	}()

	for item := range work {
		p.process(id, item)
	}
}

// process isolates one item's dispatch so a malformed file costs only
// its own articles, not the rest of the worker's queue share.
func (p *Pool) process(id int, item scan.Item) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FileFailuresTotal.Inc()
			p.logger.Error("parser panic",
				zap.Int("worker_id", id),
				zap.String("path", item.Path),
				zap.Any("panic", r))
		}
	}()

	articles, err := p.dispatcher.Dispatch(item)
	if err != nil {
		metrics.FileFailuresTotal.Inc()
		p.logger.Error("file processing failed",
			zap.Int("worker_id", id),
			zap.String("path", item.Path),
			zap.Error(err))
		return
	}

	metrics.FilesProcessedTotal.Inc()

	for _, a := range articles {
		if a == nil {
			continue
		}
		p.results <- result{article: a}
	}
	metrics.ResultQueueDepth.Set(float64(len(p.results)))
}

// Wait blocks until every worker goroutine has exited.
func (p *Pool) Wait() error {
	if p.eg == nil {
		return nil
	}
	return p.eg.Wait()
}

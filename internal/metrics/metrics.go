package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// File processing metrics
	FilesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_files_processed_total",
		Help: "Total number of input files dispatched to a parser",
	})

	FileFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_file_failures_total",
		Help: "Total number of files whose dispatch failed",
	})

	// Record throughput metrics
	ArticlesSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_articles_saved_total",
		Help: "Total number of articles forwarded to the sink",
	})

	DuplicatesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_duplicates_skipped_total",
		Help: "Total number of articles the sink skipped as duplicates",
	})

	// Conversion service metrics
	ConversionCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_conversion_calls_total",
		Help: "Total number of document conversion responses received",
	})

	ConversionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_conversion_failures_total",
		Help: "Total number of failed document conversion calls",
	})

	// Worker pool metrics
	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ingest_active_workers",
		Help: "Current number of active workers",
	})

	ResultQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ingest_result_queue_depth",
		Help: "Current depth of the bounded result queue",
	})
)

package worker

import (
	"github.com/docstream/ingest/internal/article"
	"github.com/docstream/ingest/internal/scan"
)

// Dispatcher turns one work item into zero or more articles.
type Dispatcher interface {
	Dispatch(item scan.Item) ([]*article.Article, error)
}

// result is the envelope carried on the bounded result queue: either one
// article or a worker's completion signal, never both.
type result struct {
	article *article.Article
	done    bool
}

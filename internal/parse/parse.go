// Package parse defines the contract shared by the per-format article
// parsers. A parser consumes one input stream and produces zero or more
// articles; returning nothing is a valid outcome, not an error.
package parse

import (
	"io"

	"github.com/docstream/ingest/internal/article"
)

// Parser turns one document stream into articles. source is the display
// name of the originating file and ends up in each article's Source
// field.
type Parser interface {
	Parse(r io.Reader, source string) ([]*article.Article, error)
}

// Func adapts a plain function to the Parser interface.
type Func func(r io.Reader, source string) ([]*article.Article, error)

func (f Func) Parse(r io.Reader, source string) ([]*article.Article, error) {
	return f(r, source)
}

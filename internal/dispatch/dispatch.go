// Package dispatch routes one scanned file to its parser chain. Routing
// is a closed table keyed by format extension and an optional
// case-insensitive filename prefix; prefixed routes are matched before
// the extension's generic route.
package dispatch

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/article"
	"github.com/docstream/ingest/internal/parse"
	"github.com/docstream/ingest/internal/parse/arxiv"
	"github.com/docstream/ingest/internal/parse/csvf"
	"github.com/docstream/ingest/internal/parse/pubmed"
	"github.com/docstream/ingest/internal/parse/tei"
	"github.com/docstream/ingest/internal/scan"
)

// Converter is the external document-conversion step. nil markup with
// nil error means the service declined the document (soft failure).
type Converter interface {
	Convert(r io.Reader, name string) ([]byte, error)
}

type route struct {
	extension string
	prefix    string // empty matches any filename
	parser    parse.Parser
}

type Dispatcher struct {
	routes []route
	logger *zap.Logger
}

// New wires the full routing table: arxiv- and pubmed-prefixed markup to
// their specialized parsers, remaining markup to the generic TEI parser,
// tabular text to the CSV parser, and PDFs through the conversion
// service into the TEI parser.
func New(converter Converter, pubmedOpts pubmed.Options, logger *zap.Logger) *Dispatcher {
	generic := tei.New()
	return &Dispatcher{
		logger: logger,
		routes: []route{
			{extension: "xml", prefix: "arxiv", parser: arxiv.New()},
			{extension: "xml", prefix: "pubmed", parser: pubmed.New(pubmedOpts)},
			{extension: "xml", parser: generic},
			{extension: "csv", parser: csvf.New()},
			{extension: "pdf", parser: &convertChain{converter: converter, next: generic, logger: logger}},
		},
	}
}

// Dispatch opens the item, unwrapping one compression layer if needed,
// and runs the first matching route. Zero articles is a normal outcome.
func (d *Dispatcher) Dispatch(item scan.Item) ([]*article.Article, error) {
	parser := d.match(item)
	if parser == nil {
		// Scanner only emits recognized extensions; this is a wiring bug.
		return nil, fmt.Errorf("no parser for %s", item.Path)
	}

	f, err := os.Open(item.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if item.Compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", item.Path, err)
		}
		defer gz.Close()
		r = gz
	}

	d.logger.Info("processing", zap.String("path", item.Path))
	return parser.Parse(r, item.Name)
}

func (d *Dispatcher) match(item scan.Item) parse.Parser {
	name := strings.ToLower(item.Name)
	for _, rt := range d.routes {
		if rt.extension != item.Extension {
			continue
		}
		if rt.prefix != "" && !strings.HasPrefix(name, rt.prefix) {
			continue
		}
		return rt.parser
	}
	return nil
}

// convertChain converts a binary document to markup before handing it
// to the markup parser. A declined conversion yields no articles.
type convertChain struct {
	converter Converter
	next      parse.Parser
	logger    *zap.Logger
}

func (c *convertChain) Parse(r io.Reader, source string) ([]*article.Article, error) {
	markup, err := c.converter.Convert(r, source)
	if err != nil {
		return nil, err
	}
	if markup == nil {
		return nil, nil
	}
	return c.next.Parse(bytes.NewReader(markup), source)
}

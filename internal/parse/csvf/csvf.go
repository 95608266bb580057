// Package csvf parses tabular article exports. The first row is a
// header; each following row maps to at most one article. Rows without a
// title produce nothing.
package csvf

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docstream/ingest/internal/article"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Parse(r io.Reader, source string) ([]*article.Article, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var articles []*article.Article
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		title := field("title")
		if title == "" {
			continue
		}

		id := field("id")
		if id == "" {
			id = article.UID(title)
		}

		a := &article.Article{
			ID:          id,
			Source:      source,
			Published:   field("published"),
			Publication: field("publication"),
			Authors:     field("authors"),
			Title:       title,
			Tags:        field("tags"),
			Reference:   field("reference"),
			Entry:       time.Now().UTC(),
		}
		if abstract := field("abstract"); abstract != "" {
			a.Sections = append(a.Sections, article.Section{Name: "ABSTRACT", Text: abstract})
		}

		articles = append(articles, a)
	}

	return articles, nil
}

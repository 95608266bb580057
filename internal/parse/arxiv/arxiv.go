// Package arxiv parses arXiv metadata feeds: Atom-style documents
// holding many <entry> elements. Extraction is selector-based; the Atom
// vocabulary has no tag names the HTML tokenizer treats specially, so
// entries survive the permissive parse intact.
package arxiv

import (
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/docstream/ingest/internal/article"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Parse(r io.Reader, source string) ([]*article.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var articles []*article.Article
	doc.Find("entry").Each(func(_ int, entry *goquery.Selection) {
		if a := parseEntry(entry, source); a != nil {
			articles = append(articles, a)
		}
	})

	return articles, nil
}

func parseEntry(entry *goquery.Selection, source string) *article.Article {
	title := text(entry.Find("title").First())
	if title == "" {
		return nil
	}

	id := text(entry.Find("id").First())
	if id == "" {
		id = article.UID(title)
	}

	var authors []string
	entry.Find("author name").Each(func(_ int, name *goquery.Selection) {
		if n := text(name); n != "" {
			authors = append(authors, n)
		}
	})

	var tags []string
	entry.Find("category").Each(func(_ int, category *goquery.Selection) {
		if term := category.AttrOr("term", ""); term != "" {
			tags = append(tags, term)
		}
	})

	a := &article.Article{
		ID:        id,
		Source:    source,
		Published: text(entry.Find("published").First()),
		Authors:   strings.Join(authors, "; "),
		Title:     title,
		Tags:      strings.Join(tags, "; "),
		Entry:     time.Now().UTC(),
	}
	if summary := text(entry.Find("summary").First()); summary != "" {
		a.Sections = append(a.Sections, article.Section{Name: "ABSTRACT", Text: summary})
	}
	return a
}

func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

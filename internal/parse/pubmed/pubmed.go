// Package pubmed parses PubMed baseline exports. One file holds many
// PubmedArticle citations, decoded off the token stream one at a time.
package pubmed

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docstream/ingest/internal/article"
)

// Options is the shared read-only parser configuration. ArtifactDir, if
// set, receives one XML fragment per parsed citation for audit.
type Options struct {
	ArtifactDir string
}

type Parser struct {
	opts Options
}

func New(opts Options) *Parser { return &Parser{opts: opts} }

type citation struct {
	XMLName xml.Name `xml:"PubmedArticle"`
	PMID    string   `xml:"MedlineCitation>PMID"`
	Title   string   `xml:"MedlineCitation>Article>ArticleTitle"`
	Journal string   `xml:"MedlineCitation>Article>Journal>Title"`
	Year    string   `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
	Authors []struct {
		LastName string `xml:"LastName"`
		ForeName string `xml:"ForeName"`
		Affils   []struct {
			Name string `xml:"Affiliation"`
		} `xml:"AffiliationInfo"`
	} `xml:"MedlineCitation>Article>AuthorList>Author"`
	Abstract []string `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Mesh     []string `xml:"MedlineCitation>MeshHeadingList>MeshHeading>DescriptorName"`
}

func (p *Parser) Parse(r io.Reader, source string) ([]*article.Article, error) {
	decoder := xml.NewDecoder(r)

	var articles []*article.Article
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pubmed decode: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "PubmedArticle" {
			continue
		}

		var c citation
		if err := decoder.DecodeElement(&c, &start); err != nil {
			return nil, fmt.Errorf("pubmed citation: %w", err)
		}

		a := c.article(source)
		if a == nil {
			continue
		}

		if p.opts.ArtifactDir != "" {
			if err := p.persist(&c); err != nil {
				return nil, err
			}
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// persist writes the decoded citation back out as a standalone fragment.
func (p *Parser) persist(c *citation) error {
	data, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("pubmed artifact %s: %w", c.PMID, err)
	}
	path := filepath.Join(p.opts.ArtifactDir, c.PMID+".xml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pubmed artifact %s: %w", c.PMID, err)
	}
	return nil
}

func (c *citation) article(source string) *article.Article {
	title := collapse(c.Title)
	if title == "" {
		return nil
	}

	id := strings.TrimSpace(c.PMID)
	if id == "" {
		id = article.UID(title)
	}

	var authors, affiliations []string
	for _, a := range c.Authors {
		name := strings.TrimSpace(a.LastName)
		if fore := strings.TrimSpace(a.ForeName); fore != "" && name != "" {
			name = name + ", " + fore
		}
		if name != "" {
			authors = append(authors, name)
		}
		for _, af := range a.Affils {
			if aff := collapse(af.Name); aff != "" {
				affiliations = append(affiliations, aff)
			}
		}
	}

	out := &article.Article{
		ID:           id,
		Source:       source,
		Published:    strings.TrimSpace(c.Year),
		Publication:  collapse(c.Journal),
		Authors:      strings.Join(authors, "; "),
		Affiliations: strings.Join(affiliations, "; "),
		Title:        title,
		Tags:         strings.Join(c.Mesh, "; "),
		Entry:        time.Now().UTC(),
	}
	if abstract := collapse(strings.Join(c.Abstract, " ")); abstract != "" {
		out.Sections = append(out.Sections, article.Section{Name: "ABSTRACT", Text: abstract})
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Package tei parses TEI XML, the generic markup family. GROBID emits
// this format for converted PDFs and it is also the default route for
// markup files without a specialized source prefix. One document yields
// at most one article.
package tei

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docstream/ingest/internal/article"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

// flatText collects all character data under an element, including text
// inside nested inline markup (<hi>, <ref> and friends).
type flatText string

func (t *flatText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for depth := 1; depth > 0; {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch v := token.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(v)
		}
	}
	*t = flatText(sb.String())
	return nil
}

type document struct {
	XMLName xml.Name `xml:"TEI"`
	Title   flatText `xml:"teiHeader>fileDesc>titleStmt>title"`
	Date    struct {
		When string `xml:"when,attr"`
	} `xml:"teiHeader>fileDesc>publicationStmt>date"`
	Authors []struct {
		PersName struct {
			Forename flatText `xml:"forename"`
			Surname  flatText `xml:"surname"`
		} `xml:"persName"`
		Affiliations []struct {
			OrgNames []flatText `xml:"orgName"`
		} `xml:"affiliation"`
	} `xml:"teiHeader>fileDesc>sourceDesc>biblStruct>analytic>author"`
	IDNos []struct {
		Type  string `xml:"type,attr"`
		Value string `xml:",chardata"`
	} `xml:"teiHeader>fileDesc>sourceDesc>biblStruct>analytic>idno"`
	Abstract flatText `xml:"teiHeader>profileDesc>abstract"`
	Divs     []struct {
		Head       flatText   `xml:"head"`
		Paragraphs []flatText `xml:"p"`
	} `xml:"text>body>div"`
}

func (p *Parser) Parse(r io.Reader, source string) ([]*article.Article, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("tei decode: %w", err)
	}

	title := collapse(string(doc.Title))
	if title == "" {
		// Nothing identifiable to key the record on.
		return nil, nil
	}

	a := &article.Article{
		ID:        doc.identifier(title),
		Source:    source,
		Published: doc.Date.When,
		Title:     title,
		Entry:     time.Now().UTC(),
	}

	var authors, affiliations []string
	for _, au := range doc.Authors {
		surname := collapse(string(au.PersName.Surname))
		forename := collapse(string(au.PersName.Forename))
		switch {
		case surname != "" && forename != "":
			authors = append(authors, surname+", "+forename)
		case surname != "":
			authors = append(authors, surname)
		case forename != "":
			authors = append(authors, forename)
		}
		for _, affil := range au.Affiliations {
			for _, org := range affil.OrgNames {
				if name := collapse(string(org)); name != "" {
					affiliations = append(affiliations, name)
				}
			}
		}
	}
	a.Authors = strings.Join(dedup(authors), "; ")
	a.Affiliations = strings.Join(dedup(affiliations), "; ")

	if abstract := collapse(string(doc.Abstract)); abstract != "" {
		a.Sections = append(a.Sections, article.Section{Name: "ABSTRACT", Text: abstract})
	}

	for _, div := range doc.Divs {
		var parts []string
		for _, paragraph := range div.Paragraphs {
			if text := collapse(string(paragraph)); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) == 0 {
			continue
		}
		name := strings.ToUpper(collapse(string(div.Head)))
		if name == "" {
			name = "BODY"
		}
		a.Sections = append(a.Sections, article.Section{Name: name, Text: strings.Join(parts, " ")})
	}

	return []*article.Article{a}, nil
}

// identifier prefers an explicit DOI, falling back to a title hash.
func (doc *document) identifier(title string) string {
	for _, idno := range doc.IDNos {
		if strings.EqualFold(idno.Type, "doi") {
			if value := collapse(idno.Value); value != "" {
				return value
			}
		}
	}
	return article.UID(title)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

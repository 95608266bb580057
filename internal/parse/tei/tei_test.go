package tei

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title level="a" type="main">Deep Learning for Protein Folding</title>
      </titleStmt>
      <publicationStmt>
        <date type="published" when="2024-03-15">15 March 2024</date>
      </publicationStmt>
      <sourceDesc>
        <biblStruct>
          <analytic>
            <author>
              <persName><forename type="first">Ada</forename><surname>Lovelace</surname></persName>
              <affiliation><orgName type="institution">Analytical Institute</orgName></affiliation>
            </author>
            <author>
              <persName><forename type="first">Alan</forename><surname>Turing</surname></persName>
              <affiliation><orgName type="institution">Analytical Institute</orgName></affiliation>
            </author>
            <idno type="DOI">10.1000/xyz123</idno>
          </analytic>
        </biblStruct>
      </sourceDesc>
    </fileDesc>
    <profileDesc>
      <abstract><p>We fold proteins with networks.</p></abstract>
    </profileDesc>
  </teiHeader>
  <text>
    <body>
      <div><head>Introduction</head><p>Proteins are complicated.</p><p>Very complicated.</p></div>
      <div><head>Methods</head><p>We used a large model.</p></div>
    </body>
  </text>
</TEI>`

func TestParse(t *testing.T) {
	articles, err := New().Parse(strings.NewReader(doc), "paper.pdf")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	a := articles[0]

	assert.Equal(t, "10.1000/xyz123", a.ID)
	assert.Equal(t, "paper.pdf", a.Source)
	assert.Equal(t, "Deep Learning for Protein Folding", a.Title)
	assert.Equal(t, "2024-03-15", a.Published)
	assert.Equal(t, "Lovelace, Ada; Turing, Alan", a.Authors)
	assert.Equal(t, "Analytical Institute", a.Affiliations)
	assert.False(t, a.Entry.IsZero())

	require.Len(t, a.Sections, 3)
	assert.Equal(t, "ABSTRACT", a.Sections[0].Name)
	assert.Equal(t, "We fold proteins with networks.", a.Sections[0].Text)
	assert.Equal(t, "INTRODUCTION", a.Sections[1].Name)
	assert.Equal(t, "Proteins are complicated. Very complicated.", a.Sections[1].Text)
	assert.Equal(t, "METHODS", a.Sections[2].Name)
}

func TestParseNoTitle(t *testing.T) {
	articles, err := New().Parse(strings.NewReader(`<TEI><teiHeader/></TEI>`), "empty.xml")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestParseNoDOIFallsBackToTitleHash(t *testing.T) {
	minimal := `<TEI><teiHeader><fileDesc><titleStmt><title>Only A Title</title></titleStmt></fileDesc></teiHeader></TEI>`

	first, err := New().Parse(strings.NewReader(minimal), "a.xml")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := New().Parse(strings.NewReader(minimal), "b.xml")
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Hash of the title: stable across files and reruns.
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Len(t, first[0].ID, 40)
}

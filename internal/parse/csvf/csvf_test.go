package csvf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := `id,title,published,publication,authors,abstract,tags
doc-1,Findings About Mice,2020-01-02,Mouse Journal,"Smith, J",Mice were studied.,rodents
doc-2,Findings About Rats,2020-02-03,Rat Journal,"Jones, K",,rodents
`
	articles, err := New().Parse(strings.NewReader(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "doc-1", first.ID)
	assert.Equal(t, "export.csv", first.Source)
	assert.Equal(t, "Findings About Mice", first.Title)
	assert.Equal(t, "2020-01-02", first.Published)
	assert.Equal(t, "Mouse Journal", first.Publication)
	assert.Equal(t, "Smith, J", first.Authors)
	assert.Equal(t, "rodents", first.Tags)
	require.Len(t, first.Sections, 1)
	assert.Equal(t, "ABSTRACT", first.Sections[0].Name)

	// Empty abstract yields no section.
	assert.Empty(t, articles[1].Sections)
}

func TestParseRowWithoutTitleSkipped(t *testing.T) {
	data := "id,title\nrow-1,\nrow-2,Kept Title\n"
	articles, err := New().Parse(strings.NewReader(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Kept Title", articles[0].Title)
}

func TestParseMissingIDDerivedFromTitle(t *testing.T) {
	data := "title\nOnly A Title\n"
	articles, err := New().Parse(strings.NewReader(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Len(t, articles[0].ID, 40)
}

func TestParseEmptyFile(t *testing.T) {
	articles, err := New().Parse(strings.NewReader(""), "export.csv")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestParseHeaderOnly(t *testing.T) {
	articles, err := New().Parse(strings.NewReader("id,title\n"), "export.csv")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestParseRaggedRows(t *testing.T) {
	// Rows shorter than the header are tolerated.
	data := "id,title,tags\nd1,Title One\n"
	articles, err := New().Parse(strings.NewReader(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Empty(t, articles[0].Tags)
}

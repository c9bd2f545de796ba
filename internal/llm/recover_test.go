package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONCandidate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"brace span beats prose", "prefix {\"a\":1} suffix", `{"a":1}`},
		{"brace span inside fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"nested objects keep outer span", "x {\"a\":{\"b\":2}} y", `{"a":{"b":2}}`},
		{"prose brace before json", "use {braces} like {\"a\":1}", `{braces} like {"a":1}`},
		{"no braces no fences", "I could not find that book.", "{}"},
		{"empty text", "", "{}"},
		{"fence only", "```json\n[1,2]\n```", "[1,2]"},
		{"bare fence only", "```\nnull\n```", "null"},
		{"closing before opening", "} then {", "{}"},
		{"closing before opening with fence", "```} then {```", "} then {"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSONCandidate(tc.text))
		})
	}
}

func TestRecoverDocumentOverwritesSources(t *testing.T) {
	text := `Here you go: {"title":"Dune","author":"Frank Herbert","publicationYear":1965,"sources":["https://model.invented"]}`
	doc, err := RecoverDocument(text, []string{"https://a.example/1", "https://b.example/2"})
	require.NoError(t, err)
	assert.Equal(t, "Dune", doc.Title)
	assert.Equal(t, "1965", doc.PublicationYear.String())
	assert.Equal(t, []string{"https://a.example/1", "https://b.example/2"}, doc.Sources)
}

func TestRecoverDocumentEmptyReplyYieldsBlankDocument(t *testing.T) {
	doc, err := RecoverDocument("", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Title)
	assert.NotNil(t, doc.Sources)
	assert.Empty(t, doc.Sources)
}

func TestRecoverDocumentPropagatesDecodeErrors(t *testing.T) {
	_, err := RecoverDocument(`{"title": "Dune", "author": }`, nil)
	require.Error(t, err)

	_, err = RecoverDocument("```json\n[1,2]\n```", nil)
	require.Error(t, err)
}

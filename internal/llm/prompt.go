package llm

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/infographic.tmpl
var infographicPromptText string

var infographicPrompt = template.Must(template.New("infographic").Parse(infographicPromptText))

type promptInput struct {
	Title  string
	Author string
}

// BuildPrompt interpolates title and author verbatim into the analysis
// prompt. Inputs are not escaped.
func BuildPrompt(title, author string) string {
	var b strings.Builder
	// The template has no fallible actions; Execute only fails on writer errors.
	_ = infographicPrompt.Execute(&b, promptInput{Title: title, Author: author})
	return b.String()
}

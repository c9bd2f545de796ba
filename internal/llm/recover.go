package llm

import (
	"encoding/json"
	"strings"

	"github.com/csheth/bookdeck/internal/infographic"
)

const emptyObject = "{}"

var fenceMarkers = []string{"```json", "```"}

// ExtractJSONCandidate picks the text to decode from a model reply. The span
// from the first '{' to the last '}' wins when both exist in that order.
// Otherwise fence markers are stripped, and with no fences the result is "{}".
func ExtractJSONCandidate(text string) string {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		return text[first : last+1]
	}
	if hasFence(text) {
		stripped := text
		for _, marker := range fenceMarkers {
			stripped = strings.ReplaceAll(stripped, marker, "")
		}
		return strings.TrimSpace(stripped)
	}
	return emptyObject
}

func hasFence(text string) bool {
	for _, marker := range fenceMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// RecoverDocument decodes the candidate from text and replaces its sources
// with the grounding list. Decode errors are returned as-is.
func RecoverDocument(text string, sources []string) (*infographic.Document, error) {
	var doc infographic.Document
	if err := json.Unmarshal([]byte(ExtractJSONCandidate(text)), &doc); err != nil {
		return nil, err
	}
	doc.Sources = append([]string{}, sources...)
	return &doc, nil
}

// Package infographic holds the document recovered from a model response.
package infographic

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Document is the structured analysis of one book. Fields are trusted as
// emitted by the model; any of them may be empty.
type Document struct {
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	Tagline         string       `json:"tagline"`
	Summary         string       `json:"summary"`
	PublicationYear Text         `json:"publicationYear"`
	Genre           string       `json:"genre"`
	TargetAudience  string       `json:"targetAudience"`
	Characters      []Character  `json:"characters"`
	KeyConcepts     []KeyConcept `json:"keyConcepts"`
	PlotArc         []PlotStage  `json:"plotArc"`
	Themes          []Theme      `json:"themes"`
	KeyQuote        string       `json:"keyQuote"`
	Takeaways       []string     `json:"takeaways"`
	Sources         []string     `json:"sources"`
}

type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type KeyConcept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Icon       string `json:"icon,omitempty"`
}

type PlotStage struct {
	Stage       string `json:"stage"`
	Description string `json:"description"`
}

type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorHex    string `json:"colorHex"`
}

const (
	maxCharacters = 4
	plotColumns   = 4
	maxThemes     = 3
	conceptsPer   = 2
)

// Text is a free-text scalar that also accepts bare JSON numbers and
// booleans, keeping their literal spelling. null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Text(raw)
	return nil
}

func (t Text) String() string { return string(t) }

// SourceDomain is the host of the first source URL, or "" when there are no
// sources or the first one does not parse to a host.
func (d *Document) SourceDomain() string {
	if d == nil || len(d.Sources) == 0 {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(d.Sources[0]))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// LeadCharacters returns at most the first four characters.
func (d *Document) LeadCharacters() []Character {
	return headOf(d.Characters, maxCharacters)
}

// PlotTrack returns at most the first four plot stages.
func (d *Document) PlotTrack() []PlotStage {
	return headOf(d.PlotArc, plotColumns)
}

// LeadThemes returns at most the first three themes.
func (d *Document) LeadThemes() []Theme {
	return headOf(d.Themes, maxThemes)
}

// ConceptGroup returns concepts 2n and 2n+1, whichever exist.
func (d *Document) ConceptGroup(n int) []KeyConcept {
	start := n * conceptsPer
	if n < 0 || start >= len(d.KeyConcepts) {
		return nil
	}
	end := start + conceptsPer
	if end > len(d.KeyConcepts) {
		end = len(d.KeyConcepts)
	}
	return d.KeyConcepts[start:end]
}

func headOf[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}

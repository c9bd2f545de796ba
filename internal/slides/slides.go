// Package slides maps an infographic document onto ten fixed slide layouts.
package slides

import (
	"fmt"
	"strings"

	"github.com/csheth/bookdeck/internal/infographic"
)

// Count is the fixed number of slides in a deck.
const Count = 10

type Kind int

const (
	KindCover Kind = iota
	KindThesis
	KindAudience
	KindCharacters
	KindPlotArc
	KindThemes
	KindConcepts
	KindQuote
	KindTakeaways
)

var kindNames = map[Kind]string{
	KindCover:      "cover",
	KindThesis:     "thesis",
	KindAudience:   "audience",
	KindCharacters: "characters",
	KindPlotArc:    "plot-arc",
	KindThemes:     "themes",
	KindConcepts:   "concepts",
	KindQuote:      "quote",
	KindTakeaways:  "takeaways",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Item is one card on a slide: a character, concept, plot stage or theme.
type Item struct {
	Label  string
	Title  string
	Body   string
	Icon   string
	Accent string
}

// Slide is a layout-neutral description of one page.
type Slide struct {
	Index      int
	Kind       Kind
	Kicker     string
	Heading    string
	Subheading string
	Body       string
	Items      []Item
	Bullets    []string
	Footer     string
}

// Clamp pins index into 0..Count-1.
func Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index >= Count {
		return Count - 1
	}
	return index
}

// All builds every slide in order.
func All(doc *infographic.Document) []Slide {
	out := make([]Slide, Count)
	for i := range out {
		out[i] = Build(doc, i)
	}
	return out
}

// Build renders slide index of doc. Out-of-range indices are clamped and a
// nil document yields empty slides.
func Build(doc *infographic.Document, index int) Slide {
	if doc == nil {
		doc = &infographic.Document{}
	}
	index = Clamp(index)
	s := Slide{Index: index}
	switch index {
	case 0:
		s.Kind = KindCover
		s.Kicker = "A deep analysis"
		s.Heading = doc.Title
		s.Subheading = byline(doc)
		s.Body = doc.Tagline
	case 1:
		s.Kind = KindThesis
		s.Kicker = "The big picture"
		s.Heading = "Summary"
		s.Body = doc.Summary
	case 2:
		s.Kind = KindAudience
		s.Kicker = "Who it is for"
		s.Heading = "Audience & Genre"
		s.Items = []Item{
			{Label: "Genre", Title: doc.Genre},
			{Label: "Published", Title: doc.PublicationYear.String()},
			{Label: "Target audience", Body: doc.TargetAudience},
		}
	case 3:
		s.Kind = KindCharacters
		s.Kicker = "Cast"
		s.Heading = "Key Characters"
		for _, c := range doc.LeadCharacters() {
			s.Items = append(s.Items, Item{Label: c.Role, Title: c.Name, Body: c.Description, Icon: c.Icon})
		}
	case 4:
		s.Kind = KindPlotArc
		s.Kicker = "Structure"
		s.Heading = "Plot Arc"
		for i, p := range doc.PlotTrack() {
			s.Items = append(s.Items, Item{Label: fmt.Sprintf("%02d", i+1), Title: p.Stage, Body: p.Description})
		}
	case 5:
		s.Kind = KindThemes
		s.Kicker = "What it explores"
		s.Heading = "Core Themes"
		for _, th := range doc.LeadThemes() {
			s.Items = append(s.Items, Item{Title: th.Name, Body: th.Description, Accent: th.ColorHex})
		}
	case 6, 7:
		group := index - 6
		s.Kind = KindConcepts
		s.Kicker = fmt.Sprintf("Key concepts %d/2", group+1)
		s.Heading = "Ideas to Know"
		for _, c := range doc.ConceptGroup(group) {
			s.Items = append(s.Items, Item{Title: c.Term, Body: c.Definition, Icon: c.Icon})
		}
	case 8:
		s.Kind = KindQuote
		s.Kicker = "In their words"
		s.Heading = doc.KeyQuote
		s.Subheading = quoteAttribution(doc)
	case 9:
		s.Kind = KindTakeaways
		s.Kicker = "Leave with this"
		s.Heading = "Key Takeaways"
		s.Bullets = append([]string(nil), doc.Takeaways...)
		if domain := doc.SourceDomain(); domain != "" {
			s.Footer = "Research grounded via " + domain
		}
	}
	return s
}

func byline(doc *infographic.Document) string {
	parts := []string{}
	if doc.Author != "" {
		parts = append(parts, "by "+doc.Author)
	}
	if year := strings.TrimSpace(doc.PublicationYear.String()); year != "" {
		parts = append(parts, year)
	}
	return strings.Join(parts, " · ")
}

func quoteAttribution(doc *infographic.Document) string {
	if doc.Author == "" {
		return doc.Title
	}
	if doc.Title == "" {
		return "— " + doc.Author
	}
	return fmt.Sprintf("— %s, %s", doc.Author, doc.Title)
}

package slides

import "github.com/csheth/bookdeck/internal/infographic"

// Deck tracks the slide currently shown for a document.
type Deck struct {
	doc     *infographic.Document
	current int
}

func NewDeck(doc *infographic.Document) *Deck {
	return &Deck{doc: doc}
}

func (d *Deck) Document() *infographic.Document { return d.doc }

func (d *Deck) Index() int { return d.current }

func (d *Deck) Current() Slide { return Build(d.doc, d.current) }

// Next advances one slide; it stops at the last slide.
func (d *Deck) Next() bool { return d.Go(d.current + 1) }

// Prev moves back one slide; it stops at the first slide.
func (d *Deck) Prev() bool { return d.Go(d.current - 1) }

// Go jumps to index, clamped. It reports whether the slide changed.
func (d *Deck) Go(index int) bool {
	index = Clamp(index)
	if index == d.current {
		return false
	}
	d.current = index
	return true
}

func (d *Deck) AtStart() bool { return d.current == 0 }

func (d *Deck) AtEnd() bool { return d.current == Count-1 }

package render

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"

	"github.com/csheth/bookdeck/internal/slides"
)

const (
	margin       = 64.0
	contentWidth = Width - 2*margin
	gutter       = 16.0
	bodyTop      = 170.0
	bodyBottom   = Height - 72.0
)

func drawSlide(c *canvas, s slides.Slide) {
	c.fill(0, 0, Width, 6, 0, colorKicker)
	switch s.Kind {
	case slides.KindCover:
		drawCover(c, s)
	case slides.KindQuote:
		drawQuote(c, s)
	default:
		drawHeader(c, s)
		switch s.Kind {
		case slides.KindThesis:
			c.text(s.Body, margin, bodyTop, contentWidth, textStyle{size: 19, color: colorText, spacing: 1.5, maxLines: 12})
		case slides.KindAudience:
			drawAudience(c, s)
		case slides.KindCharacters:
			drawCards(c, s.Items, 4, 13)
		case slides.KindPlotArc:
			drawPlotArc(c, s.Items)
		case slides.KindThemes:
			drawThemes(c, s.Items)
		case slides.KindConcepts:
			drawCards(c, s.Items, 2, 9)
		case slides.KindTakeaways:
			drawTakeaways(c, s.Bullets)
		}
	}
	drawChrome(c, s)
}

func drawHeader(c *canvas, s slides.Slide) {
	c.text(strings.ToUpper(s.Kicker), margin, 52, contentWidth, textStyle{size: 13, style: styleBold, color: colorKicker})
	c.text(s.Heading, margin, 78, contentWidth, textStyle{size: 36, style: styleBold, color: colorText, maxLines: 1})
}

func drawChrome(c *canvas, s slides.Slide) {
	page := fmt.Sprintf("%d / %d", s.Index+1, slides.Count)
	c.text(page, margin, Height-44, contentWidth, textStyle{size: 12, color: colorFaint, align: gg.AlignRight})
	if s.Footer != "" {
		c.text(s.Footer, margin, Height-44, contentWidth-120, textStyle{size: 12, style: styleItalic, color: colorMuted, maxLines: 1})
	}
}

func drawCover(c *canvas, s slides.Slide) {
	c.dot(Width-120, 120, 180, colorSurface)
	c.dot(Width-120, 120, 110, "#172554")
	c.text(strings.ToUpper(s.Kicker), margin, 140, contentWidth, textStyle{size: 14, style: styleBold, color: colorKicker})
	h := c.text(s.Heading, margin, 170, contentWidth-160, textStyle{size: 58, style: styleBold, color: colorText, spacing: 1.1, maxLines: 3})
	y := 170 + h + 12
	y += c.text(s.Subheading, margin, y, contentWidth, textStyle{size: 22, color: colorMuted, maxLines: 1}) + 28
	if s.Body != "" {
		c.fill(margin, y, 4, 56, 0, colorKicker)
		c.text(s.Body, margin+20, y+4, contentWidth-140, textStyle{size: 22, style: styleItalic, color: colorText, maxLines: 2})
	}
}

func drawQuote(c *canvas, s slides.Slide) {
	c.text(strings.ToUpper(s.Kicker), margin, 72, contentWidth, textStyle{size: 13, style: styleBold, color: colorKicker, align: gg.AlignCenter})
	c.text("“", margin, 96, contentWidth, textStyle{size: 96, style: styleBold, color: "#1d4ed8", align: gg.AlignCenter})
	h := c.text(s.Heading, margin+48, 210, contentWidth-96, textStyle{size: 30, style: styleItalic, color: colorText, align: gg.AlignCenter, spacing: 1.4, maxLines: 5})
	c.text(s.Subheading, margin, 210+h+24, contentWidth, textStyle{size: 16, color: colorMuted, align: gg.AlignCenter, maxLines: 1})
}

func drawAudience(c *canvas, s slides.Slide) {
	half := (contentWidth - gutter) / 2
	for i, item := range s.Items {
		var x, y, w, h float64
		switch i {
		case 0, 1:
			x, y, w, h = margin+float64(i)*(half+gutter), bodyTop, half, 96
		default:
			x, y, w, h = margin, bodyTop+96+gutter, contentWidth, bodyBottom-(bodyTop+96+gutter)
		}
		c.fill(x, y, w, h, 12, colorSurface)
		c.text(strings.ToUpper(item.Label), x+20, y+18, w-40, textStyle{size: 12, style: styleBold, color: accentFor(item.Accent, i)})
		if item.Title != "" {
			c.text(item.Title, x+20, y+42, w-40, textStyle{size: 24, style: styleBold, color: colorText, maxLines: 1})
		}
		if item.Body != "" {
			c.text(item.Body, x+20, y+44, w-40, textStyle{size: 18, color: colorText, spacing: 1.45, maxLines: 5})
		}
	}
}

// drawCards lays items out in equal columns. Concepts use two wide cards,
// characters four narrow ones.
func drawCards(c *canvas, items []slides.Item, columns, bodyLines int) {
	if len(items) == 0 {
		return
	}
	w := (contentWidth - gutter*float64(columns-1)) / float64(columns)
	h := bodyBottom - bodyTop
	titleSize := 20.0
	if columns <= 2 {
		titleSize = 26
	}
	for i, item := range items {
		if i >= columns {
			break
		}
		x := margin + float64(i)*(w+gutter)
		accent := accentFor(item.Accent, i)
		c.fill(x, bodyTop, w, h, 14, colorSurface)
		c.fill(x, bodyTop, w, 4, 0, accent)
		y := bodyTop + 22
		if item.Label != "" {
			y += c.text(strings.ToUpper(item.Label), x+18, y, w-36, textStyle{size: 11, style: styleBold, color: accent, maxLines: 1}) + 6
		}
		y += c.text(item.Title, x+18, y, w-36, textStyle{size: titleSize, style: styleBold, color: colorText, maxLines: 2}) + 10
		c.text(item.Body, x+18, y, w-36, textStyle{size: 15, color: colorMuted, spacing: 1.45, maxLines: bodyLines})
	}
}

func drawPlotArc(c *canvas, items []slides.Item) {
	const columns = 4
	w := (contentWidth - gutter*(columns-1)) / columns
	trackY := bodyTop + 24
	c.line(margin+w/2, trackY, margin+contentWidth-w/2, trackY, 3, colorBorder)
	for i := 0; i < columns; i++ {
		x := margin + float64(i)*(w+gutter)
		accent := palette[i%len(palette)]
		c.dot(x+w/2, trackY, 14, accent)
		if i >= len(items) {
			continue
		}
		item := items[i]
		c.text(item.Label, x, trackY-8, w, textStyle{size: 12, style: styleBold, color: Background, align: gg.AlignCenter})
		y := trackY + 36
		y += c.text(item.Title, x, y, w, textStyle{size: 20, style: styleBold, color: colorText, align: gg.AlignCenter, maxLines: 2}) + 10
		c.text(item.Body, x, y, w, textStyle{size: 15, color: colorMuted, align: gg.AlignCenter, spacing: 1.45, maxLines: 9})
	}
}

func drawThemes(c *canvas, items []slides.Item) {
	if len(items) == 0 {
		return
	}
	const columns = 3
	w := (contentWidth - gutter*(columns-1)) / columns
	h := bodyBottom - bodyTop
	for i, item := range items {
		x := margin + float64(i)*(w+gutter)
		accent := accentFor(item.Accent, i)
		c.fill(x, bodyTop, w, h, 14, colorSurface)
		c.stroke(x, bodyTop, w, h, 14, 2, accent)
		c.dot(x+34, bodyTop+40, 12, accent)
		y := bodyTop + 72
		y += c.text(item.Title, x+22, y, w-44, textStyle{size: 24, style: styleBold, color: colorText, maxLines: 2}) + 10
		c.text(item.Body, x+22, y, w-44, textStyle{size: 16, color: colorMuted, spacing: 1.45, maxLines: 8})
	}
}

func drawTakeaways(c *canvas, bullets []string) {
	y := bodyTop - 10
	for i, b := range bullets {
		if y > bodyBottom-30 {
			break
		}
		accent := palette[i%len(palette)]
		c.fill(margin, y, 32, 32, 8, accent)
		c.text(fmt.Sprintf("%d", i+1), margin, y+7, 32, textStyle{size: 15, style: styleBold, color: Background, align: gg.AlignCenter})
		h := c.text(b, margin+48, y+4, contentWidth-48, textStyle{size: 19, color: colorText, maxLines: 2})
		if h < 32 {
			h = 32
		}
		y += h + 18
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/bookdeck/internal/slides"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	slideWidth   int
	slideHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		slideWidth:  80,
		slideHeight: 20,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	// slide box border plus horizontal padding
	const boxChrome = 8
	inner := width - viewportHorizontalPadding - boxChrome
	if inner > maxSlideWidth {
		inner = maxSlideWidth
	}
	if inner < minViewportWidth {
		inner = minViewportWidth
	}
	l.slideWidth = inner
	// header, pager, status, key hints, box border and blank separators
	const chrome = 14
	usable := height - chrome
	if usable < 6 {
		usable = 6
	}
	l.slideHeight = usable
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) Line() int { return cb.lines }

func (cb *contentBuilder) String() string {
	return strings.TrimRight(cb.builder.String(), "\n")
}

func (cb *contentBuilder) paragraph(text string, width int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	cb.WriteString(wordwrap.String(text, width))
	cb.WriteRune('\n')
}

func (cb *contentBuilder) blank() {
	if cb.Line() > 0 {
		cb.WriteRune('\n')
	}
}

// renderSlideBody lays a slide out as terminal text wrapped to width.
func renderSlideBody(s slides.Slide, width int) string {
	if width < minViewportWidth {
		width = minViewportWidth
	}
	cb := &contentBuilder{}
	cb.WriteString(kickerStyle.Render(strings.ToUpper(s.Kicker)))
	cb.WriteRune('\n')

	switch s.Kind {
	case slides.KindCover:
		cb.WriteString(slideHeadingStyle.Render(wordwrap.String(orPlaceholder(s.Heading, "Untitled"), width)))
		cb.WriteRune('\n')
		if s.Subheading != "" {
			cb.WriteString(slideSubtleStyle.Render(s.Subheading))
			cb.WriteRune('\n')
		}
		if s.Body != "" {
			cb.blank()
			cb.WriteString(quoteStyle.Render(wordwrap.String(s.Body, width)))
			cb.WriteRune('\n')
		}
	case slides.KindQuote:
		cb.blank()
		cb.WriteString(quoteStyle.Render(wordwrap.String("“"+orPlaceholder(s.Heading, "No quote available.")+"”", width)))
		cb.WriteRune('\n')
		if s.Subheading != "" {
			cb.WriteString(slideSubtleStyle.Render(s.Subheading))
			cb.WriteRune('\n')
		}
	default:
		cb.WriteString(slideHeadingStyle.Render(s.Heading))
		cb.WriteRune('\n')
		cb.blank()
		if s.Body != "" {
			cb.paragraph(s.Body, width)
		}
		writeItems(cb, s, width)
		for i, bullet := range s.Bullets {
			cb.WriteString(cardLabelStyle.Render(fmt.Sprintf("%d.", i+1)))
			cb.WriteString(" ")
			cb.WriteString(indentMultiline(wordwrap.String(bullet, width-4), "   ", false))
			cb.WriteRune('\n')
		}
		if s.Body == "" && len(s.Items) == 0 && len(s.Bullets) == 0 {
			cb.WriteString(helperStyle.Render("Nothing to show on this slide."))
			cb.WriteRune('\n')
		}
	}
	if s.Footer != "" {
		cb.blank()
		cb.WriteString(helperStyle.Render(s.Footer))
	}
	return cb.String()
}

func writeItems(cb *contentBuilder, s slides.Slide, width int) {
	for i, item := range s.Items {
		if i > 0 {
			cb.WriteRune('\n')
		}
		title := ""
		if item.Title != "" {
			title = cardTitleStyle.Render(item.Title)
		}
		header := strings.Join(nonEmpty(item.Icon, title), " ")
		if item.Label != "" {
			label := cardLabelStyle.Render(strings.ToUpper(item.Label))
			if item.Title == "" {
				cb.WriteString(label)
			} else {
				cb.WriteString(label + "  " + header)
			}
			cb.WriteRune('\n')
		} else if header != "" {
			cb.WriteString(header)
			cb.WriteRune('\n')
		}
		if item.Body != "" {
			cb.WriteString(indentMultiline(wordwrap.String(item.Body, width-2), "  ", true))
			cb.WriteRune('\n')
		}
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func indentMultiline(text, prefix string, first bool) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		if i == 0 && !first {
			continue
		}
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func renderPager(current int) string {
	var b strings.Builder
	for i := 0; i < slides.Count; i++ {
		if i > 0 {
			b.WriteRune(' ')
		}
		if i == current {
			b.WriteString(pagerActiveStyle.Render("●"))
		} else {
			b.WriteString(pagerInactiveStyle.Render("○"))
		}
	}
	b.WriteString(helperStyle.Render(fmt.Sprintf("  %d / %d", current+1, slides.Count)))
	return b.String()
}

package render

import (
	"strings"

	"github.com/fogleman/gg"
)

// canvas draws in logical slide units and scales to pixels on the way out.
// Scaling coordinates and font sizes, rather than the context transform,
// keeps glyphs rasterised at full resolution.
type canvas struct {
	dc *gg.Context
	r  *Rasterizer
}

type textStyle struct {
	size    float64
	style   fontStyle
	color   string
	align   gg.Align
	spacing float64
	// maxLines truncates wrapped text with an ellipsis; 0 means unlimited.
	maxLines int
}

func (c *canvas) px(v float64) float64 { return v * c.r.scale }

func (c *canvas) fill(x, y, w, h, radius float64, hex string) {
	c.dc.SetHexColor(hex)
	if radius > 0 {
		c.dc.DrawRoundedRectangle(c.px(x), c.px(y), c.px(w), c.px(h), c.px(radius))
	} else {
		c.dc.DrawRectangle(c.px(x), c.px(y), c.px(w), c.px(h))
	}
	c.dc.Fill()
}

func (c *canvas) stroke(x, y, w, h, radius, width float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawRoundedRectangle(c.px(x), c.px(y), c.px(w), c.px(h), c.px(radius))
	c.dc.Stroke()
}

func (c *canvas) line(x1, y1, x2, y2, width float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawLine(c.px(x1), c.px(y1), c.px(x2), c.px(y2))
	c.dc.Stroke()
}

func (c *canvas) dot(x, y, radius float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.DrawCircle(c.px(x), c.px(y), c.px(radius))
	c.dc.Fill()
}

// text wraps s into a box of the given width with its top at y and returns
// the logical height used.
func (c *canvas) text(s string, x, y, width float64, st textStyle) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if st.spacing == 0 {
		st.spacing = 1.3
	}
	c.dc.SetFontFace(c.r.face(st.style, st.size))
	c.dc.SetHexColor(st.color)

	lines := c.wrap(s, width, st.maxLines)
	lineHeight := c.dc.FontHeight() * st.spacing
	cursor := c.px(y)
	for _, ln := range lines {
		switch st.align {
		case gg.AlignCenter:
			c.dc.DrawStringAnchored(ln, c.px(x+width/2), cursor, 0.5, 1)
		case gg.AlignRight:
			c.dc.DrawStringAnchored(ln, c.px(x+width), cursor, 1, 1)
		default:
			c.dc.DrawStringAnchored(ln, c.px(x), cursor, 0, 1)
		}
		cursor += lineHeight
	}
	return float64(len(lines)) * lineHeight / c.r.scale
}

func (c *canvas) wrap(s string, width float64, maxLines int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		lines = append(lines, c.dc.WordWrap(paragraph, c.px(width))...)
	}
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := strings.TrimRight(lines[maxLines-1], " .,;:")
	for last != "" {
		w, _ := c.dc.MeasureString(last + "…")
		if w <= c.px(width) {
			break
		}
		cut := strings.LastIndex(last, " ")
		if cut <= 0 {
			break
		}
		last = last[:cut]
	}
	lines[maxLines-1] = last + "…"
	return lines
}

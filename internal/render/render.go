// Package render rasterises slides off-screen with gg and the Go fonts.
package render

import (
	"bytes"
	"fmt"
	"image"
	"regexp"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/csheth/bookdeck/internal/slides"
)

const (
	// Width and Height are the logical slide size in points.
	Width  = 960
	Height = 540
	// DefaultScale is the capture scale applied to every coordinate and font.
	DefaultScale = 2.0

	// Background fills every slide and sits behind transparent regions.
	Background = "#0f172a"
)

const (
	colorSurface = "#1e293b"
	colorBorder  = "#334155"
	colorText    = "#f8fafc"
	colorMuted   = "#94a3b8"
	colorFaint   = "#64748b"
	colorKicker  = "#38bdf8"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	palette    = []string{"#38bdf8", "#a78bfa", "#f472b6", "#34d399"}
)

type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
)

type faceKey struct {
	style fontStyle
	size  float64
}

// Rasterizer draws slides into images. It is safe for sequential use from
// multiple goroutines; faces are cached per style and size.
type Rasterizer struct {
	scale float64

	mu    sync.Mutex
	fonts map[fontStyle]*truetype.Font
	faces map[faceKey]font.Face
}

// New parses the embedded Go fonts once. A scale <= 0 uses DefaultScale.
func New(scale float64) (*Rasterizer, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	sources := map[fontStyle][]byte{
		styleRegular: goregular.TTF,
		styleBold:    gobold.TTF,
		styleItalic:  goitalic.TTF,
	}
	fonts := make(map[fontStyle]*truetype.Font, len(sources))
	for style, ttf := range sources {
		parsed, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("render: parse font: %w", err)
		}
		fonts[style] = parsed
	}
	return &Rasterizer{
		scale: scale,
		fonts: fonts,
		faces: map[faceKey]font.Face{},
	}, nil
}

// Size reports the pixel dimensions of rendered slides.
func (r *Rasterizer) Size() (int, int) {
	return int(Width * r.scale), int(Height * r.scale)
}

// Render draws s and returns the image.
func (r *Rasterizer) Render(s slides.Slide) (image.Image, error) {
	return r.draw(s).Image(), nil
}

// RenderPNG draws s and encodes it as PNG.
func (r *Rasterizer) RenderPNG(s slides.Slide) ([]byte, error) {
	dc := r.draw(s)
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Rasterizer) draw(s slides.Slide) *gg.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.Size()
	c := &canvas{dc: gg.NewContext(w, h), r: r}
	c.fill(0, 0, Width, Height, 0, Background)
	drawSlide(c, s)
	return c.dc
}

// face must be called with r.mu held.
func (r *Rasterizer) face(style fontStyle, size float64) font.Face {
	key := faceKey{style: style, size: size * r.scale}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(r.fonts[style], &truetype.Options{
		Size:    key.size,
		Hinting: font.HintingNone,
	})
	r.faces[key] = f
	return f
}

func accentFor(hex string, idx int) string {
	if hexColorRe.MatchString(hex) {
		return hex
	}
	return palette[idx%len(palette)]
}

// Package pdfexport assembles rendered slides into a landscape PDF.
package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"

	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/logger"
	"github.com/csheth/bookdeck/internal/slides"
)

const (
	// PageWidth and PageHeight are the landscape page size in millimetres.
	PageWidth  = 297.0
	PageHeight = 167.0

	fileSuffix    = "_Infographic.pdf"
	fallbackTitle = "book"
)

// background matches the slide background so transparent regions blend in.
var background = [3]int{0x0f, 0x17, 0x2a}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	separatorRe  = regexp.MustCompile(`[/\\]`)
)

// Rasterizer turns one slide into PNG bytes.
type Rasterizer interface {
	RenderPNG(s slides.Slide) ([]byte, error)
}

// Exporter renders every slide in order and writes them one per page.
type Exporter struct {
	Rasterizer Rasterizer
	OutputDir  string
	Logger     *logger.Logger
}

// Result describes a written PDF.
type Result struct {
	Path  string
	Pages int
}

// FileName derives the PDF name from a title: whitespace runs become
// underscores and the fixed suffix is appended.
func FileName(title string) string {
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}
	name := whitespaceRe.ReplaceAllString(title, "_")
	name = separatorRe.ReplaceAllString(name, "-")
	return name + fileSuffix
}

// Export renders slides 0..Count-1 sequentially and writes the PDF. The
// written file is re-opened to confirm it has one page per slide.
func (e *Exporter) Export(ctx context.Context, doc *infographic.Document) (Result, error) {
	if e.Rasterizer == nil {
		return Result{}, fmt.Errorf("pdfexport: no rasterizer configured")
	}
	if doc == nil {
		return Result{}, fmt.Errorf("pdfexport: no document to export")
	}
	log := e.Logger
	if log == nil {
		log = logger.NewNop()
	}
	started := time.Now()

	out := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: PageHeight, Ht: PageWidth},
	})
	out.SetAutoPageBreak(false, 0)
	out.SetMargins(0, 0, 0)
	out.SetTitle(doc.Title, true)
	out.SetAuthor(doc.Author, true)

	for i := 0; i < slides.Count; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		img, err := e.Rasterizer.RenderPNG(slides.Build(doc, i))
		if err != nil {
			return Result{}, fmt.Errorf("pdfexport: render slide %d: %w", i+1, err)
		}
		addImagePage(out, fmt.Sprintf("slide-%02d", i), img)
		if err := out.Error(); err != nil {
			return Result{}, fmt.Errorf("pdfexport: add slide %d: %w", i+1, err)
		}
		log.Debug("slide rendered", "slide", i, "bytes", len(img))
	}

	dir := e.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("pdfexport: create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(doc.Title))
	if err := out.OutputFileAndClose(path); err != nil {
		return Result{}, fmt.Errorf("pdfexport: write %s: %w", path, err)
	}

	sizes, err := PageSizes(path)
	if err != nil {
		return Result{}, err
	}
	pages := len(sizes)
	if pages != slides.Count {
		return Result{}, fmt.Errorf("pdfexport: %s has %d pages, want %d", path, pages, slides.Count)
	}
	log.Info("pdf exported", "path", path, "pages", pages, "duration", time.Since(started))
	return Result{Path: path, Pages: pages}, nil
}

func addImagePage(out *gofpdf.Fpdf, name string, png []byte) {
	out.AddPage()
	w, h := out.GetPageSize()
	out.SetFillColor(background[0], background[1], background[2])
	out.Rect(0, 0, w, h, "F")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	out.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	out.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
}

// CountPages opens a PDF and reports its page count.
func CountPages(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("pdfexport: reopen %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

// PointsPerMM converts millimetres to PDF points.
const PointsPerMM = 72.0 / 25.4

// PageSize is a page's MediaBox extent in points.
type PageSize struct {
	Width  float64
	Height float64
}

// PageSizes reopens a PDF and reports every page's MediaBox, following
// inherited boxes up the page tree.
func PageSizes(path string) ([]PageSize, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfexport: reopen %s: %w", path, err)
	}
	defer f.Close()
	sizes := make([]PageSize, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		box := mediaBox(r.Page(i).V)
		if box.Len() != 4 {
			return nil, fmt.Errorf("pdfexport: %s page %d has no MediaBox", path, i)
		}
		sizes = append(sizes, PageSize{
			Width:  box.Index(2).Float64() - box.Index(0).Float64(),
			Height: box.Index(3).Float64() - box.Index(1).Float64(),
		})
	}
	return sizes, nil
}

func mediaBox(node pdf.Value) pdf.Value {
	for !node.IsNull() {
		if box := node.Key("MediaBox"); !box.IsNull() {
			return box
		}
		node = node.Key("Parent")
	}
	return node
}

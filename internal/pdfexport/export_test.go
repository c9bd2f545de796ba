package pdfexport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/render"
	"github.com/csheth/bookdeck/internal/slides"
)

type recordingRasterizer struct {
	inner   Rasterizer
	indexes []int
	failAt  int
}

func (r *recordingRasterizer) RenderPNG(s slides.Slide) ([]byte, error) {
	r.indexes = append(r.indexes, s.Index)
	if r.failAt >= 0 && s.Index == r.failAt {
		return nil, errors.New("canvas exploded")
	}
	return r.inner.RenderPNG(s)
}

func newRecorder(t *testing.T, failAt int) *recordingRasterizer {
	t.Helper()
	inner, err := render.New(0.25)
	require.NoError(t, err)
	return &recordingRasterizer{inner: inner, failAt: failAt}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Dune":                        "Dune_Infographic.pdf",
		"The  Left Hand\tof Darkness": "The_Left_Hand_of_Darkness_Infographic.pdf",
		" Leading space":              "_Leading_space_Infographic.pdf",
		"AC/DC: A Biography":          "AC-DC:_A_Biography_Infographic.pdf",
		"":                            "book_Infographic.pdf",
		"   ":                         "book_Infographic.pdf",
	}
	for title, want := range cases {
		assert.Equal(t, want, FileName(title), "title %q", title)
	}
}

func TestExportWritesOnePagePerSlideInOrder(t *testing.T) {
	rec := newRecorder(t, -1)
	dir := t.TempDir()
	exporter := &Exporter{Rasterizer: rec, OutputDir: dir}

	doc := &infographic.Document{Title: "Never Let Me Go", Author: "Kazuo Ishiguro"}
	res, err := exporter.Export(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, rec.indexes)
	assert.Equal(t, filepath.Join(dir, "Never_Let_Me_Go_Infographic.pdf"), res.Path)
	assert.Equal(t, slides.Count, res.Pages)

	pages, err := CountPages(res.Path)
	require.NoError(t, err)
	assert.Equal(t, slides.Count, pages)
}

func TestExportUsesLandscapePageSize(t *testing.T) {
	exporter := &Exporter{Rasterizer: newRecorder(t, -1), OutputDir: t.TempDir()}
	res, err := exporter.Export(context.Background(), &infographic.Document{Title: "Kindred"})
	require.NoError(t, err)

	sizes, err := PageSizes(res.Path)
	require.NoError(t, err)
	require.Len(t, sizes, slides.Count)
	for i, size := range sizes {
		assert.InDelta(t, 841.89, size.Width, 0.05, "page %d width", i+1)
		assert.InDelta(t, 473.39, size.Height, 0.05, "page %d height", i+1)
		assert.InDelta(t, PageWidth*PointsPerMM, size.Width, 0.05, "page %d width", i+1)
		assert.Greater(t, size.Width, size.Height, "page %d should be landscape", i+1)
	}
}

func TestExportStopsOnRenderFailure(t *testing.T) {
	rec := newRecorder(t, 3)
	dir := t.TempDir()
	exporter := &Exporter{Rasterizer: rec, OutputDir: dir}

	_, err := exporter.Export(context.Background(), &infographic.Document{Title: "Broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render slide 4")
	assert.Equal(t, []int{0, 1, 2, 3}, rec.indexes)

	_, statErr := os.Stat(filepath.Join(dir, "Broken_Infographic.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportHonoursCancellation(t *testing.T) {
	rec := newRecorder(t, -1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Exporter{Rasterizer: rec, OutputDir: t.TempDir()}).Export(ctx, &infographic.Document{Title: "x"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.indexes)
}

func TestExportRequiresDocumentAndRasterizer(t *testing.T) {
	_, err := (&Exporter{}).Export(context.Background(), &infographic.Document{})
	require.Error(t, err)

	_, err = (&Exporter{Rasterizer: newRecorder(t, -1)}).Export(context.Background(), nil)
	require.Error(t, err)
}

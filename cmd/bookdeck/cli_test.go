package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/bookdeck/internal/config"
	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/llm"
	"github.com/csheth/bookdeck/internal/logger"
	"github.com/csheth/bookdeck/internal/pdfexport"
)

type stubGenerator struct {
	doc   *infographic.Document
	err   error
	calls []string
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(_ context.Context, title, author string) (*infographic.Document, error) {
	s.calls = append(s.calls, title+"|"+author)
	return s.doc, s.err
}

func withGenerator(t *testing.T, gen llm.Client) {
	t.Helper()
	original := newGenerator
	newGenerator = func(context.Context, config.Config, *logger.Logger) (llm.Client, error) {
		return gen, nil
	}
	t.Cleanup(func() { newGenerator = original })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default and clears the
// changed bit so flag values never leak between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestExecuteDoesNotLeakFlags(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")

	_, err := execute(t, "config", "init", "--config", first, "--model", "gemini-2.5-flash", "--out", dir, "--force")
	require.NoError(t, err)
	resetFlags(rootCmd)

	assert.Equal(t, config.DefaultPath(), flagConfigPath)
	assert.Empty(t, flagModel)
	assert.Empty(t, flagOutDir)
	assert.False(t, flagForce)
	assert.False(t, rootCmd.PersistentFlags().Changed("model"))

	_, err = execute(t, "config", "init", "--config", second)
	require.NoError(t, err)

	t.Setenv("GEMINI_API_KEY", "k")
	cfg, err := config.Load(second)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, cfg.Model)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestExportCmd_WritesPDF(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	dir := t.TempDir()
	gen := &stubGenerator{doc: &infographic.Document{
		Title:     "The Dispossessed",
		Author:    "Ursula K. Le Guin",
		Takeaways: []string{"Walls have two sides."},
		Sources:   []string{"https://en.wikipedia.org/wiki/The_Dispossessed"},
	}}
	withGenerator(t, gen)

	out, err := execute(t, "export",
		"--title", "The Dispossessed", "--author", "Ursula K. Le Guin",
		"--out", dir,
		"--config", filepath.Join(dir, "missing.toml"),
		"--log-file", filepath.Join(dir, "bookdeck.log"),
	)
	require.NoError(t, err)

	want := filepath.Join(dir, "The_Dispossessed_Infographic.pdf")
	assert.Contains(t, out, "Saved "+want)
	assert.Contains(t, out, "(10 pages)")
	assert.Equal(t, []string{"The Dispossessed|Ursula K. Le Guin"}, gen.calls)

	pages, err := pdfexport.CountPages(want)
	require.NoError(t, err)
	assert.Equal(t, 10, pages)
}

func TestExportCmd_RequiresTitleAndAuthor(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	dir := t.TempDir()
	gen := &stubGenerator{}
	withGenerator(t, gen)

	_, err := execute(t, "export", "--title", "Dune",
		"--config", filepath.Join(dir, "missing.toml"),
		"--log-file", filepath.Join(dir, "bookdeck.log"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--author")
	assert.Empty(t, gen.calls)
}

func TestExportCmd_GenerationFailureIsGeneric(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	dir := t.TempDir()
	withGenerator(t, &stubGenerator{err: llm.ErrGenerationFailed})

	_, err := execute(t, "export", "--title", "Dune", "--author", "Frank Herbert",
		"--out", dir,
		"--config", filepath.Join(dir, "missing.toml"),
		"--log-file", filepath.Join(dir, "bookdeck.log"),
	)
	require.ErrorIs(t, err, llm.ErrGenerationFailed)
	_, statErr := os.Stat(filepath.Join(dir, "Dune_Infographic.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	dir := t.TempDir()

	_, err := execute(t, "export", "--title", "Dune", "--author", "Frank Herbert",
		"--config", filepath.Join(dir, "missing.toml"),
	)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestConfigInit_WorksWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	path := filepath.Join(t.TempDir(), "bookdeck", "config.toml")

	out, err := execute(t, "config", "init", "--config", path, "--model", "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	t.Setenv("GEMINI_API_KEY", "k")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigPath_PrintsFlag(t *testing.T) {
	out, err := execute(t, "config", "path", "--config", "/tmp/bookdeck-test.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bookdeck-test.toml\n", out)
}

func TestRootCmd_Wiring(t *testing.T) {
	assert.Equal(t, "bookdeck", rootCmd.Use)
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["export"])
	assert.True(t, names["config"])
	for _, flag := range []string{"config", "model", "out", "log-file", "title", "author"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("no-alt-screen"))
}

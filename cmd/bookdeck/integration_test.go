package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/bookdeck/internal/tuitest"
)

func TestBookDeckMissingKeyExits(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	tmp := t.TempDir()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen",
			"--config", filepath.Join(tmp, "config.toml"),
			"--log-file", filepath.Join(tmp, "bookdeck.log"),
		},
		Dir:              cmdDir,
		Env:              []string{"GEMINI_API_KEY=", "API_KEY="},
		AllowedExitCodes: []int{1},
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if rec.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", rec.ExitCode)
	}
	if out := rec.PlainText(); !strings.Contains(out, "GEMINI_API_KEY") {
		t.Fatalf("missing credential hint in output:\n%s", out)
	}
}

func TestBookDeckFormValidation(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	tmp := t.TempDir()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen",
			"--config", filepath.Join(tmp, "config.toml"),
			"--log-file", filepath.Join(tmp, "bookdeck.log"),
			"--out", tmp,
		},
		Dir:    cmdDir,
		Env:    []string{"GEMINI_API_KEY=integration-dummy-key"},
		Width:  100,
		Height: 40,
		Steps: []tuitest.Step{
			tuitest.Type(time.Second, "Dune"),
			tuitest.Press(200*time.Millisecond, tuitest.KeyEnter),
			tuitest.Press(time.Second, tuitest.KeyEsc),
		},
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if _, ok := rec.FindFrame("Book title"); !ok {
		t.Fatalf("input form never rendered:\n%s", rec.PlainText())
	}
	if out := rec.PlainText(); !strings.Contains(out, "Please enter both a book title and an author.") {
		t.Fatalf("validation message not shown:\n%s", out)
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "bookdeck-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/llm"
)

// generateJob issues the single generation call. There is no timeout; the
// job settles when the client returns.
func generateJob(client llm.Client, title, author string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if client == nil {
			return generateResultMsg{title: title, author: author, err: llm.ErrGenerationFailed}, llm.ErrGenerationFailed
		}
		doc, err := client.Generate(ctx, title, author)
		return generateResultMsg{title: title, author: author, doc: doc, err: err}, err
	}
}

// exportJob renders every slide of doc to a PDF, independent of the slide
// currently on screen.
func exportJob(exporter Exporter, doc *infographic.Document) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if exporter == nil {
			err := fmt.Errorf("PDF export is not configured")
			return exportResultMsg{err: err}, err
		}
		res, err := exporter.Export(ctx, doc)
		return exportResultMsg{result: res, err: err}, err
	}
}

func trimmedTitle(value string) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= 60 {
		return value
	}
	return fmt.Sprintf("%s…", strings.TrimSpace(string(runes[:57])))
}

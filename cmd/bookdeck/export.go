package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Research a book and write its deck straight to PDF",
	Example: `  bookdeck export --title "Piranesi" --author "Susanna Clarke"
  bookdeck export --title "Dune" --author "Frank Herbert" --out ~/Decks`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	title, author := flagTitle, flagAuthor
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" {
		return errors.New("both --title and --author are required")
	}

	a, err := newApp(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	cmd.Printf("Researching %q by %s…\n", strings.TrimSpace(title), strings.TrimSpace(author))
	doc, err := a.generator.Generate(cmd.Context(), title, author)
	if err != nil {
		return err
	}
	result, err := a.exporter.Export(cmd.Context(), doc)
	if err != nil {
		a.log.Error("export failed", "title", doc.Title, "error", err)
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Saved %s (%d pages)\n", result.Path, result.Pages)
	return nil
}

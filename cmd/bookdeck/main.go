package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/csheth/bookdeck/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bookdeck:", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY to a Gemini API key and run bookdeck again.")
		}
		os.Exit(1)
	}
}

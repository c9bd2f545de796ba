// Package llm builds the analysis prompt, calls Gemini with search
// grounding, and recovers an infographic document from the reply.
package llm

import (
	"context"
	"errors"

	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/logger"
)

// Temperature biases the model toward analytical rather than creative output.
const Temperature float32 = 0.3

// ErrGenerationFailed is the only error Generate returns. The underlying
// cause is logged, not wrapped.
var ErrGenerationFailed = errors.New("Failed to generate deep analysis. Please check the title/author and try again.")

// Config describes how to build a Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  *logger.Logger
}

// Client produces an infographic document for a book.
type Client interface {
	Generate(ctx context.Context, title, author string) (*infographic.Document, error)
	Name() string
}

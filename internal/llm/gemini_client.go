package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/csheth/bookdeck/internal/config"
	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/logger"
)

// ContentGenerator is the slice of the genai Models service the client uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiClient struct {
	models ContentGenerator
	model  string
	log    *logger.Logger
}

// New builds a Gemini-backed client from cfg.
func New(ctx context.Context, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, err
	}
	return NewWithGenerator(client.Models, cfg.Model, cfg.Logger), nil
}

// NewWithGenerator wraps an existing generator, typically a fake in tests.
func NewWithGenerator(models ContentGenerator, model string, log *logger.Logger) Client {
	if model == "" {
		model = config.DefaultModel
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &geminiClient{
		models: models,
		model:  model,
		log:    log.With("component", "gemini", "model", model),
	}
}

func (c *geminiClient) Name() string {
	return "gemini:" + c.model
}

func (c *geminiClient) Generate(ctx context.Context, title, author string) (*infographic.Document, error) {
	log := c.log.With("request_id", uuid.NewString())
	started := time.Now()
	log.Info("generation started", "title", title, "author", author)

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(BuildPrompt(title, author)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(Temperature),
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		log.Error("generate content failed", "error", err, "duration", time.Since(started))
		return nil, ErrGenerationFailed
	}
	if resp == nil {
		log.Error("generate content failed", "error", errors.New("empty response"), "duration", time.Since(started))
		return nil, ErrGenerationFailed
	}

	text := resp.Text()
	sources := groundingSources(resp)
	doc, err := RecoverDocument(text, sources)
	if err != nil {
		log.Error("recover document failed", "error", err, "response_chars", len(text), "duration", time.Since(started))
		return nil, ErrGenerationFailed
	}
	log.Info("generation finished", "sources", len(sources), "duration", time.Since(started))
	return doc, nil
}

// groundingSources lists the web URIs of the first candidate's grounding
// chunks in order, skipping chunks without one.
func groundingSources(resp *genai.GenerateContentResponse) []string {
	sources := []string{}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, chunk.Web.URI)
	}
	return sources
}

package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kunalverma/axon-go/internal/ports"
)

// GenAIEngine embeds text through Google's Gemini embedding API. Used when
// the index should not depend on a local Ollama server.
type GenAIEngine struct {
	client *genai.Client
	model  string
}

// NewGenAIEngine creates a GenAI embedding engine.
func NewGenAIEngine(ctx context.Context, apiKey, model string) (*GenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai embed: API key is required")
	}
	if model == "" {
		model = "gemini-embedding-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("genai embed: create client: %w", err)
	}

	return &GenAIEngine{
		client: client,
		model:  model,
	}, nil
}

// retrievalTask selects the embedding task hint: documents are indexed with
// RETRIEVAL_DOCUMENT, search queries with RETRIEVAL_QUERY.
func retrievalTask(query bool) string {
	if query {
		return "RETRIEVAL_QUERY"
	}
	return "RETRIEVAL_DOCUMENT"
}

// Embed implements ports.Embedder for document (ingestion) text.
func (e *GenAIEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, retrievalTask(false))
}

// EmbedQuery implements ports.Embedder for search queries.
func (e *GenAIEngine) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, retrievalTask(true))
}

func (e *GenAIEngine) embed(ctx context.Context, text string, task string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx,
		e.model,
		contents,
		&genai.EmbedContentConfig{
			TaskType: task,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("genai embed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("genai embed: no embeddings returned")
	}
	return result.Embeddings[0].Values, nil
}

var _ ports.Embedder = (*GenAIEngine)(nil)

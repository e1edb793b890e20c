package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// RetrievalPipeline answers a question from the knowledge store using the
// step-back flow: broaden the question for recall, retrieve, then ground the
// final answer in the retrieved context plus the original question to restore
// precision. The three stages are strictly sequential within a request and
// nothing is retained across requests.
type RetrievalPipeline struct {
	StepBack ports.Gateway
	Answerer ports.Gateway
	Store    ports.KnowledgeStore
	K        int
	Logger   ports.Logger
}

// Answer runs the pipeline for a single question.
func (p *RetrievalPipeline) Answer(ctx context.Context, question string) (string, error) {
	if p.StepBack == nil || p.Answerer == nil || p.Store == nil || p.Logger == nil {
		return "", errors.New("services.RetrievalPipeline dependencies not satisfied")
	}

	k := p.K
	if k <= 0 {
		k = domain.DefaultRetrievalK
	}

	// Abstraction. A failed or empty reformulation degrades to searching with
	// the original question instead of aborting.
	searchQuery := strings.TrimSpace(question)
	broadened, err := p.StepBack.Generate(ctx, stepBackPrompt(question))
	broadened = strings.TrimSpace(broadened)
	switch {
	case err != nil:
		p.Logger.Warn("retrieval degraded: step-back abstraction failed", map[string]interface{}{
			"error": err.Error(),
		})
	case broadened == "":
		p.Logger.Warn("retrieval degraded: step-back returned empty text", nil)
	default:
		searchQuery = broadened
	}

	// Context augmentation. Zero chunks is not special-cased here; grounding
	// runs with an empty context and the model declines on its own.
	chunks, err := p.Store.SimilaritySearch(ctx, searchQuery, k)
	if err != nil {
		return "", fmt.Errorf("similarity search: %w", err)
	}
	p.Logger.Debug("retrieved context", map[string]interface{}{
		"query":  searchQuery,
		"chunks": len(chunks),
	})

	// Grounding. Uses the original question, not the broadened one.
	answer, err := p.Answerer.Generate(ctx, groundingPrompt(chunks, question))
	if err != nil {
		return "", fmt.Errorf("grounding: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

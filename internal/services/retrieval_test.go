package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kunalverma/axon-go/internal/domain"
)

func TestPipelineUsesBroadenedQueryForSearch(t *testing.T) {
	stepBack := &stubGateway{text: "What are Kunal's contact details?"}
	answerer := &stubGateway{text: "kunal@example.com"}
	store := &stubStore{chunks: []domain.Chunk{{Text: "Email: kunal@example.com", Score: 0.9}}}

	pipeline := &RetrievalPipeline{
		StepBack: stepBack,
		Answerer: answerer,
		Store:    store,
		K:        3,
		Logger:   &recordLogger{},
	}

	answer, err := pipeline.Answer(context.Background(), "What is Kunal's contact email?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "kunal@example.com" {
		t.Errorf("answer = %q", answer)
	}
	if store.lastQuery != "What are Kunal's contact details?" {
		t.Errorf("search query = %q, want the broadened question", store.lastQuery)
	}
	if store.lastK != 3 {
		t.Errorf("k = %d, want 3", store.lastK)
	}
}

func TestPipelineGroundsWithOriginalQuestion(t *testing.T) {
	answerer := &stubGateway{text: "answer"}
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{text: "broadened version"},
		Answerer: answerer,
		Store:    &stubStore{chunks: []domain.Chunk{{Text: "chunk one"}, {Text: "chunk two"}}},
		Logger:   &recordLogger{},
	}

	const question = "What is Kunal's email address?"
	if _, err := pipeline.Answer(context.Background(), question); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(answerer.prompts) != 1 {
		t.Fatalf("grounding calls = %d, want 1", len(answerer.prompts))
	}
	prompt := answerer.prompts[0]
	if !strings.Contains(prompt, question) {
		t.Errorf("grounding prompt missing the original question:\n%s", prompt)
	}
	if strings.Contains(prompt, "broadened version") {
		t.Errorf("grounding prompt must not carry the broadened query:\n%s", prompt)
	}
	if !strings.Contains(prompt, "chunk one") || !strings.Contains(prompt, "chunk two") {
		t.Errorf("grounding prompt missing retrieved context:\n%s", prompt)
	}
}

func TestPipelineDegradesWhenAbstractionFails(t *testing.T) {
	store := &stubStore{}
	logger := &recordLogger{}
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{err: errors.New("model offline")},
		Answerer: &stubGateway{text: "still answered"},
		Store:    store,
		Logger:   logger,
	}

	answer, err := pipeline.Answer(context.Background(), "narrow question")
	if err != nil {
		t.Fatalf("Answer() error = %v, want graceful degradation", err)
	}
	if answer != "still answered" {
		t.Errorf("answer = %q", answer)
	}
	if store.lastQuery != "narrow question" {
		t.Errorf("search query = %q, want the original question", store.lastQuery)
	}
	if len(logger.warns) == 0 {
		t.Error("degraded retrieval was not logged")
	}
}

func TestPipelineDegradesOnEmptyAbstraction(t *testing.T) {
	store := &stubStore{}
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{text: "   \n"},
		Answerer: &stubGateway{text: "ok"},
		Store:    store,
		Logger:   &recordLogger{},
	}

	if _, err := pipeline.Answer(context.Background(), "narrow question"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if store.lastQuery != "narrow question" {
		t.Errorf("search query = %q, want the original question", store.lastQuery)
	}
}

// Zero chunks is not special-cased: grounding still runs and the model's
// context-only instruction produces the decline.
func TestPipelineGroundsWithEmptyContext(t *testing.T) {
	answerer := &stubGateway{text: "I don't have that information."}
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{text: "broad"},
		Answerer: answerer,
		Store:    &stubStore{chunks: nil},
		Logger:   &recordLogger{},
	}

	answer, err := pipeline.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "I don't have that information." {
		t.Errorf("answer = %q", answer)
	}
	if len(answerer.prompts) != 1 {
		t.Fatalf("grounding did not run with empty context")
	}
}

func TestPipelineSurfacesGroundingFailure(t *testing.T) {
	groundingErr := fmt.Errorf("gemma: request timed out: %w", domain.ErrGatewayTimeout)
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{text: "broad"},
		Answerer: &stubGateway{err: groundingErr},
		Store:    &stubStore{},
		Logger:   &recordLogger{},
	}

	answer, err := pipeline.Answer(context.Background(), "question")
	if err == nil {
		t.Fatal("expected grounding failure to surface")
	}
	if !errors.Is(err, domain.ErrGatewayTimeout) {
		t.Errorf("error = %v, want ErrGatewayTimeout in the chain", err)
	}
	if answer != "" {
		t.Errorf("partial answer leaked: %q", answer)
	}
}

func TestPipelineSurfacesSearchFailure(t *testing.T) {
	pipeline := &RetrievalPipeline{
		StepBack: &stubGateway{text: "broad"},
		Answerer: &stubGateway{text: "unused"},
		Store:    &stubStore{err: errors.New("index corrupt")},
		Logger:   &recordLogger{},
	}

	if _, err := pipeline.Answer(context.Background(), "question"); err == nil {
		t.Fatal("expected search failure to surface")
	}
}

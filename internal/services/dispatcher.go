package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Dispatcher is the request-scoped front of the core: it classifies each
// utterance and hands it to the matching lane operation. It holds no mutable
// state, so concurrent requests cannot interfere with each other.
type Dispatcher struct {
	Router     *Router
	Pipeline   *RetrievalPipeline
	Negotiator *Negotiator
	General    ports.Gateway
	Logger     ports.Logger
}

// Handle classifies the query and dispatches it to its lane.
func (d *Dispatcher) Handle(ctx context.Context, query string) (domain.Answer, error) {
	if d.Router == nil || d.Logger == nil {
		return domain.Answer{}, errors.New("services.Dispatcher dependencies not satisfied")
	}
	lane := d.Router.Classify(query)
	d.Logger.Debug("query routed", map[string]interface{}{"lane": string(lane)})

	switch lane {
	case domain.LaneAction:
		return d.HandleAction(ctx, query)
	case domain.LaneRetrieval:
		return d.AnswerFromKnowledge(ctx, query)
	default:
		return d.AnswerGeneral(ctx, query)
	}
}

// AnswerGeneral answers with a plain gateway call.
func (d *Dispatcher) AnswerGeneral(ctx context.Context, query string) (domain.Answer, error) {
	if d.General == nil {
		return domain.Answer{}, errors.New("services.Dispatcher: general gateway not configured")
	}
	text, err := d.General.Generate(ctx, query)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("general lane: %w", err)
	}
	return domain.Answer{
		Lane: domain.LaneGeneral,
		Kind: domain.AnswerResolved,
		Text: strings.TrimSpace(text),
	}, nil
}

// AnswerFromKnowledge delegates to the step-back retrieval pipeline.
func (d *Dispatcher) AnswerFromKnowledge(ctx context.Context, query string) (domain.Answer, error) {
	if d.Pipeline == nil {
		return domain.Answer{}, errors.New("services.Dispatcher: retrieval pipeline not configured")
	}
	text, err := d.Pipeline.Answer(ctx, query)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieval lane: %w", err)
	}
	return domain.Answer{
		Lane: domain.LaneRetrieval,
		Kind: domain.AnswerResolved,
		Text: text,
	}, nil
}

// HandleAction delegates to the tool-execution negotiator.
func (d *Dispatcher) HandleAction(ctx context.Context, query string) (domain.Answer, error) {
	if d.Negotiator == nil {
		return domain.Answer{}, errors.New("services.Dispatcher: negotiator not configured")
	}
	answer, err := d.Negotiator.Handle(ctx, query)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("action lane: %w", err)
	}
	answer.Lane = domain.LaneAction
	return answer, nil
}

// Compile-time interface compliance check
var _ domain.Assistant = (*Dispatcher)(nil)

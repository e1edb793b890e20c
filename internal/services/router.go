package services

import (
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
)

// Router classifies an utterance into a processing lane before any model call
// is made. Classification is an ordered first-match keyword membership test:
// the action set is checked before the retrieval set so that system-affecting
// intents can never be mis-routed to a lane lacking execution authority.
//
// Classify is pure, total and deterministic; every input maps to exactly one
// lane, defaulting to General.
type Router struct {
	rules []laneRule
}

type laneRule struct {
	lane     domain.Lane
	keywords []string
}

// NewRouter builds a router from the configured keyword sets, falling back to
// the built-in defaults when a set is empty.
func NewRouter(settings domain.RouterSettings) *Router {
	action := settings.ActionKeywords
	if len(action) == 0 {
		action = domain.DefaultActionKeywords()
	}
	retrieval := settings.RetrievalKeywords
	if len(retrieval) == 0 {
		retrieval = domain.DefaultRetrievalKeywords()
	}
	return &Router{
		rules: []laneRule{
			{lane: domain.LaneAction, keywords: lowered(action)},
			{lane: domain.LaneRetrieval, keywords: lowered(retrieval)},
		},
	}
}

// Classify returns the lane for an utterance. First matching rule wins.
func (r *Router) Classify(utterance string) domain.Lane {
	text := strings.ToLower(utterance)
	for _, rule := range r.rules {
		for _, keyword := range rule.keywords {
			if keyword != "" && strings.Contains(text, keyword) {
				return rule.lane
			}
		}
	}
	return domain.LaneGeneral
}

func lowered(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, strings.ToLower(strings.TrimSpace(word)))
	}
	return out
}

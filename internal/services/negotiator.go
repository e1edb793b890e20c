package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Negotiator turns a structured model-issued action into either a direct
// result or a pending system command requiring client confirmation.
//
// Per request the flow is Received -> ModelInvoked -> {Resolved |
// PendingConfirmation}; both outcomes are terminal on the server side and no
// state survives the request. A SystemCommandCall is never executed by this
// component: it is packaged as a PendingCommand and handed to the client,
// which alone holds execution authority.
type Negotiator struct {
	Gateway ports.ToolGateway
	Tools   *ToolSet
	Clock   func() time.Time
	Logger  ports.Logger
}

// Handle processes one action-lane utterance.
func (n *Negotiator) Handle(ctx context.Context, utterance string) (domain.Answer, error) {
	if n.Gateway == nil || n.Tools == nil || n.Logger == nil {
		return domain.Answer{}, errors.New("services.Negotiator dependencies not satisfied")
	}

	outcome, err := n.Gateway.GenerateWithTools(ctx, utterance, n.Tools.Schema())
	if err != nil {
		return domain.Answer{}, fmt.Errorf("tool gateway: %w", err)
	}

	// Free text resolves the request directly.
	if outcome.Call == nil {
		return resolved(outcome.Text), nil
	}

	invocation, err := n.Tools.Resolve(*outcome.Call)
	if err != nil {
		var malformed *domain.MalformedToolCallError
		if errors.As(err, &malformed) {
			n.Logger.Warn("malformed tool call rejected", map[string]interface{}{
				"tool":   malformed.Name,
				"reason": malformed.Reason,
			})
			return resolved(malformed.UserMessage()), nil
		}
		return domain.Answer{}, err
	}

	switch invocation.Kind {
	case domain.ToolInformational:
		return n.resolveInformational(ctx, utterance, *outcome.Call, invocation), nil

	case domain.ToolSystemCommand:
		return n.deferCommand(invocation), nil

	default:
		return domain.Answer{}, fmt.Errorf("unknown tool kind %q", invocation.Kind)
	}
}

// resolveInformational executes a safe, read-only call in-process and lets the
// model phrase the result. The computed value stands on its own if that second
// round-trip fails.
func (n *Negotiator) resolveInformational(ctx context.Context, utterance string, call domain.ToolCall, inv domain.ToolInvocation) domain.Answer {
	text, err := n.Gateway.RespondToTool(ctx, utterance, call, inv.Result)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		if err != nil {
			n.Logger.Warn("tool response round-trip failed, using raw value", map[string]interface{}{
				"tool":  inv.Name,
				"error": err.Error(),
			})
		}
		text = inv.Result
	}
	return resolved(text)
}

// deferCommand packages a system command for the client-side confirmation
// handshake. The command string is carried verbatim.
func (n *Negotiator) deferCommand(inv domain.ToolInvocation) domain.Answer {
	now := time.Now
	if n.Clock != nil {
		now = n.Clock
	}
	pending := &domain.PendingCommand{
		Command:     inv.Command,
		Description: inv.Description,
		Target:      inv.Target,
		Token:       uuid.NewString(),
		ExpiresAt:   now().Add(n.Tools.PendingTTL()),
	}
	n.Logger.Info("execution deferred to client", map[string]interface{}{
		"tool":   inv.Name,
		"target": string(inv.Target),
	})
	return domain.Answer{
		Lane:    domain.LaneAction,
		Kind:    domain.AnswerPendingConfirmation,
		Text:    inv.Description,
		Pending: pending,
	}
}

func resolved(text string) domain.Answer {
	return domain.Answer{
		Lane: domain.LaneAction,
		Kind: domain.AnswerResolved,
		Text: strings.TrimSpace(text),
	}
}

package ai

import (
	"context"
	"fmt"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// unavailableToolGateway stands in when no tool-capable model is configured.
// Every call fails with ErrGatewayUnavailable carrying the original cause, so
// the action lane degrades instead of preventing startup.
type unavailableToolGateway struct {
	err error
}

// NewUnavailableToolGateway builds a tool gateway that rejects every call
// with the given cause.
func NewUnavailableToolGateway(cause error) ports.ToolGateway {
	return &unavailableToolGateway{
		err: fmt.Errorf("%v: %w", cause, domain.ErrGatewayUnavailable),
	}
}

func (g *unavailableToolGateway) Name() string {
	return "unconfigured"
}

func (g *unavailableToolGateway) GenerateWithTools(context.Context, string, []domain.ToolSchema) (domain.ToolOutcome, error) {
	return domain.ToolOutcome{}, g.err
}

func (g *unavailableToolGateway) RespondToTool(context.Context, string, domain.ToolCall, string) (string, error) {
	return "", g.err
}

var _ ports.ToolGateway = (*unavailableToolGateway)(nil)

package ai

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Factory builds gateway instances for configured model definitions. All
// gateways share one HTTP client.
type Factory struct {
	httpClient *http.Client
}

// NewFactory constructs a factory with the given per-call timeout.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultGatewayTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForModel implements ports.GatewayFactory.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Gateway, error) {
	switch inferProviderKind(model) {
	case providerKindOllama:
		return newOllamaGateway(model, f.httpClient), nil
	case providerKindGemini:
		return newGeminiGateway(model, f.httpClient), nil
	default:
		return nil, fmt.Errorf("model %s: unsupported provider (endpoint %q)", model.Name, model.Endpoint)
	}
}

// ToolGatewayForModel implements ports.GatewayFactory. Only Gemini supports
// the tool-augmented call.
func (f *Factory) ToolGatewayForModel(model domain.ModelDefinition) (ports.ToolGateway, error) {
	if inferProviderKind(model) != providerKindGemini {
		return nil, fmt.Errorf("model %s: tool calls require a gemini model", model.Name)
	}
	return newGeminiGateway(model, f.httpClient), nil
}

type providerKind string

const (
	providerKindOllama  providerKind = "ollama"
	providerKindGemini  providerKind = "gemini"
	providerKindUnknown providerKind = "unknown"
)

func inferProviderKind(model domain.ModelDefinition) providerKind {
	switch strings.ToLower(model.Kind) {
	case "ollama":
		return providerKindOllama
	case "gemini":
		return providerKindGemini
	}

	endpoint := strings.ToLower(model.Endpoint)
	name := strings.ToLower(model.Name + " " + model.ModelID)
	switch {
	case strings.Contains(endpoint, "generativelanguage"), strings.Contains(name, "gemini"):
		return providerKindGemini
	case strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "/chat/completions"),
		strings.Contains(name, "ollama"), strings.Contains(name, "gemma"):
		return providerKindOllama
	default:
		return providerKindUnknown
	}
}

var _ ports.GatewayFactory = (*Factory)(nil)

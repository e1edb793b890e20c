package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c chatCompletionResponse) firstMessage() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Choices[0].Message.Content)
}

// ollamaGateway talks to a local Ollama server through its OpenAI-compatible
// chat completions endpoint.
type ollamaGateway struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOllamaGateway(model domain.ModelDefinition, client *http.Client) ports.Gateway {
	return &ollamaGateway{model: model, httpClient: client}
}

func (o *ollamaGateway) Name() string {
	return "ollama"
}

// Generate implements ports.Gateway.
func (o *ollamaGateway) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model:     valueOrDefault(o.model.ModelID, "gemma:latest"),
		MaxTokens: valueOrDefaultInt(o.model.MaxTokens, domain.DefaultMaxTokens),
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := valueOrDefault(o.model.Endpoint, "http://localhost:11434/v1/chat/completions")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", wrapGatewayErr(o.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusErr(o.Name(), resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", wrapGatewayErr(o.Name(), err)
	}
	return decoded.firstMessage(), nil
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func valueOrDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

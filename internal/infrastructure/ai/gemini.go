package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiGateway calls the Gemini generateContent REST API, with and without
// function declarations.
type geminiGateway struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newGeminiGateway(model domain.ModelDefinition, client *http.Client) *geminiGateway {
	return &geminiGateway{model: model, httpClient: client}
}

func (g *geminiGateway) Name() string {
	return "gemini"
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

type geminiFunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations"`
}

type geminiFunctionDeclaration struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements ports.Gateway.
func (g *geminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.invoke(ctx, geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	text, _ := splitParts(resp)
	return text, nil
}

// GenerateWithTools implements ports.ToolGateway: a single tool-augmented
// call that yields either free text or one structured call.
func (g *geminiGateway) GenerateWithTools(ctx context.Context, utterance string, schema []domain.ToolSchema) (domain.ToolOutcome, error) {
	resp, err := g.invoke(ctx, geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: utterance}}}},
		Tools:    toGeminiTools(schema),
	})
	if err != nil {
		return domain.ToolOutcome{}, err
	}

	text, call := splitParts(resp)
	if call != nil {
		return domain.ToolOutcome{Call: &domain.ToolCall{Name: call.Name, Args: call.Args}}, nil
	}
	return domain.ToolOutcome{Text: text}, nil
}

// RespondToTool sends a tool result back so the model can phrase the final
// answer. The conversation replays the utterance and the model's call.
func (g *geminiGateway) RespondToTool(ctx context.Context, utterance string, call domain.ToolCall, result string) (string, error) {
	resp, err := g.invoke(ctx, geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: utterance}}},
			{Role: "model", Parts: []geminiPart{{FunctionCall: &geminiFunctionCall{Name: call.Name, Args: call.Args}}}},
			{Role: "function", Parts: []geminiPart{{FunctionResponse: &geminiFunctionResponse{
				Name:     call.Name,
				Response: map[string]interface{}{"result": result},
			}}}},
		},
	})
	if err != nil {
		return "", err
	}
	text, _ := splitParts(resp)
	return text, nil
}

func (g *geminiGateway) invoke(ctx context.Context, payload geminiRequest) (*geminiResponse, error) {
	apiKey := getEnv(g.model.AuthEnvVar, "GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: missing API key: set %s or GOOGLE_API_KEY: %w",
			g.Name(), g.model.AuthEnvVar, domain.ErrGatewayUnavailable)
	}

	if payload.GenerationConfig == nil && g.model.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{MaxOutputTokens: g.model.MaxTokens}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(valueOrDefault(g.model.Endpoint, defaultGeminiBaseURL), "/")
	modelID := valueOrDefault(g.model.ModelID, "gemini-2.5-flash")
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, modelID, apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapGatewayErr(g.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, statusErr(g.Name(), resp.Status)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, wrapGatewayErr(g.Name(), err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("%s: %s: %w", g.Name(), decoded.Error.Message, domain.ErrGatewayUnavailable)
	}
	return &decoded, nil
}

// splitParts concatenates the text parts of the first candidate and returns
// the first function call, if any.
func splitParts(resp *geminiResponse) (string, *geminiFunctionCall) {
	if len(resp.Candidates) == 0 {
		return "", nil
	}
	var builder strings.Builder
	var call *geminiFunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			builder.WriteString(part.Text)
		}
		if part.FunctionCall != nil && call == nil {
			call = part.FunctionCall
		}
	}
	return strings.TrimSpace(builder.String()), call
}

func toGeminiTools(schema []domain.ToolSchema) []geminiTool {
	if len(schema) == 0 {
		return nil
	}
	declarations := make([]geminiFunctionDeclaration, 0, len(schema))
	for _, tool := range schema {
		declarations = append(declarations, geminiFunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		})
	}
	return []geminiTool{{FunctionDeclarations: declarations}}
}

func getEnv(primary, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback != "" {
		return os.Getenv(fallback)
	}
	return ""
}

var _ ports.Gateway = (*geminiGateway)(nil)
var _ ports.ToolGateway = (*geminiGateway)(nil)

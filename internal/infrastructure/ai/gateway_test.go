package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
)

func TestOllamaGenerateParsesChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  hi there \n"}},
			},
		})
	}))
	defer server.Close()

	gw := newOllamaGateway(domain.ModelDefinition{Endpoint: server.URL, ModelID: "gemma:latest"}, server.Client())
	got, err := gw.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "hi there" {
		t.Errorf("Generate() = %q", got)
	}
}

func TestOllamaGenerateMapsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gw := newOllamaGateway(domain.ModelDefinition{Endpoint: server.URL}, server.Client())
	_, err := gw.Generate(context.Background(), "hello")
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Errorf("error = %v, want ErrGatewayUnavailable", err)
	}
}

func TestGeminiGenerateWithToolsReturnsCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || len(req.Tools[0].FunctionDeclarations) != 1 {
			t.Errorf("tool declarations missing: %+v", req.Tools)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"functionCall": map[string]interface{}{
							"name": "install_package",
							"args": map[string]interface{}{"package": "VLC"},
						}},
					},
				}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("GOOGLE_API_KEY", "test-key")

	gw := newGeminiGateway(domain.ModelDefinition{Endpoint: server.URL}, server.Client())
	outcome, err := gw.GenerateWithTools(context.Background(), "Install VLC", []domain.ToolSchema{
		{Name: "install_package", Description: "install"},
	})
	if err != nil {
		t.Fatalf("GenerateWithTools() error = %v", err)
	}
	if outcome.Call == nil {
		t.Fatalf("expected a tool call, got text %q", outcome.Text)
	}
	if outcome.Call.Name != "install_package" {
		t.Errorf("call name = %q", outcome.Call.Name)
	}
	if pkg, _ := outcome.Call.Args["package"].(string); pkg != "VLC" {
		t.Errorf("call args = %+v", outcome.Call.Args)
	}
}

func TestGeminiGenerateWithToolsReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": "No tool needed."}},
				}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("GOOGLE_API_KEY", "test-key")

	gw := newGeminiGateway(domain.ModelDefinition{Endpoint: server.URL}, server.Client())
	outcome, err := gw.GenerateWithTools(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("GenerateWithTools() error = %v", err)
	}
	if outcome.Call != nil {
		t.Fatalf("unexpected tool call: %+v", outcome.Call)
	}
	if outcome.Text != "No tool needed." {
		t.Errorf("text = %q", outcome.Text)
	}
}

func TestGeminiRespondToToolSendsFunctionResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 3 {
			t.Fatalf("contents = %d, want utterance + call + response", len(req.Contents))
		}
		fr := req.Contents[2].Parts[0].FunctionResponse
		if fr == nil || fr.Name != "get_current_time" {
			t.Errorf("function response missing: %+v", req.Contents[2])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": "It is noon."}},
				}},
			},
		})
	}))
	defer server.Close()
	t.Setenv("GOOGLE_API_KEY", "test-key")

	gw := newGeminiGateway(domain.ModelDefinition{Endpoint: server.URL}, server.Client())
	text, err := gw.RespondToTool(context.Background(), "what time is it",
		domain.ToolCall{Name: "get_current_time"}, "2026-03-14 12:00:00")
	if err != nil {
		t.Fatalf("RespondToTool() error = %v", err)
	}
	if text != "It is noon." {
		t.Errorf("text = %q", text)
	}
}

func TestGeminiRequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	gw := newGeminiGateway(domain.ModelDefinition{}, &http.Client{Timeout: time.Second})
	_, err := gw.Generate(context.Background(), "hello")
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Errorf("error = %v, want ErrGatewayUnavailable", err)
	}
}

func TestUnavailableToolGatewayFailsEveryCall(t *testing.T) {
	gw := NewUnavailableToolGateway(errors.New("no tool-capable model configured"))

	if gw.Name() != "unconfigured" {
		t.Errorf("Name() = %q", gw.Name())
	}
	_, err := gw.GenerateWithTools(context.Background(), "Install VLC", nil)
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Errorf("GenerateWithTools error = %v, want ErrGatewayUnavailable", err)
	}
	_, err = gw.RespondToTool(context.Background(), "Install VLC", domain.ToolCall{Name: "install_package"}, "ok")
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Errorf("RespondToTool error = %v, want ErrGatewayUnavailable", err)
	}
}

func TestWrapGatewayErrMapsDeadline(t *testing.T) {
	err := wrapGatewayErr("ollama", context.DeadlineExceeded)
	if !errors.Is(err, domain.ErrGatewayTimeout) {
		t.Errorf("error = %v, want ErrGatewayTimeout", err)
	}
}

func TestInferProviderKind(t *testing.T) {
	tests := []struct {
		model domain.ModelDefinition
		want  providerKind
	}{
		{domain.ModelDefinition{Kind: "ollama"}, providerKindOllama},
		{domain.ModelDefinition{Endpoint: "http://localhost:11434/v1/chat/completions"}, providerKindOllama},
		{domain.ModelDefinition{Name: "gemma-local", ModelID: "gemma:latest"}, providerKindOllama},
		{domain.ModelDefinition{Endpoint: "https://generativelanguage.googleapis.com/v1beta"}, providerKindGemini},
		{domain.ModelDefinition{ModelID: "gemini-2.5-flash"}, providerKindGemini},
		{domain.ModelDefinition{Endpoint: "https://example.com"}, providerKindUnknown},
	}
	for _, tt := range tests {
		if got := inferProviderKind(tt.model); got != tt.want {
			t.Errorf("inferProviderKind(%+v) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

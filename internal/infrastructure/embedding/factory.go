package embedding

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// ForSettings builds the configured embedding engine. The default is the
// local Ollama engine; "genai" selects the Gemini embedding API.
func ForSettings(ctx context.Context, settings domain.EmbeddingSettings, client *http.Client) (ports.Embedder, error) {
	switch strings.ToLower(settings.Engine) {
	case "", "ollama":
		return NewOllamaEngine(settings.Endpoint, settings.Model, client), nil
	case "genai", "gemini":
		apiKey := os.Getenv(settings.AuthEnvVar)
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		return NewGenAIEngine(ctx, apiKey, settings.Model)
	default:
		return nil, fmt.Errorf("unsupported embedding engine %q", settings.Engine)
	}
}

// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The core depends on these abstractions,
// never on concrete AI providers, databases, or CLI frameworks.
package ports

import (
	"context"

	"github.com/kunalverma/axon-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.axon/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Gateway is the plain text-generation capability of a language model.
type Gateway interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ToolGateway is the tool-augmented capability: given an utterance and a
// declared schema it returns either free text or a structured call.
// RespondToTool continues the conversation with a tool result so the model
// can phrase the final answer.
type ToolGateway interface {
	Name() string
	GenerateWithTools(ctx context.Context, utterance string, schema []domain.ToolSchema) (domain.ToolOutcome, error)
	RespondToTool(ctx context.Context, utterance string, call domain.ToolCall, result string) (string, error)
}

// GatewayFactory builds gateway instances based on model definitions.
type GatewayFactory interface {
	ForModel(domain.ModelDefinition) (Gateway, error)
	ToolGatewayForModel(domain.ModelDefinition) (ToolGateway, error)
}

// KnowledgeStore is a nearest-neighbor index over document chunks. Results are
// ordered by descending relevance and deterministic for a static index. The
// core only reads; writes happen through the separate ingestion path.
type KnowledgeStore interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]domain.Chunk, error)
}

// KnowledgeWriter is the ingestion-side mutation contract of the index.
type KnowledgeWriter interface {
	Add(ctx context.Context, source string, texts []string) error
}

// Embedder turns text into a vector for similarity search. Embed is the
// ingestion-side (document) call; EmbedQuery embeds a search query. Engines
// that distinguish the two by task hint map both into the same vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SecurityService evaluates a proposed command against guardrail rules.
// It runs on the client, before the confirmation prompt.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// CommandExecutor runs confirmed commands in the client's shell environment.
// Nothing on the server side holds a CommandExecutor.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// ConfirmationPrompter presents a pending command to a human and collects an
// explicit affirmative or negative decision.
type ConfirmationPrompter interface {
	Confirm(pending domain.PendingCommand, risk domain.RiskAssessment) (bool, error)
	Enabled() bool
}

// HistoryRepository persists client interaction records.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

package services

import (
	"context"
	"sync"

	"github.com/kunalverma/axon-go/internal/domain"
)

// stubGateway returns canned text for Generate calls and records prompts.
type stubGateway struct {
	name    string
	text    string
	err     error
	mu      sync.Mutex
	prompts []string
}

func (s *stubGateway) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubGateway) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.text, s.err
}

// stubToolGateway drives the negotiator with a fixed outcome.
type stubToolGateway struct {
	outcome      domain.ToolOutcome
	err          error
	respondText  string
	respondErr   error
	respondCalls int
	lastResult   string
}

func (s *stubToolGateway) Name() string { return "stub-tools" }

func (s *stubToolGateway) GenerateWithTools(context.Context, string, []domain.ToolSchema) (domain.ToolOutcome, error) {
	return s.outcome, s.err
}

func (s *stubToolGateway) RespondToTool(_ context.Context, _ string, _ domain.ToolCall, result string) (string, error) {
	s.respondCalls++
	s.lastResult = result
	return s.respondText, s.respondErr
}

// stubStore records the query it was searched with.
type stubStore struct {
	chunks    []domain.Chunk
	err       error
	lastQuery string
	lastK     int
}

func (s *stubStore) SimilaritySearch(_ context.Context, query string, k int) ([]domain.Chunk, error) {
	s.lastQuery = query
	s.lastK = k
	return s.chunks, s.err
}

// recordLogger captures log messages for assertions.
type recordLogger struct {
	mu    sync.Mutex
	warns []string
	infos []string
}

func (l *recordLogger) Debug(string, map[string]interface{}) {}

func (l *recordLogger) Info(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordLogger) Error(string, error, map[string]interface{}) {}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
)

// HTTPClient talks to a running Axon server and satisfies domain.Assistant,
// so the interactive session does not care whether answers come from a
// local dispatcher or over the wire.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the given server address.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = domain.DefaultGatewayTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type wireRequest struct {
	Query string `json:"query"`
}

type wireResponse struct {
	Kind        string `json:"kind"`
	Lane        string `json:"lane"`
	Response    string `json:"response"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Target      string `json:"target"`
	Token       string `json:"token"`
	ExpiresAt   string `json:"expires_at"`
	Error       string `json:"error"`
}

// Handle implements domain.Assistant.
func (c *HTTPClient) Handle(ctx context.Context, query string) (domain.Answer, error) {
	return c.post(ctx, "/chat", query)
}

// AnswerGeneral implements domain.Assistant.
func (c *HTTPClient) AnswerGeneral(ctx context.Context, query string) (domain.Answer, error) {
	return c.post(ctx, "/chat/general", query)
}

// AnswerFromKnowledge implements domain.Assistant.
func (c *HTTPClient) AnswerFromKnowledge(ctx context.Context, query string) (domain.Answer, error) {
	return c.post(ctx, "/chat/knowledge", query)
}

// HandleAction implements domain.Assistant.
func (c *HTTPClient) HandleAction(ctx context.Context, query string) (domain.Answer, error) {
	return c.post(ctx, "/chat/action", query)
}

func (c *HTTPClient) post(ctx context.Context, path, query string) (domain.Answer, error) {
	body, err := json.Marshal(wireRequest{Query: query})
	if err != nil {
		return domain.Answer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("reach server at %s: %w", c.baseURL, domain.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	var decoded wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Answer{}, fmt.Errorf("decode server response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusGatewayTimeout:
		return domain.Answer{}, fmt.Errorf("%s: %w", decoded.Error, domain.ErrGatewayTimeout)
	case http.StatusBadGateway:
		return domain.Answer{}, fmt.Errorf("%s: %w", decoded.Error, domain.ErrGatewayUnavailable)
	default:
		return domain.Answer{}, fmt.Errorf("server returned %s: %s", resp.Status, decoded.Error)
	}

	return toAnswer(decoded)
}

func toAnswer(resp wireResponse) (domain.Answer, error) {
	answer := domain.Answer{
		Lane: domain.Lane(resp.Lane),
		Kind: domain.AnswerKind(resp.Kind),
		Text: resp.Response,
	}
	if answer.Kind != domain.AnswerPendingConfirmation {
		return answer, nil
	}

	expires, err := time.Parse(domain.TimestampFormat, resp.ExpiresAt)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("parse pending expiry %q: %w", resp.ExpiresAt, err)
	}
	answer.Pending = &domain.PendingCommand{
		Command:     resp.Command,
		Description: resp.Description,
		Target:      domain.CommandTarget(resp.Target),
		Token:       resp.Token,
		ExpiresAt:   expires,
	}
	return answer, nil
}

var _ domain.Assistant = (*HTTPClient)(nil)

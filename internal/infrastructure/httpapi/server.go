// Package httpapi exposes the assistant over HTTP. The server is stateless:
// every request carries its full query and every response is complete, so
// concurrent requests never interact.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Server routes chat requests to the assistant.
type Server struct {
	Assistant domain.Assistant
	Logger    ports.Logger
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Kind     string `json:"kind"`
	Lane     string `json:"lane"`
	Response string `json:"response,omitempty"`

	// Populated only when kind is pending_confirmation.
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Target      string `json:"target,omitempty"`
	Token       string `json:"token,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("POST /chat", s.handle(s.Assistant.Handle))
	mux.HandleFunc("POST /chat/general", s.handle(s.Assistant.AnswerGeneral))
	mux.HandleFunc("POST /chat/knowledge", s.handle(s.Assistant.AnswerFromKnowledge))
	mux.HandleFunc("POST /chat/action", s.handle(s.Assistant.HandleAction))
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Axon is running"})
}

func (s *Server) handle(op func(context.Context, string) (domain.Answer, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query must not be empty"})
			return
		}

		answer, err := op(r.Context(), req.Query)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(answer))
	}
}

// writeError maps gateway failures onto upstream status codes. The client
// always gets a single message, never a partial answer.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, domain.ErrGatewayTimeout):
		status = http.StatusGatewayTimeout
		message = "the model did not respond in time"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		status = http.StatusBadGateway
		message = "the model is unavailable"
	}

	if s.Logger != nil {
		s.Logger.Error("request failed", err, map[string]interface{}{
			"path":   r.URL.Path,
			"status": status,
		})
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func toResponse(answer domain.Answer) chatResponse {
	resp := chatResponse{
		Kind:     string(answer.Kind),
		Lane:     string(answer.Lane),
		Response: answer.Text,
	}
	if answer.Kind == domain.AnswerPendingConfirmation && answer.Pending != nil {
		resp.Command = answer.Pending.Command
		resp.Description = answer.Pending.Description
		resp.Target = string(answer.Pending.Target)
		resp.Token = answer.Pending.Token
		resp.ExpiresAt = answer.Pending.ExpiresAt.Format(domain.TimestampFormat)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

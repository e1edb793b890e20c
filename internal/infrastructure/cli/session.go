package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Session drives one client conversation. It owns the confirmation
// handshake: the server only ever proposes commands, and nothing runs
// unless the human at this session explicitly approves it.
type Session struct {
	Assistant domain.Assistant
	Security  ports.SecurityService
	Executor  ports.CommandExecutor
	Prompter  ports.ConfirmationPrompter
	History   ports.HistoryRepository
	Out       io.Writer
	Clock     func() time.Time
}

// Ask sends one query and completes the resulting exchange, including the
// confirmation handshake when the answer is a pending command.
func (s *Session) Ask(ctx context.Context, query string) error {
	if s.Assistant == nil || s.Prompter == nil {
		return fmt.Errorf("session dependencies not initialized")
	}

	answer, err := s.Assistant.Handle(ctx, query)
	if err != nil {
		return err
	}
	return s.Complete(ctx, query, answer)
}

// Complete finishes an exchange whose answer was already produced, running
// the confirmation handshake when the answer is a pending command.
func (s *Session) Complete(ctx context.Context, query string, answer domain.Answer) error {
	if answer.Kind != domain.AnswerPendingConfirmation || answer.Pending == nil {
		fmt.Fprintln(s.out(), answer.Text)
		s.record(query, answer, false, nil)
		return nil
	}
	return s.negotiate(ctx, query, answer)
}

func (s *Session) negotiate(ctx context.Context, query string, answer domain.Answer) error {
	pending := *answer.Pending
	RenderPending(s.out(), pending, s.now())

	risk := domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}
	if s.Security != nil {
		assessed, err := s.Security.Evaluate(pending.Command)
		if err != nil {
			return fmt.Errorf("evaluate command: %w", err)
		}
		risk = assessed
	}

	if risk.Action == domain.ActionBlock {
		fmt.Fprintln(s.out(), "Refusing to run this command:")
		for _, reason := range risk.Reasons {
			fmt.Fprintf(s.out(), " - %s\n", reason)
		}
		s.record(query, answer, false, nil)
		return nil
	}

	if !s.Prompter.Enabled() {
		fmt.Fprintln(s.out(), "Confirmation requires an interactive terminal; command not executed.")
		s.record(query, answer, false, nil)
		return nil
	}

	approved, err := s.Prompter.Confirm(pending, risk)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !approved {
		fmt.Fprintln(s.out(), "Cancelled. Nothing was executed.")
		s.record(query, answer, false, nil)
		return nil
	}

	if pending.Expired(s.now()) {
		fmt.Fprintln(s.out(), "This command proposal has expired; ask again to get a fresh one.")
		s.record(query, answer, false, nil)
		return nil
	}

	// Approved: run the proposed command exactly as the server phrased it.
	// A failing command is reported, not returned as a session error.
	result, _ := s.Executor.Execute(ctx, pending.Command)
	RenderExecution(s.out(), result)
	s.record(query, answer, true, &result)
	return nil
}

func (s *Session) record(query string, answer domain.Answer, approved bool, result *domain.ExecutionResult) {
	if s.History == nil {
		return
	}
	rec := domain.HistoryRecord{
		Timestamp: s.now(),
		Lane:      string(answer.Lane),
		Prompt:    query,
		Kind:      string(answer.Kind),
		Response:  answer.Text,
		Approved:  approved,
	}
	if answer.Pending != nil {
		rec.Command = answer.Pending.Command
	}
	if result != nil {
		rec.Executed = true
		rec.ExitCode = result.ExitCode
	}
	_ = s.History.Save(rec)
}

func (s *Session) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Session) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

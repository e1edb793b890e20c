package domain

import "context"

// Lane is the processing path chosen for an utterance before any model call.
type Lane string

const (
	LaneAction    Lane = "action"
	LaneRetrieval Lane = "retrieval"
	LaneGeneral   Lane = "general"
)

// AnswerKind distinguishes a finished answer from a deferred command handoff.
type AnswerKind string

const (
	AnswerResolved            AnswerKind = "resolved"
	AnswerPendingConfirmation AnswerKind = "pending_confirmation"
)

// Answer is the canonical result of a lane operation. Text carries the reply
// for resolved answers; Pending is set only when a system command awaits
// client-side confirmation.
type Answer struct {
	Lane    Lane
	Kind    AnswerKind
	Text    string
	Pending *PendingCommand
}

// Assistant exposes the use-case boundary consumed by the transport layer and
// the interactive client. Handle classifies the query and dispatches it; the
// three lane operations are also reachable directly.
type Assistant interface {
	Handle(ctx context.Context, query string) (Answer, error)
	AnswerGeneral(ctx context.Context, query string) (Answer, error)
	AnswerFromKnowledge(ctx context.Context, query string) (Answer, error)
	HandleAction(ctx context.Context, query string) (Answer, error)
}

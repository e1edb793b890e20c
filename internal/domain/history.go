package domain

import "time"

// HistoryRecord is one logged client interaction.
type HistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Lane      string    `json:"lane"`
	Prompt    string    `json:"prompt"`
	Kind      string    `json:"kind"`
	Response  string    `json:"response"`
	Command   string    `json:"command,omitempty"`
	Approved  bool      `json:"approved"`
	Executed  bool      `json:"executed"`
	ExitCode  int       `json:"exit_code"`
}

// ExecutionResult wraps details from the client-side command executor.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}

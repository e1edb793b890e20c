package domain

import (
	"fmt"
	"time"
)

// ToolKind classifies a declared tool by its execution authority.
type ToolKind string

const (
	// ToolInformational tools only read ambient state (e.g. the clock) and are
	// executed in-process by the negotiator.
	ToolInformational ToolKind = "informational"
	// ToolSystemCommand tools describe a system-modifying command. The server
	// never runs them; execution authority belongs to the client.
	ToolSystemCommand ToolKind = "system_command"
)

// CommandTarget names the client-side facility expected to run a deferred command.
type CommandTarget string

const (
	TargetShell          CommandTarget = "shell"
	TargetPackageManager CommandTarget = "package_manager"
)

// ToolSchema is one declared tool in the schema handed to the gateway.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a structured invocation emitted by the gateway in place of free text.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolOutcome is the gateway's tool-augmented result: free text or a single call.
type ToolOutcome struct {
	Text string
	Call *ToolCall
}

// ToolInvocation is the closed variant produced by validating a gateway tool
// call against the declared schema. Free-form strings never reach execution
// logic; only values of this type do.
type ToolInvocation struct {
	Kind        ToolKind
	Name        string
	Result      string // informational calls: the computed value
	Command     string // system commands: the literal command text
	Description string
	Target      CommandTarget
}

// PendingCommand pairs a proposed system command with a confirmation token and
// expiry. It exists only inside the response payload that carries it; the
// server keeps no copy after responding.
type PendingCommand struct {
	Command     string
	Description string
	Target      CommandTarget
	Token       string
	ExpiresAt   time.Time
}

// Expired reports whether the confirmation window has closed.
func (p PendingCommand) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}

// MalformedToolCallError marks a gateway tool call outside the declared
// schema. It is converted to a resolved text response and never executed.
type MalformedToolCallError struct {
	Name   string
	Reason string
}

func (e *MalformedToolCallError) Error() string {
	return fmt.Sprintf("malformed tool call %q: %s", e.Name, e.Reason)
}

// UserMessage renders the failure as a reply suitable for the end user.
func (e *MalformedToolCallError) UserMessage() string {
	return fmt.Sprintf("I could not perform that action: the requested tool %q is not available (%s).", e.Name, e.Reason)
}

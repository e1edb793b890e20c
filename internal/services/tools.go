package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
)

// Tool names declared to the gateway. The set is closed: a call naming
// anything else is malformed by definition.
const (
	toolCurrentTime    = "get_current_time"
	toolCurrentDate    = "get_current_date"
	toolInstallPackage = "install_package"
	toolOpenURL        = "open_url"
	toolRunCommand     = "run_shell_command"
)

// ToolSet is the declared schema of available actions and the validator that
// turns raw gateway tool calls into closed ToolInvocation variants.
type ToolSet struct {
	settings domain.ActionSettings
	clock    func() time.Time
}

// NewToolSet builds the builtin tool set. A nil clock defaults to time.Now.
func NewToolSet(settings domain.ActionSettings, clock func() time.Time) *ToolSet {
	if clock == nil {
		clock = time.Now
	}
	return &ToolSet{settings: settings, clock: clock}
}

// Schema returns the tool declarations handed to the gateway.
func (t *ToolSet) Schema() []domain.ToolSchema {
	return []domain.ToolSchema{
		{
			Name:        toolCurrentTime,
			Description: "Get the current time. Use this for any question about the current time.",
		},
		{
			Name:        toolCurrentDate,
			Description: "Get today's date. Use this for any question about the current date or day.",
		},
		{
			Name:        toolInstallPackage,
			Description: "Install a software package on the user's machine using the system package manager.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"package": map[string]interface{}{
						"type":        "string",
						"description": "The package to install, e.g. VLC",
					},
				},
				"required": []string{"package"},
			},
		},
		{
			Name:        toolOpenURL,
			Description: "Open a given URL in the user's default web browser.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "The URL to open, e.g. https://www.google.com",
					},
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        toolRunCommand,
			Description: "Run an arbitrary shell command on the user's machine. Prefer the more specific tools when they apply.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"command": map[string]interface{}{
						"type":        "string",
						"description": "The exact shell command to run",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "One sentence describing what the command does",
					},
				},
				"required": []string{"command"},
			},
		},
	}
}

// Resolve validates a gateway tool call against the declared schema and
// returns the closed invocation variant. Informational values are computed
// here; system commands are only described, never run.
func (t *ToolSet) Resolve(call domain.ToolCall) (domain.ToolInvocation, error) {
	switch call.Name {
	case toolCurrentTime:
		return domain.ToolInvocation{
			Kind:   domain.ToolInformational,
			Name:   call.Name,
			Result: t.clock().Format("2006-01-02 15:04:05"),
		}, nil

	case toolCurrentDate:
		return domain.ToolInvocation{
			Kind:   domain.ToolInformational,
			Name:   call.Name,
			Result: t.clock().Format("Monday, January 2, 2006"),
		}, nil

	case toolInstallPackage:
		pkg, err := stringArg(call, "package")
		if err != nil {
			return domain.ToolInvocation{}, err
		}
		manager := t.packageManager()
		return domain.ToolInvocation{
			Kind:        domain.ToolSystemCommand,
			Name:        call.Name,
			Command:     fmt.Sprintf("%s install %s", manager, pkg),
			Description: fmt.Sprintf("Install %s using %s", pkg, manager),
			Target:      domain.TargetPackageManager,
		}, nil

	case toolOpenURL:
		url, err := stringArg(call, "url")
		if err != nil {
			return domain.ToolInvocation{}, err
		}
		return domain.ToolInvocation{
			Kind:        domain.ToolSystemCommand,
			Name:        call.Name,
			Command:     fmt.Sprintf("%s %s", t.openCommand(), url),
			Description: fmt.Sprintf("Open %s in the default browser", url),
			Target:      domain.TargetShell,
		}, nil

	case toolRunCommand:
		command, err := stringArg(call, "command")
		if err != nil {
			return domain.ToolInvocation{}, err
		}
		description, _ := stringArg(call, "description")
		if description == "" {
			description = "Run a shell command"
		}
		return domain.ToolInvocation{
			Kind:        domain.ToolSystemCommand,
			Name:        call.Name,
			Command:     command,
			Description: description,
			Target:      domain.TargetShell,
		}, nil

	default:
		return domain.ToolInvocation{}, &domain.MalformedToolCallError{
			Name:   call.Name,
			Reason: "not in the declared tool schema",
		}
	}
}

// PendingTTL returns the configured confirmation window.
func (t *ToolSet) PendingTTL() time.Duration {
	if t.settings.PendingTTLSeconds > 0 {
		return time.Duration(t.settings.PendingTTLSeconds) * time.Second
	}
	return domain.DefaultPendingTTL
}

func (t *ToolSet) packageManager() string {
	if t.settings.PackageManager != "" {
		return t.settings.PackageManager
	}
	return "winget"
}

func (t *ToolSet) openCommand() string {
	if t.settings.OpenCommand != "" {
		return t.settings.OpenCommand
	}
	return "xdg-open"
}

func stringArg(call domain.ToolCall, key string) (string, error) {
	raw, ok := call.Args[key]
	if !ok {
		return "", &domain.MalformedToolCallError{
			Name:   call.Name,
			Reason: fmt.Sprintf("missing required argument %q", key),
		}
	}
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", &domain.MalformedToolCallError{
			Name:   call.Name,
			Reason: fmt.Sprintf("argument %q must be a non-empty string", key),
		}
	}
	return strings.TrimSpace(value), nil
}

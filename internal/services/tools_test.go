package services

import (
	"errors"
	"testing"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
)

func toolsClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func TestToolSetSchemaDeclaresAllTools(t *testing.T) {
	schema := NewToolSet(domain.ActionSettings{}, nil).Schema()
	names := map[string]bool{}
	for _, decl := range schema {
		if decl.Description == "" {
			t.Errorf("tool %s has no description", decl.Name)
		}
		names[decl.Name] = true
	}
	for _, want := range []string{
		toolCurrentTime, toolCurrentDate, toolInstallPackage, toolOpenURL, toolRunCommand,
	} {
		if !names[want] {
			t.Errorf("schema missing %s", want)
		}
	}
}

func TestResolveInformationalTools(t *testing.T) {
	tools := NewToolSet(domain.ActionSettings{}, toolsClock)

	inv, err := tools.Resolve(domain.ToolCall{Name: toolCurrentTime})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Kind != domain.ToolInformational || inv.Result != "2026-03-14 15:09:26" {
		t.Errorf("time invocation = %+v", inv)
	}

	inv, err = tools.Resolve(domain.ToolCall{Name: toolCurrentDate})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Result != "Saturday, March 14, 2026" {
		t.Errorf("date = %q", inv.Result)
	}
}

func TestResolveInstallPackageUsesConfiguredManager(t *testing.T) {
	tools := NewToolSet(domain.ActionSettings{PackageManager: "apt"}, toolsClock)

	inv, err := tools.Resolve(domain.ToolCall{
		Name: toolInstallPackage,
		Args: map[string]interface{}{"package": "vlc"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Kind != domain.ToolSystemCommand || inv.Command != "apt install vlc" {
		t.Errorf("invocation = %+v", inv)
	}
	if inv.Target != domain.TargetPackageManager {
		t.Errorf("target = %q", inv.Target)
	}
}

func TestResolveOpenURL(t *testing.T) {
	tools := NewToolSet(domain.ActionSettings{OpenCommand: "open"}, toolsClock)

	inv, err := tools.Resolve(domain.ToolCall{
		Name: toolOpenURL,
		Args: map[string]interface{}{"url": "https://example.com"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Command != "open https://example.com" || inv.Target != domain.TargetShell {
		t.Errorf("invocation = %+v", inv)
	}
}

func TestResolveShellCommandIsVerbatim(t *testing.T) {
	tools := NewToolSet(domain.ActionSettings{}, toolsClock)

	inv, err := tools.Resolve(domain.ToolCall{
		Name: toolRunCommand,
		Args: map[string]interface{}{"command": "df -h | sort -k5"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Command != "df -h | sort -k5" {
		t.Errorf("command rewritten: %q", inv.Command)
	}
}

func TestResolveRejectsUnknownAndMalformedCalls(t *testing.T) {
	tools := NewToolSet(domain.ActionSettings{}, toolsClock)

	var malformed *domain.MalformedToolCallError
	_, err := tools.Resolve(domain.ToolCall{Name: "reboot_machine"})
	if !errors.As(err, &malformed) {
		t.Errorf("unknown tool error = %v", err)
	}

	_, err = tools.Resolve(domain.ToolCall{Name: toolInstallPackage})
	if !errors.As(err, &malformed) {
		t.Errorf("missing arg error = %v", err)
	}

	_, err = tools.Resolve(domain.ToolCall{
		Name: toolInstallPackage,
		Args: map[string]interface{}{"package": "  "},
	})
	if !errors.As(err, &malformed) {
		t.Errorf("blank arg error = %v", err)
	}
}

func TestPendingTTLDefaultsAndOverrides(t *testing.T) {
	if ttl := NewToolSet(domain.ActionSettings{}, nil).PendingTTL(); ttl != domain.DefaultPendingTTL {
		t.Errorf("default ttl = %v", ttl)
	}
	if ttl := NewToolSet(domain.ActionSettings{PendingTTLSeconds: 30}, nil).PendingTTL(); ttl != 30*time.Second {
		t.Errorf("configured ttl = %v", ttl)
	}
}

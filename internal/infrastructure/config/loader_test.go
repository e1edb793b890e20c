package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kunalverma/axon-go/internal/domain"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
	if cfg.Preferences.ToolsModel != "gemini-flash" {
		t.Errorf("tools model = %q", cfg.Preferences.ToolsModel)
	}
	if cfg.Retrieval.K != domain.DefaultRetrievalK {
		t.Errorf("retrieval k = %d", cfg.Retrieval.K)
	}
	if cfg.Actions.PackageManager != "winget" {
		t.Errorf("package manager = %q", cfg.Actions.PackageManager)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := `models:
  - name: my-gemma
    kind: ollama
    model_id: gemma:latest
`
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.GeneralModel != "my-gemma" {
		t.Errorf("general model = %q", cfg.Preferences.GeneralModel)
	}
	if cfg.Server.Addr != "127.0.0.1:8000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Retrieval.ChunkSize != domain.DefaultChunkSize || cfg.Retrieval.Overlap != domain.DefaultChunkOverlap {
		t.Errorf("splitter settings = %d/%d", cfg.Retrieval.ChunkSize, cfg.Retrieval.Overlap)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("AXON_CONFIG", path)

	loader := NewFileLoader("")
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("override path not used: %v", err)
	}
}

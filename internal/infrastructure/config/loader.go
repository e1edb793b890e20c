package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kunalverma/axon-go/assets"
	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.axon/config.yaml (overridable via AXON_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("AXON_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".axon", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8000"
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultGatewayTimeout.Seconds())
	}
	if len(cfg.Models) == 0 {
		cfg.Models = []domain.ModelDefinition{
			{
				Name:     "gemma-local",
				Kind:     "ollama",
				Endpoint: "http://localhost:11434/v1/chat/completions",
				ModelID:  "gemma:latest",
			},
			{
				Name:       "gemini-flash",
				Kind:       "gemini",
				Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
				AuthEnvVar: "GOOGLE_API_KEY",
				ModelID:    "gemini-2.5-flash",
			},
		}
	}
	if cfg.Preferences.GeneralModel == "" {
		cfg.Preferences.GeneralModel = cfg.Models[0].Name
	}
	if cfg.Preferences.StepBackModel == "" {
		cfg.Preferences.StepBackModel = cfg.Preferences.GeneralModel
	}
	if cfg.Preferences.AnswerModel == "" {
		cfg.Preferences.AnswerModel = cfg.Preferences.GeneralModel
	}
	if cfg.Preferences.ToolsModel == "" {
		cfg.Preferences.ToolsModel = lastGeminiModel(cfg.Models)
	}
	if cfg.Retrieval.K == 0 {
		cfg.Retrieval.K = domain.DefaultRetrievalK
	}
	if cfg.Retrieval.ChunkSize == 0 {
		cfg.Retrieval.ChunkSize = domain.DefaultChunkSize
	}
	if cfg.Retrieval.Overlap == 0 {
		cfg.Retrieval.Overlap = domain.DefaultChunkOverlap
	}
	if cfg.Retrieval.IndexPath == "" {
		cfg.Retrieval.IndexPath = filepath.Join(userHomeDir(), ".axon", "index.db")
	}
	if cfg.Retrieval.DataDir == "" {
		cfg.Retrieval.DataDir = filepath.Join(userHomeDir(), ".axon", "data")
	}
	if cfg.Security.RulesFile == "" {
		cfg.Security.RulesFile = filepath.Join(userHomeDir(), ".axon", "guardrail.yaml")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(userHomeDir(), ".axon", "history.db")
	}
	cfg.Retrieval.IndexPath = expandPath(cfg.Retrieval.IndexPath)
	cfg.Retrieval.DataDir = expandPath(cfg.Retrieval.DataDir)
	cfg.Security.RulesFile = expandPath(cfg.Security.RulesFile)
	cfg.History.Path = expandPath(cfg.History.Path)
	if cfg.Actions.PendingTTLSeconds == 0 {
		cfg.Actions.PendingTTLSeconds = int(domain.DefaultPendingTTL.Seconds())
	}
	return cfg
}

func lastGeminiModel(models []domain.ModelDefinition) string {
	for i := len(models) - 1; i >= 0; i-- {
		if models[i].Kind == "gemini" {
			return models[i].Name
		}
	}
	return models[0].Name
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// Package domain defines core business entities and value objects for Axon.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// Config mirrors ~/.axon/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Server              ServerSettings    `yaml:"server"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Retrieval           RetrievalSettings `yaml:"retrieval"`
	Embedding           EmbeddingSettings `yaml:"embedding"`
	Router              RouterSettings    `yaml:"router"`
	Actions             ActionSettings    `yaml:"actions"`
	Security            SecuritySettings  `yaml:"security"`
	History             HistorySettings   `yaml:"history"`
}

// ServerSettings configures the HTTP transport boundary.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// Preferences selects which configured model serves each role.
type Preferences struct {
	GeneralModel   string `yaml:"general_model"`
	StepBackModel  string `yaml:"step_back_model"`
	AnswerModel    string `yaml:"answer_model"`
	ToolsModel     string `yaml:"tools_model"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// ModelDefinition describes an AI provider endpoint declared in the config file.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind,omitempty"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var,omitempty"`
	ModelID    string `yaml:"model_id"`
	MaxTokens  int    `yaml:"max_tokens,omitempty"`
}

// RetrievalSettings tunes the step-back pipeline and the document index.
type RetrievalSettings struct {
	K         int    `yaml:"k"`
	IndexPath string `yaml:"index_path"`
	DataDir   string `yaml:"data_dir"`
	ChunkSize int    `yaml:"chunk_size"`
	Overlap   int    `yaml:"chunk_overlap"`
}

// EmbeddingSettings selects the embedding engine used by the knowledge store.
type EmbeddingSettings struct {
	Engine     string `yaml:"engine"` // "ollama" or "genai"
	Model      string `yaml:"model"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	AuthEnvVar string `yaml:"auth_env_var,omitempty"`
}

// RouterSettings holds the ordered keyword sets used for lane classification.
type RouterSettings struct {
	ActionKeywords    []string `yaml:"action_keywords"`
	RetrievalKeywords []string `yaml:"retrieval_keywords"`
}

// ActionSettings controls how system-command tool calls are rendered into
// literal command text and how long a pending command stays confirmable.
type ActionSettings struct {
	PackageManager    string `yaml:"package_manager"`
	OpenCommand       string `yaml:"open_command"`
	PendingTTLSeconds int    `yaml:"pending_ttl"`
}

// SecuritySettings defines client-side guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// HistorySettings controls the client interaction log.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

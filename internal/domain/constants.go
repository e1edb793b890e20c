package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultGatewayTimeout bounds a single language-model call
	DefaultGatewayTimeout = 60 * time.Second
	// DefaultPendingTTL is how long a deferred command stays confirmable
	DefaultPendingTTL = 2 * time.Minute
)

// Retrieval constants
const (
	// DefaultRetrievalK is the number of chunks fetched per query
	DefaultRetrievalK = 5
	// DefaultChunkSize is the splitter target size in characters
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the splitter overlap in characters
	DefaultChunkOverlap = 100
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 1024
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// DefaultActionKeywords is the ordered-first lane vocabulary: utterances that
// may require execution authority. Checked before the retrieval set.
func DefaultActionKeywords() []string {
	return []string{
		"time", "date", "open", "launch",
		"install", "uninstall", "remove", "update", "upgrade", "download", "package",
	}
}

// DefaultRetrievalKeywords is the personal-knowledge lane vocabulary.
func DefaultRetrievalKeywords() []string {
	return []string{
		"resume", "kunal", "skills", "project", "contact",
		"document", "experience", "education", "email",
	}
}

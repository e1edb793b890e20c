// Package knowledge implements the document index behind the retrieval
// pipeline. Chunks and their embedding vectors live in a local SQLite
// database; similarity is computed in process so the store works without
// any native vector extension.
package knowledge

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	content TEXT NOT NULL,
	embedding BLOB NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
`

// Store is a SQLite-backed vector index over document chunks.
type Store struct {
	db       *sql.DB
	embedder ports.Embedder
}

// NewStore opens (or creates) the index database at path.
func NewStore(path string, embedder ports.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("knowledge store: embedder is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	return &Store{db: db, embedder: embedder}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add implements ports.KnowledgeWriter. Chunks from the same source replace
// any previously ingested chunks for that source.
func (s *Store) Add(ctx context.Context, source string, texts []string) error {
	if len(texts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", source); err != nil {
		return fmt.Errorf("replace source %s: %w", source, err)
	}

	now := time.Now().UTC().Format(domain.TimestampFormat)
	for i, text := range texts {
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed chunk %d of %s: %w", i, source, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO chunks (source, ordinal, content, embedding, created_at) VALUES (?, ?, ?, ?, ?)",
			source, i, text, encodeVector(vector), now)
		if err != nil {
			return fmt.Errorf("insert chunk %d of %s: %w", i, source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest transaction: %w", err)
	}
	return nil
}

// SimilaritySearch implements ports.KnowledgeStore. It embeds the query,
// scores every stored chunk by cosine similarity and returns the k best in
// descending order. Ties keep insertion order, so results are deterministic
// for a static index.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]domain.Chunk, error) {
	if k <= 0 {
		k = domain.DefaultRetrievalK
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT source, ordinal, content, embedding FROM chunks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}
	defer rows.Close()

	var scored []domain.Chunk
	for rows.Next() {
		var (
			chunk domain.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.Source, &chunk.Ordinal, &chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunk.Score = cosineSimilarity(queryVec, decodeVector(blob))
		scored = append(scored, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Count reports the number of indexed chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var (
	_ ports.KnowledgeStore  = (*Store)(nil)
	_ ports.KnowledgeWriter = (*Store)(nil)
)

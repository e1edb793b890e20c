// Package ingest loads plain-text documents into the knowledge store.
package ingest

import (
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
)

// Splitter cuts a document into overlapping chunks, preferring paragraph
// and line boundaries over mid-word cuts.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter builds a splitter, filling zero values with defaults.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = domain.DefaultChunkOverlap
	}
	return &Splitter{ChunkSize: chunkSize, Overlap: overlap}
}

var separators = []string{"\n\n", "\n", " ", ""}

// Split returns the chunks of text in document order. Whitespace-only
// chunks are dropped.
func (s *Splitter) Split(text string) []string {
	var out []string
	for _, chunk := range s.split(text, separators) {
		trimmed := strings.TrimSpace(chunk)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *Splitter) split(text string, seps []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	sep := seps[len(seps)-1]
	rest := seps
	for i, candidate := range seps {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	var parts []string
	if sep == "" {
		parts = splitEvery(text, s.ChunkSize)
	} else {
		parts = strings.Split(text, sep)
	}

	var (
		chunks  []string
		current []string
		size    int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, sep))
		current, size = s.carryOverlap(current, sep)
	}

	for _, part := range parts {
		if len(part) > s.ChunkSize {
			flush()
			chunks = append(chunks, s.split(part, rest)...)
			current, size = nil, 0
			continue
		}
		if size+len(part)+len(sep) > s.ChunkSize && size > 0 {
			flush()
		}
		current = append(current, part)
		size += len(part) + len(sep)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, sep))
	}
	return chunks
}

// carryOverlap keeps the tail of the just-flushed chunk so consecutive
// chunks share up to Overlap characters of context.
func (s *Splitter) carryOverlap(parts []string, sep string) ([]string, int) {
	var (
		kept []string
		size int
	)
	for i := len(parts) - 1; i >= 0; i-- {
		next := size + len(parts[i]) + len(sep)
		if next > s.Overlap {
			break
		}
		kept = append([]string{parts[i]}, kept...)
		size = next
	}
	return kept, size
}

func splitEvery(text string, n int) []string {
	var out []string
	for len(text) > n {
		out = append(out, text[:n])
		text = text[n:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

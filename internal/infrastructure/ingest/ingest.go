package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kunalverma/axon-go/internal/ports"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Documents int
	Chunks    int
}

// Ingestor walks a data directory and loads every document into the
// knowledge store.
type Ingestor struct {
	Writer   ports.KnowledgeWriter
	Splitter *Splitter
	Logger   ports.Logger
}

// supported reports whether a file should be ingested.
func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".pdf":
		return true
	default:
		return false
	}
}

// readDocument extracts plain text from path. PDFs go through text
// extraction; everything else is read as-is.
func readDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

// Run ingests every supported file under dir. Each file is split and stored
// under its base name, replacing any prior chunks for that file.
func (in *Ingestor) Run(ctx context.Context, dir string) (Stats, error) {
	if in.Writer == nil || in.Splitter == nil {
		return Stats{}, fmt.Errorf("ingestor dependencies not initialized")
	}

	var stats Stats
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supported(d.Name()) {
			return nil
		}

		text, err := readDocument(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		chunks := in.Splitter.Split(text)
		if len(chunks) == 0 {
			return nil
		}
		if err := in.Writer.Add(ctx, d.Name(), chunks); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}

		stats.Documents++
		stats.Chunks += len(chunks)
		if in.Logger != nil {
			in.Logger.Info("document ingested", map[string]interface{}{
				"source": d.Name(),
				"chunks": len(chunks),
			})
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk data directory: %w", err)
	}
	return stats, nil
}

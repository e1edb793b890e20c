package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitShortTextIsOneChunk(t *testing.T) {
	s := NewSplitter(1000, 100)
	chunks := s.Split("a short document")
	if len(chunks) != 1 || chunks[0] != "a short document" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("alpha ", 20)
	para2 := strings.Repeat("beta ", 20)
	s := NewSplitter(130, 0)

	chunks := s.Split(para1 + "\n\n" + para2)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "alpha") || !strings.HasPrefix(chunks[1], "beta") {
		t.Errorf("paragraphs not kept intact: %v", chunks)
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("word ", 600)
	s := NewSplitter(200, 40)

	for i, chunk := range s.Split(text) {
		if len(chunk) > 200 {
			t.Errorf("chunk %d is %d chars", i, len(chunk))
		}
	}
}

func TestSplitCarriesOverlap(t *testing.T) {
	text := strings.Repeat("word ", 100)
	s := NewSplitter(100, 20)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	tail := chunks[0][len(chunks[0])-10:]
	if !strings.Contains(chunks[1], strings.TrimSpace(tail)) {
		t.Errorf("no overlap between %q and %q", chunks[0], chunks[1])
	}
}

func TestSplitUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 2500)
	s := NewSplitter(1000, 100)

	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 1000 {
			t.Errorf("chunk %d is %d chars", i, len(chunk))
		}
	}
}

func TestSplitDropsWhitespaceChunks(t *testing.T) {
	s := NewSplitter(10, 0)
	for _, chunk := range s.Split("one\n\n   \n\ntwo") {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("whitespace chunk survived: %q", chunk)
		}
	}
}

type recordWriter struct {
	adds map[string][]string
}

func (w *recordWriter) Add(_ context.Context, source string, texts []string) error {
	if w.adds == nil {
		w.adds = map[string][]string{}
	}
	w.adds[source] = texts
	return nil
}

func TestIngestorWalksSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"resume.txt":  "kunal's resume content",
		"notes.md":    "project notes",
		"photo.png":   "binary-ish",
		"config.yaml": "not a document",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	writer := &recordWriter{}
	ing := &Ingestor{Writer: writer, Splitter: NewSplitter(1000, 100)}

	stats, err := ing.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Documents != 2 {
		t.Errorf("Documents = %d, want 2", stats.Documents)
	}
	if _, ok := writer.adds["resume.txt"]; !ok {
		t.Errorf("resume.txt not ingested: %v", writer.adds)
	}
	if _, ok := writer.adds["photo.png"]; ok {
		t.Errorf("png should be skipped")
	}
	if _, ok := writer.adds["config.yaml"]; ok {
		t.Errorf("yaml should be skipped")
	}
}

func TestSupportedExtensions(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"resume.txt", true},
		{"notes.md", true},
		{"resume.pdf", true},
		{"RESUME.PDF", true},
		{"photo.png", false},
		{"archive.zip", false},
		{"noextension", false},
	}
	for _, tc := range cases {
		if got := supported(tc.name); got != tc.want {
			t.Errorf("supported(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

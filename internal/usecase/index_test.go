package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"rulesplit/config"
	"rulesplit/internal/adapter/analyzer"
	"rulesplit/internal/adapter/fs"
	"rulesplit/internal/adapter/store"
	"rulesplit/internal/domain"
)

func setupCorpus(t *testing.T) (string, *store.BoltStore) {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"a.txt":        "Dr. Smith can't go. He left.",
		"notes/b.txt":  `"Hello." She left... Then what?`,
		"notes/c.md":   "sci-fi fans",
		"skip/ignored": "not included",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := config.EnsureDataDir(root); err != nil {
		t.Fatal(err)
	}
	st, err := store.NewBoltStore(config.StoreDBPath(root))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	return root, st
}

func newIndexer(t *testing.T, st *store.BoltStore) *IndexUseCase {
	t.Helper()
	cfg := config.DefaultConfig()
	reader, err := fs.NewReader(cfg.Index.Encoding)
	if err != nil {
		t.Fatal(err)
	}
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	return NewIndexUseCase(st, walker, reader, analyzer.Default(), 2, nil)
}

func TestIndex_TokenizesAndStores(t *testing.T) {
	root, st := setupCorpus(t)
	uc := newIndexer(t, st)

	var calls atomic.Int32
	result, err := uc.Index(context.Background(), root, func(processed, total int, _ string) {
		calls.Add(1)
		if processed > total {
			t.Errorf("processed %d > total %d", processed, total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.FilesIndexed != 3 {
		t.Errorf("expected 3 files indexed, got %d (errors: %v)", result.FilesIndexed, result.Errors)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 progress calls, got %d", calls.Load())
	}
	// a.txt: 2, b.txt: 3, c.md: 1
	if result.SentencesCreated != 6 {
		t.Errorf("expected 6 sentences, got %d", result.SentencesCreated)
	}

	show := NewShowUseCase(st)
	s, err := show.Sentence(filepath.Join(root, "a.txt"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "Dr. Smith can not go ." {
		t.Errorf("unexpected first sentence: %q", s.String())
	}

	doc, err := show.Document(filepath.Join(root, "notes", "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Sentences[0].String(); got != `" Hello . "` {
		t.Errorf("expected quoted sentence, got %q", got)
	}

	stats, err := show.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocs != 3 || stats.TotalSentences != 6 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgSentenceLen <= 0 {
		t.Errorf("expected positive average sentence length, got %f", stats.AvgSentenceLen)
	}
}

func TestIndex_Incremental(t *testing.T) {
	root, st := setupCorpus(t)
	uc := newIndexer(t, st)

	if _, err := uc.Index(context.Background(), root, nil); err != nil {
		t.Fatal(err)
	}

	result, err := uc.Index(context.Background(), root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesIndexed != 0 || result.FilesSkipped != 3 {
		t.Errorf("expected all files skipped, got %+v", result)
	}

	// Modify one file and remove another.
	path := filepath.Join(root, "a.txt")
	if err := os.WriteFile(path, []byte("Only one."), 0644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "notes", "c.md")); err != nil {
		t.Fatal(err)
	}

	result, err = uc.Index(context.Background(), root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesIndexed != 1 || result.FilesSkipped != 1 || result.FilesDeleted != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	show := NewShowUseCase(st)
	doc, err := show.Document(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Sentences.Len() != 1 {
		t.Errorf("expected re-tokenized document, got %v", doc.Sentences)
	}
	if _, err := show.Document(filepath.Join(root, "notes", "c.md")); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for removed file, got %v", err)
	}
}

func TestIndex_ReadErrorsAreCollected(t *testing.T) {
	root, st := setupCorpus(t)
	uc := newIndexer(t, st)

	unreadable := filepath.Join(root, "locked.txt")
	if err := os.WriteFile(unreadable, []byte("x"), 0000); err != nil {
		t.Fatal(err)
	}
	if f, err := os.Open(unreadable); err == nil {
		f.Close()
		t.Skip("running with permissions that ignore file modes")
	}

	result, err := uc.Index(context.Background(), root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected one collected error, got %v", result.Errors)
	}
	if result.FilesIndexed != 3 {
		t.Errorf("expected remaining files indexed, got %d", result.FilesIndexed)
	}
}

func TestIndex_Cancelled(t *testing.T) {
	root, st := setupCorpus(t)
	uc := newIndexer(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.Index(ctx, root, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestShow_SentenceOutOfRange(t *testing.T) {
	root, st := setupCorpus(t)
	if _, err := newIndexer(t, st).Index(context.Background(), root, nil); err != nil {
		t.Fatal(err)
	}

	_, err := NewShowUseCase(st).Sentence(filepath.Join(root, "a.txt"), 10)
	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

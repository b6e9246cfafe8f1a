package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"rulesplit/internal/adapter/fs"
	"rulesplit/internal/domain"
	"rulesplit/internal/logging"
	"rulesplit/internal/port"
)

// IndexUseCase tokenizes the text files of a directory into the corpus store.
type IndexUseCase struct {
	store     port.DocumentStore
	walker    port.FileWalker
	reader    *fs.Reader
	tokenizer port.Tokenizer
	workers   int
	logger    *logging.Logger
}

// NewIndexUseCase creates a new index use case. workers <= 0 means GOMAXPROCS.
func NewIndexUseCase(
	store port.DocumentStore,
	walker port.FileWalker,
	reader *fs.Reader,
	tokenizer port.Tokenizer,
	workers int,
	logger *logging.Logger,
) *IndexUseCase {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &IndexUseCase{
		store:     store,
		walker:    walker,
		reader:    reader,
		tokenizer: tokenizer,
		workers:   workers,
		logger:    logger.With("component", "index"),
	}
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	FilesIndexed     int
	FilesSkipped     int
	FilesDeleted     int
	SentencesCreated int
	TokensCreated    int
	Errors           []string
}

// ProgressFunc is called after each indexed file.
type ProgressFunc func(processed, total int, currentFile string)

// Index tokenizes new and modified files under root, removes documents whose
// files are gone, and refreshes the corpus stats. Failures on single files
// are reported in the result and do not stop the run.
func (u *IndexUseCase) Index(ctx context.Context, root string, progress ProgressFunc) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}
	existingMap := make(map[string]domain.Document, len(existingDocs))
	for _, doc := range existingDocs {
		existingMap[doc.Path] = doc
	}

	seenPaths := make(map[string]bool, len(files))
	var pending []port.FileInfo
	for _, file := range files {
		seenPaths[file.Path] = true
		if existing, ok := existingMap[file.Path]; ok && existing.ModTime.Unix() >= file.ModTime {
			result.FilesSkipped++
			continue
		}
		pending = append(pending, file)
	}

	for path, doc := range existingMap {
		if seenPaths[path] {
			continue
		}
		if err := u.store.DeleteDoc(doc.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			continue
		}
		u.logger.Debug("removed document", "path", path)
		result.FilesDeleted++
	}

	var mu sync.Mutex
	processed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, file := range pending {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := u.indexFile(file)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				u.logger.Warn("failed to index file", "path", file.Path, "error", err)
				result.Errors = append(result.Errors, fmt.Sprintf("failed to index %s: %v", file.Path, err))
			} else {
				u.logger.Debug("indexed file", "path", file.Path, "sentences", doc.Sentences.Len())
				result.FilesIndexed++
				result.SentencesCreated += doc.Sentences.Len()
				result.TokensCreated += doc.Sentences.TokenCount()
			}
			if progress != nil {
				progress(processed, len(pending), file.Path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats, err := u.collectStats()
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	u.logger.Info("index complete",
		"indexed", result.FilesIndexed,
		"skipped", result.FilesSkipped,
		"deleted", result.FilesDeleted,
		"errors", len(result.Errors))
	return result, nil
}

// indexFile reads, tokenizes and stores a single file.
func (u *IndexUseCase) indexFile(file port.FileInfo) (domain.Document, error) {
	content, err := u.reader.ReadFile(file.Path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	doc := domain.Document{
		ID:        generateDocID(file.Path),
		Path:      file.Path,
		ModTime:   time.Unix(file.ModTime, 0),
		Encoding:  u.reader.Encoding(),
		Sentences: u.tokenizer.Tokenize(content),
	}
	if err := u.store.PutDoc(doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to store document: %w", err)
	}
	return doc, nil
}

func (u *IndexUseCase) collectStats() (domain.Stats, error) {
	docs, err := u.store.ListDocs()
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{TotalDocs: len(docs)}
	for _, doc := range docs {
		sentences, tokens, err := u.store.Counts(doc.ID)
		if err != nil {
			return domain.Stats{}, err
		}
		stats.TotalSentences += sentences
		stats.TotalTokens += tokens
	}
	if stats.TotalSentences > 0 {
		stats.AvgSentenceLen = float64(stats.TotalTokens) / float64(stats.TotalSentences)
	}
	return stats, nil
}

// generateDocID creates a unique ID for a document based on its path.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

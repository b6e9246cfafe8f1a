package memstore

import (
	"fmt"
	"sync"

	"rulesplit/internal/domain"
)

// MemoryStore is a document store that lives only as long as the process.
// The index command uses it for dry runs.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]domain.Document
	paths map[string]string
	stats domain.Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]domain.Document),
		paths: make(map[string]string),
	}
}

func (s *MemoryStore) PutDoc(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Sentences = doc.Sentences.Clone()
	s.docs[doc.ID] = doc
	s.paths[doc.Path] = doc.ID
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	doc.Sentences = doc.Sentences.Clone()
	return doc, nil
}

func (s *MemoryStore) GetDocByPath(path string) (domain.Document, error) {
	s.mu.RLock()
	id, ok := s.paths[path]
	s.mu.RUnlock()
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return s.GetDoc(id)
}

func (s *MemoryStore) DeleteDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		delete(s.paths, doc.Path)
	}
	delete(s.docs, id)
	return nil
}

// ListDocs returns every document without its sentences.
func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		doc.Sentences = nil
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MemoryStore) Counts(id string) (sentences, tokens int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return doc.Sentences.Len(), doc.Sentences.TokenCount(), nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) UpdateStats(stats domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

package usecase

import (
	"fmt"
	"path/filepath"

	"rulesplit/internal/domain"
	"rulesplit/internal/port"
)

// ShowUseCase reads stored sentences back out of the corpus.
type ShowUseCase struct {
	store port.DocumentStore
}

func NewShowUseCase(store port.DocumentStore) *ShowUseCase {
	return &ShowUseCase{store: store}
}

// Document returns the stored document for a file path.
func (u *ShowUseCase) Document(path string) (domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("invalid path: %w", err)
	}
	return u.store.GetDocByPath(abs)
}

// Sentence returns sentence i of the document stored for path.
func (u *ShowUseCase) Sentence(path string, i int) (domain.Sentence, error) {
	doc, err := u.Document(path)
	if err != nil {
		return nil, err
	}
	return doc.Sentences.Sentence(i)
}

// Stats returns the corpus stats recorded by the last index run.
func (u *ShowUseCase) Stats() (domain.Stats, error) {
	return u.store.GetStats()
}

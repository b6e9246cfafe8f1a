package port

import "rulesplit/internal/domain"

type DocumentStore interface {
	PutDoc(doc domain.Document) error

	GetDoc(id string) (domain.Document, error)

	GetDocByPath(path string) (domain.Document, error)

	DeleteDoc(id string) error

	ListDocs() ([]domain.Document, error)

	Counts(id string) (sentences, tokens int, err error)

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Close() error
}

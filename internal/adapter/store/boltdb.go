package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"rulesplit/internal/domain"
)

// ErrNotFound is returned when a document is not in the store.
var ErrNotFound = domain.ErrNotFound

var (
	bucketDocs      = []byte("docs")
	bucketSentences = []byte("sentences")
	bucketPaths     = []byte("paths")
	bucketStats     = []byte("stats")
	keyStats        = []byte("corpus_stats")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketSentences, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type docMeta struct {
	Path      string `json:"path"`
	ModTime   int64  `json:"mod_time"`
	Encoding  string `json:"encoding"`
	Sentences int    `json:"sentences"`
	Tokens    int    `json:"tokens"`
}

// PutDoc stores the document and its sentences, replacing any previous
// version with the same ID.
func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putDoc(tx, doc)
	})
}

// PutDocs stores several documents in one transaction.
func (s *BoltStore) PutDocs(docs []domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, doc := range docs {
			if err := putDoc(tx, doc); err != nil {
				return fmt.Errorf("failed to store %s: %w", doc.Path, err)
			}
		}
		return nil
	})
}

func putDoc(tx *bbolt.Tx, doc domain.Document) error {
	meta := docMeta{
		Path:      doc.Path,
		ModTime:   doc.ModTime.Unix(),
		Encoding:  doc.Encoding,
		Sentences: doc.Sentences.Len(),
		Tokens:    doc.Sentences.TokenCount(),
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := tx.Bucket(bucketDocs).Put([]byte(doc.ID), data); err != nil {
		return err
	}

	sentences := doc.Sentences
	if sentences == nil {
		sentences = domain.Sentences{}
	}
	data, err = json.Marshal(sentences)
	if err != nil {
		return err
	}
	if err := tx.Bucket(bucketSentences).Put([]byte(doc.ID), data); err != nil {
		return err
	}

	if paths := tx.Bucket(bucketPaths); paths != nil {
		return paths.Put([]byte(doc.Path), []byte(doc.ID))
	}
	return nil
}

// GetDoc returns the document with its sentences.
func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = docFromMeta(id, meta)

		if raw := tx.Bucket(bucketSentences).Get([]byte(id)); raw != nil {
			if err := json.Unmarshal(raw, &doc.Sentences); err != nil {
				return fmt.Errorf("corrupt sentences for %s: %w", id, err)
			}
		}
		return nil
	})
	return doc, err
}

// GetDocByPath looks a document up by its absolute file path.
func (s *BoltStore) GetDocByPath(path string) (domain.Document, error) {
	var id string
	err := s.db.View(func(tx *bbolt.Tx) error {
		paths := tx.Bucket(bucketPaths)
		if paths == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		v := paths.Get([]byte(path))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		id = string(v)
		return nil
	})
	if err != nil {
		return domain.Document{}, err
	}
	return s.GetDoc(id)
}

func (s *BoltStore) DeleteDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)
		if paths := tx.Bucket(bucketPaths); paths != nil {
			if data := docs.Get([]byte(id)); data != nil {
				var meta docMeta
				if err := json.Unmarshal(data, &meta); err == nil {
					if err := paths.Delete([]byte(meta.Path)); err != nil {
						return err
					}
				}
			}
		}
		if err := tx.Bucket(bucketSentences).Delete([]byte(id)); err != nil {
			return err
		}
		return docs.Delete([]byte(id))
	})
}

// ListDocs returns every document without its sentences.
func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocs)
		return b.ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, docFromMeta(string(k), meta))
			return nil
		})
	})
	return docs, err
}

// Counts returns the stored sentence and token totals for a document.
func (s *BoltStore) Counts(id string) (sentences, tokens int, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		sentences, tokens = meta.Sentences, meta.Tokens
		return nil
	})
	return sentences, tokens, err
}

func docFromMeta(id string, meta docMeta) domain.Document {
	return domain.Document{
		ID:       id,
		Path:     meta.Path,
		ModTime:  time.Unix(meta.ModTime, 0),
		Encoding: meta.Encoding,
	}
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

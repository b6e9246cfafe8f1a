package memstore

import (
	"errors"
	"testing"

	"rulesplit/internal/domain"
	"rulesplit/internal/port"
)

var _ port.DocumentStore = (*MemoryStore)(nil)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	doc := domain.Document{
		ID:        "d1",
		Path:      "/x/a.txt",
		Sentences: domain.Sentences{{"Hi", "."}, {"Bye", "!"}},
	}
	if err := s.PutDoc(doc); err != nil {
		t.Fatal(err)
	}
	doc.Sentences[0][0] = "mutated"

	got, err := s.GetDocByPath("/x/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got.Sentences[0][0] != "Hi" {
		t.Errorf("stored document was aliased: %v", got.Sentences)
	}

	sentences, tokens, err := s.Counts("d1")
	if err != nil {
		t.Fatal(err)
	}
	if sentences != 2 || tokens != 4 {
		t.Errorf("expected 2 sentences/4 tokens, got %d/%d", sentences, tokens)
	}

	if err := s.DeleteDoc("d1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetDocByPath("/x/a.txt"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

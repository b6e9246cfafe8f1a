package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrOutOfRange is returned when a sentence or token index is outside the sequence.
	ErrOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when a document is not in a store.
	ErrNotFound = errors.New("document not found")
)

// Sentence is an ordered run of tokens in reading order.
type Sentence []string

// Len returns the number of tokens in the sentence.
func (s Sentence) Len() int {
	return len(s)
}

// Token returns the token at index i.
func (s Sentence) Token(i int) (string, error) {
	if i < 0 || i >= len(s) {
		return "", fmt.Errorf("token %d of %d: %w", i, len(s), ErrOutOfRange)
	}
	return s[i], nil
}

// String joins the tokens with single spaces.
func (s Sentence) String() string {
	return strings.Join(s, " ")
}

type Document struct {
	ID        string
	Path      string
	ModTime   time.Time
	Encoding  string
	Sentences Sentences
}

type Stats struct {
	TotalDocs      int     `json:"total_docs"`
	TotalSentences int     `json:"total_sentences"`
	TotalTokens    int     `json:"total_tokens"`
	AvgSentenceLen float64 `json:"avg_sentence_len"`
}

// Sentences is the result of tokenizing one text. It is built once and
// treated as read-only afterwards.
type Sentences []Sentence

// Len returns the number of sentences.
func (s Sentences) Len() int {
	return len(s)
}

// Sentence returns the sentence at index i.
func (s Sentences) Sentence(i int) (Sentence, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("sentence %d of %d: %w", i, len(s), ErrOutOfRange)
	}
	return s[i], nil
}

// Tokens flattens all sentences into one token sequence.
func (s Sentences) Tokens() []string {
	out := make([]string, 0, s.TokenCount())
	for _, sent := range s {
		out = append(out, sent...)
	}
	return out
}

// TokenCount returns the total number of tokens.
func (s Sentences) TokenCount() int {
	n := 0
	for _, sent := range s {
		n += len(sent)
	}
	return n
}

// Clone returns a deep copy.
func (s Sentences) Clone() Sentences {
	if s == nil {
		return nil
	}
	out := make(Sentences, len(s))
	for i, sent := range s {
		out[i] = append(Sentence(nil), sent...)
	}
	return out
}

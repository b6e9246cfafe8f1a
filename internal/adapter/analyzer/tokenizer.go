package analyzer

import (
	"strings"
	"sync"

	"rulesplit/internal/domain"
)

// Tokenizer splits English text into sentences of word and punctuation
// tokens using a fixed rule set. It holds no per-call state and is safe for
// concurrent use.
type Tokenizer struct {
	rules Rules
}

// New creates a Tokenizer over a private copy of rules.
func New(rules Rules) *Tokenizer {
	r := Rules{
		KeepDot:       make(map[string]struct{}, len(rules.KeepDot)),
		Abbreviations: make(map[string][]string, len(rules.Abbreviations)),
	}
	for k := range rules.KeepDot {
		r.KeepDot[k] = struct{}{}
	}
	for k, v := range rules.Abbreviations {
		r.Abbreviations[strings.ToLower(k)] = append([]string(nil), v...)
	}
	return &Tokenizer{rules: r}
}

var (
	defaultOnce      sync.Once
	defaultTokenizer *Tokenizer
)

// Default returns the shared tokenizer built from DefaultRules.
func Default() *Tokenizer {
	defaultOnce.Do(func() {
		defaultTokenizer = New(DefaultRules())
	})
	return defaultTokenizer
}

// Tokenize runs the full pipeline over text. It never fails; empty input
// yields zero sentences.
func (t *Tokenizer) Tokenize(text string) domain.Sentences {
	raw := Split(Normalize(text))
	return Segment(t.Rewrite(t.Strip(raw)))
}

// Rules returns a copy of the tables in use.
func (t *Tokenizer) Rules() Rules {
	return t.rules.Clone()
}

// Tokenize runs text through the default tokenizer.
func Tokenize(text string) domain.Sentences {
	return Default().Tokenize(text)
}

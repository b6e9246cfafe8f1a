package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Rules holds the static tables the tokenizer consults. A Rules value is
// never mutated once handed to New.
type Rules struct {
	// KeepDot lists tokens whose trailing period belongs to the word
	// (titles and initialisms). Matching is case-sensitive.
	KeepDot map[string]struct{}

	// Abbreviations maps a lowercase surface form to its expansion.
	Abbreviations map[string][]string
}

var defaultKeepDot = []string{"Dr", "Mr", "Ms", "Mrs", "Miss", "Co", "Cie", "St", "Ave", "e.g", "i.e"}

var defaultAbbreviations = map[string][]string{
	"&":       {"and"},
	"can't":   {"can", "not"},
	"it's":    {"it", "is"},
	"he's":    {"he", "is"},
	"that's":  {"that", "is"},
	"i'll":    {"i", "will"},
	"i'd":     {"i", "would"},
	"i'm":     {"i", "am"},
	"i've":    {"i", "have"},
	"they'll": {"they", "will"},
	"they've": {"they", "have"},
	"what's":  {"what", "is"},
	"you're":  {"you", "are"},
	"we're":   {"we", "are"},
	"we've":   {"we", "have"},
	"we'll":   {"we", "will"},
	"we'd":    {"we", "had"},
	"you'll":  {"you", "will"},
	"let's":   {"let", "us"},
	"sci-fi":  {"science", "fiction"},
}

// DefaultRules returns a fresh copy of the built-in English tables.
func DefaultRules() Rules {
	r := Rules{
		KeepDot:       make(map[string]struct{}, len(defaultKeepDot)),
		Abbreviations: make(map[string][]string, len(defaultAbbreviations)),
	}
	for _, k := range defaultKeepDot {
		r.KeepDot[k] = struct{}{}
	}
	for k, v := range defaultAbbreviations {
		r.Abbreviations[k] = append([]string(nil), v...)
	}
	return r
}

// Clone returns a deep copy of the rule tables.
func (r Rules) Clone() Rules {
	c := Rules{
		KeepDot:       make(map[string]struct{}, len(r.KeepDot)),
		Abbreviations: make(map[string][]string, len(r.Abbreviations)),
	}
	for k := range r.KeepDot {
		c.KeepDot[k] = struct{}{}
	}
	for k, v := range r.Abbreviations {
		c.Abbreviations[k] = append([]string(nil), v...)
	}
	return c
}

// With returns a copy of r extended by the given entries. Abbreviation keys
// are lowercased; an entry replaces any existing expansion for the same key.
func (r Rules) With(keepDot []string, abbreviations map[string][]string) Rules {
	c := r.Clone()
	for _, k := range keepDot {
		c.KeepDot[k] = struct{}{}
	}
	for k, v := range abbreviations {
		c.Abbreviations[strings.ToLower(k)] = append([]string(nil), v...)
	}
	return c
}

// KeepDotList returns the keep-dot entries in sorted order.
func (r Rules) KeepDotList() []string {
	out := make([]string, 0, len(r.KeepDot))
	for k := range r.KeepDot {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AbbreviationKeys returns the abbreviation keys in sorted order.
func (r Rules) AbbreviationKeys() []string {
	out := make([]string, 0, len(r.Abbreviations))
	for k := range r.Abbreviations {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fingerprint returns a short stable hash of the tables. Stored corpora
// record it so a rules change can trigger a rebuild.
func (r Rules) Fingerprint() string {
	relevant := struct {
		KeepDot       []string            `json:"keep_dot"`
		Abbreviations map[string][]string `json:"abbreviations"`
	}{
		KeepDot:       r.KeepDotList(),
		Abbreviations: r.Abbreviations,
	}

	// encoding/json sorts map keys, so the encoding is deterministic.
	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

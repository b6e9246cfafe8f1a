package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rewrite expands abbreviations and contractions, splits off "n't" and "'s",
// and breaks hyphenated words apart. The first matching rule wins.
func (t *Tokenizer) Rewrite(tokens []string) []string {
	out := make([]string, 0, len(tokens)+len(tokens)/4)
	for _, tok := range tokens {
		if expansion, ok := t.rules.Abbreviations[strings.ToLower(tok)]; ok {
			out = appendExpansion(out, tok, expansion)
			continue
		}

		switch {
		case strings.HasSuffix(tok, "n't"):
			out = splitHyphens(out, tok[:len(tok)-3])
			out = append(out, "not")
		case strings.HasSuffix(tok, "'s"):
			out = splitHyphens(out, tok[:len(tok)-2])
			out = append(out, "'s")
		default:
			out = splitHyphens(out, tok)
		}
	}
	return out
}

// appendExpansion emits the table entry, carrying an initial capital from
// the source token onto the first replacement.
func appendExpansion(out []string, tok string, expansion []string) []string {
	first, _ := utf8.DecodeRuneInString(tok)
	for i, rep := range expansion {
		if i == 0 && unicode.IsUpper(first) {
			rep = capitalize(rep)
		}
		out = append(out, rep)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// splitHyphens appends tok, split on '-' with a "-" token between pieces.
// Empty pieces are dropped; numbers keep their hyphens.
func splitHyphens(out []string, tok string) []string {
	if tok == "" {
		return out
	}
	if !strings.Contains(tok, "-") || hasDigit(tok) {
		return append(out, tok)
	}
	for i, piece := range strings.Split(tok, "-") {
		if i > 0 {
			out = append(out, "-")
		}
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

package analyzer

import (
	"strings"
	"unicode"
)

const (
	// asciiPunct is every printable ASCII punctuation character.
	asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	// numericPunct leaves '.' and '-' inside numbers such as 3.14 and 12-34.
	numericPunct = "!\"#$%&'()*+,/:;<=>?@[\\]^_`{|}~"
)

// Strip peels leading and trailing punctuation off each raw token into
// single-character tokens. Pure punctuation tokens contribute only their
// characters.
func (t *Tokenizer) Strip(raw []string) []string {
	out := make([]string, 0, len(raw)*2)
	for _, tok := range raw {
		out = t.stripToken(out, tok)
	}
	return out
}

func (t *Tokenizer) stripToken(out []string, tok string) []string {
	punct := asciiPunct
	if hasDigit(tok) {
		punct = numericPunct
	}

	for len(tok) > 0 && isPunct(tok[0], punct) {
		out = append(out, tok[:1])
		tok = tok[1:]
	}
	if len(tok) == 0 {
		return out
	}

	// tail collects stripped characters, most recent first.
	var tail []string
	for isPunct(tok[len(tok)-1], punct) {
		last := tok[len(tok)-1]
		if last == '.' && t.keepsDot(tok) {
			break
		}
		tail = append(tail, tok[len(tok)-1:])
		tok = tok[:len(tok)-1]
	}

	out = append(out, tok)
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// keepsDot reports whether the final '.' of tok is part of the word.
func (t *Tokenizer) keepsDot(tok string) bool {
	if _, ok := t.rules.KeepDot[tok[:len(tok)-1]]; ok {
		return true
	}
	return len(tok) == 2 && tok[0] >= 'A' && tok[0] <= 'Z'
}

func isPunct(c byte, punct string) bool {
	return strings.IndexByte(punct, c) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

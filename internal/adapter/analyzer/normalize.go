package analyzer

import "strings"

// normalizer rewrites the typographic punctuation that would otherwise
// defeat the ASCII punctuation rules. Invalid UTF-8 passes through untouched.
var normalizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"’", "'",
	"—", "-",
)

// Normalize maps curly double quotes to '"', the right single quote to '\''
// and the em-dash to '-'. Nothing else changes.
func Normalize(text string) string {
	return normalizer.Replace(text)
}

// Split breaks text on runs of Unicode whitespace.
func Split(text string) []string {
	return strings.Fields(text)
}

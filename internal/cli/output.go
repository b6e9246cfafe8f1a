package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"rulesplit/internal/domain"
)

// sentencePrinter writes sentences one per line or as a JSON array.
type sentencePrinter struct {
	w      io.Writer
	json   bool
	number bool

	index *color.Color
	punct *color.Color
}

func newSentencePrinter(w io.Writer, asJSON, number, colored bool) *sentencePrinter {
	p := &sentencePrinter{
		w:      w,
		json:   asJSON,
		number: number,
		index:  color.New(color.FgCyan),
		punct:  color.New(color.FgYellow),
	}
	if colored {
		p.index.EnableColor()
		p.punct.EnableColor()
	} else {
		p.index.DisableColor()
		p.punct.DisableColor()
	}
	return p
}

// Print writes sentences, numbering them from offset.
func (p *sentencePrinter) Print(sentences domain.Sentences, offset int) error {
	if p.json {
		if sentences == nil {
			sentences = domain.Sentences{}
		}
		return json.NewEncoder(p.w).Encode(sentences)
	}

	for i, s := range sentences {
		var b strings.Builder
		if p.number {
			b.WriteString(p.index.Sprintf("%4d", offset+i))
			b.WriteString("  ")
		}
		for j, tok := range s {
			if j > 0 {
				b.WriteByte(' ')
			}
			if isPunctToken(tok) {
				b.WriteString(p.punct.Sprint(tok))
			} else {
				b.WriteString(tok)
			}
		}
		if _, err := fmt.Fprintln(p.w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func isPunctToken(tok string) bool {
	return len(tok) == 1 && strings.ContainsAny(tok, "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")
}

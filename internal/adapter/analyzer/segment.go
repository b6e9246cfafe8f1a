package analyzer

import "rulesplit/internal/domain"

const quote = `"`

func isTerminator(tok string) bool {
	switch tok {
	case ".", "!", "?", ":":
		return true
	}
	return false
}

// Segment groups rewritten tokens into sentences. A sentence ends after
// '.', '!', '?' or ':'. A terminator that would form a sentence on its own
// (the dots of an ellipsis) is discarded instead. Quotes around dialogue are
// attached to the sentence they close: a '"' following a sentence that opened
// with a quote and has not closed it joins that sentence, and a second '"' at
// the start of a sentence is donated to the previous one.
func Segment(tokens []string) domain.Sentences {
	var sentences domain.Sentences
	atStart := true

	for _, tok := range tokens {
		if atStart && tok == quote && len(sentences) > 0 {
			prev := sentences[len(sentences)-1]
			if len(prev) > 0 && prev[0] == quote && prev[len(prev)-1] != quote {
				sentences[len(sentences)-1] = append(prev, tok)
				continue
			}
		}

		if atStart {
			sentences = append(sentences, domain.Sentence{})
			atStart = false
		}
		cur := len(sentences) - 1

		if tok == quote && cur > 0 && len(sentences[cur]) == 1 && sentences[cur][0] == quote {
			sentences[cur-1] = append(sentences[cur-1], tok)
		} else {
			sentences[cur] = append(sentences[cur], tok)
		}

		if isTerminator(tok) {
			if len(sentences[cur]) == 1 {
				sentences[cur] = sentences[cur][:0]
				continue
			}
			atStart = true
		}
	}

	// An ellipsis at the very end leaves an empty sentence behind.
	if n := len(sentences); n > 0 && len(sentences[n-1]) == 0 {
		sentences = sentences[:n-1]
	}
	return sentences
}

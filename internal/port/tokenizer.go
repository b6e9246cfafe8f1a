package port

import "rulesplit/internal/domain"

type Tokenizer interface {
	Tokenize(text string) domain.Sentences
}

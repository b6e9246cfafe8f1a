package port

// The interfaces below describe collaborators that consume tokenizer output.
// None of them is implemented in this module.

// WordVectors maps tokens to fixed-length embeddings.
type WordVectors interface {
	// Decode returns the vector for token, or a zero vector of Dimension()
	// length when the token is unknown. Callers must not modify the result.
	Decode(token string) []float64

	Contains(token string) bool

	Dimension() int

	Len() int
}

// TaggedCorpus is a sentence-segmented corpus with parallel label sequences.
type TaggedCorpus interface {
	Len() int

	Tokens(i int) ([]string, error)

	POS(i int) ([]string, error)

	Entities(i int) ([]string, error)
}

// AlignedPrinter prints parallel token rows so labels line up under their words.
type AlignedPrinter interface {
	Print(lines ...[]string) error
}

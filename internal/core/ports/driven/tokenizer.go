package driven

// Tokenizer converts text to a token stream and back.
// Chunk boundaries are defined in token space, so encode followed by
// decode of a token window must recover the corresponding text.
type Tokenizer interface {
	// Encode converts text into a sequence of token IDs.
	Encode(text string) []int

	// Decode converts a sequence of token IDs back into text.
	Decode(tokens []int) string

	// Name returns the encoding name (e.g., "cl100k_base").
	Name() string
}

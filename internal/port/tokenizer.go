package port

// Tokenizer splits raw text into lowercase, non-empty tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Segmenter detects word boundaries in text that has no whitespace
// between words. Units may carry surrounding whitespace.
type Segmenter interface {
	Segment(text string) []string
}

// TokenFilter drops excluded tokens, preserving order.
type TokenFilter interface {
	Filter(tokens []string) []string
}

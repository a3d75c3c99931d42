package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"wordfreq/internal/port"
)

// wordPattern matches runs of letters, digits and underscore.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// LatinTokenizer splits text on word boundaries.
type LatinTokenizer struct{}

// NewLatinTokenizer creates a new LatinTokenizer.
func NewLatinTokenizer() *LatinTokenizer {
	return &LatinTokenizer{}
}

// Tokenize lowercases text and returns its words in order.
func (t *LatinTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SegmentedTokenizer delegates boundary detection to a Segmenter.
type SegmentedTokenizer struct {
	seg port.Segmenter
}

// NewSegmentedTokenizer creates a tokenizer over seg.
func NewSegmentedTokenizer(seg port.Segmenter) *SegmentedTokenizer {
	return &SegmentedTokenizer{seg: seg}
}

// Tokenize returns the trimmed, lowercased, non-empty units produced by
// the segmenter.
func (t *SegmentedTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	units := t.seg.Segment(text)
	tokens := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.TrimFunc(u, unicode.IsSpace)
		if u == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(u))
	}
	return tokens
}

package analyzer

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// StopwordSet is a read-only set of excluded tokens.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words, taken verbatim.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether token is a stopword.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// LoadStopwords reads one stopword per line from path. A missing file
// yields an empty set.
func LoadStopwords(path string) (StopwordSet, error) {
	if path == "" {
		return StopwordSet{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StopwordSet{}, nil
		}
		return nil, err
	}
	defer f.Close()
	return ReadStopwords(f)
}

// ReadStopwords parses the stopword format: each line trimmed, blank lines
// ignored, no escaping or comments.
func ReadStopwords(r io.Reader) (StopwordSet, error) {
	s := StopwordSet{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Filter removes stopwords and tokens matching exclusion globs.
type Filter struct {
	stopwords StopwordSet
	patterns  []string
	minLength int
}

// NewFilter creates a Filter. Patterns must already be valid doublestar
// globs; minLength <= 0 disables the length check.
func NewFilter(stopwords StopwordSet, patterns []string, minLength int) *Filter {
	return &Filter{
		stopwords: stopwords,
		patterns:  patterns,
		minLength: minLength,
	}
}

// Filter returns the tokens that are kept, in their original order.
func (f *Filter) Filter(tokens []string) []string {
	if len(f.stopwords) == 0 && len(f.patterns) == 0 && f.minLength <= 0 {
		return tokens
	}
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f.excluded(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

func (f *Filter) excluded(tok string) bool {
	if f.stopwords.Contains(tok) {
		return true
	}
	if f.minLength > 0 && utf8.RuneCountInString(tok) < f.minLength {
		return true
	}
	for _, pattern := range f.patterns {
		matched, err := doublestar.Match(pattern, tok)
		if err == nil && matched {
			return true
		}
	}
	return false
}

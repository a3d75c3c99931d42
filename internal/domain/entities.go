package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the tokenization variant.
type Mode int

const (
	ModeLatin     Mode = iota // word-boundary splitting
	ModeSegmented             // dictionary segmentation for text without spaces
)

func (m Mode) String() string {
	switch m {
	case ModeSegmented:
		return "segmented"
	default:
		return "latin"
	}
}

// ParseMode accepts the language names understood on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "latin":
		return ModeLatin, nil
	case "zh", "segmented":
		return ModeSegmented, nil
	}
	return ModeLatin, fmt.Errorf("%w: unsupported language mode %q (want en|latin|zh|segmented)", ErrInvalidArgument, s)
}

// Entry is one ranked token.
type Entry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// RankedResult is ordered by Count descending, ties in first-occurrence order.
type RankedResult []Entry

// FrequencyTable counts tokens and remembers the order they were first seen.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add increments the count for token. Empty tokens are ignored.
func (t *FrequencyTable) Add(token string) {
	if token == "" {
		return
	}
	if _, seen := t.counts[token]; !seen {
		t.order = append(t.order, token)
	}
	t.counts[token]++
}

// Count returns the occurrences of token.
func (t *FrequencyTable) Count(token string) int {
	return t.counts[token]
}

// Len returns the number of distinct tokens.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Entries returns all tokens with counts in first-occurrence order.
func (t *FrequencyTable) Entries() []Entry {
	entries := make([]Entry, len(t.order))
	for i, tok := range t.order {
		entries[i] = Entry{Token: tok, Count: t.counts[tok]}
	}
	return entries
}

// Run is an archived pipeline run.
type Run struct {
	ID        string       `json:"id"`
	InputPath string       `json:"input_path"`
	Mode      string       `json:"mode"`
	TopK      int          `json:"top_k"`
	Tokens    int          `json:"tokens"`
	Distinct  int          `json:"distinct"`
	CreatedAt time.Time    `json:"created_at"`
	Result    RankedResult `json:"result"`
}

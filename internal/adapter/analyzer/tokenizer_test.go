package analyzer

import (
	"reflect"
	"testing"
)

func TestLatinTokenizer_Tokenize(t *testing.T) {
	tok := NewLatinTokenizer()

	got := tok.Tokenize("The cat sat on the mat. The cat ran.")
	want := []string{"the", "cat", "sat", "on", "the", "mat", "the", "cat", "ran"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLatinTokenizer_EmptyInput(t *testing.T) {
	tok := NewLatinTokenizer()

	for _, input := range []string{"", "   ", " ,.;!? -- "} {
		if tokens := tok.Tokenize(input); len(tokens) != 0 {
			t.Errorf("Tokenize(%q): expected 0 tokens, got %q", input, tokens)
		}
	}
}

func TestLatinTokenizer_Boundaries(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"hello_world", []string{"hello_world"}},
		{"hello-world", []string{"hello", "world"}},
		{"func(x, y)", []string{"func", "x", "y"}},
		{"CamelCase", []string{"camelcase"}},
		{"123numbers456", []string{"123numbers456"}},
		{"Café ÜBER naïve", []string{"café", "über", "naïve"}},
		{"don't", []string{"don", "t"}},
	}

	tok := NewLatinTokenizer()
	for _, tt := range tests {
		got := tok.Tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

type fakeSegmenter struct {
	units []string
}

func (f fakeSegmenter) Segment(string) []string { return f.units }

func TestSegmentedTokenizer_Tokenize(t *testing.T) {
	tok := NewSegmentedTokenizer(fakeSegmenter{units: []string{" 我们 ", "", "\t", "Love", "北京", "\n", "!"}})

	got := tok.Tokenize("ignored by fake")
	want := []string{"我们", "love", "北京", "!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSegmentedTokenizer_EmptyInput(t *testing.T) {
	tok := NewSegmentedTokenizer(fakeSegmenter{units: []string{"x"}})

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %q", tokens)
	}
}

package segment

import (
	"math"
	"unicode"
)

// Segmenter splits text using maximum-probability paths through a
// dictionary word graph.
type Segmenter struct {
	dict *Dictionary
}

// NewSegmenter creates a new segmenter with the given dictionary.
func NewSegmenter(dict *Dictionary) *Segmenter {
	return &Segmenter{dict: dict}
}

// NewFromFile loads the dictionary at path and returns a segmenter for it.
func NewFromFile(path string) (*Segmenter, error) {
	dict, err := LoadDictionary(path)
	if err != nil {
		return nil, err
	}
	return NewSegmenter(dict), nil
}

// Segment returns the units of text in order. Han runs are cut against the
// dictionary; runs of other letters and digits stay whole; whitespace runs
// form one unit; any other rune is a unit of its own.
func (s *Segmenter) Segment(text string) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); {
		r := runes[i]
		j := i + 1
		switch {
		case isHan(r):
			for j < len(runes) && isHan(runes[j]) {
				j++
			}
			out = append(out, s.cut(runes[i:j])...)
			i = j
			continue
		case isWordRune(r):
			for j < len(runes) && isWordRune(runes[j]) && !isHan(runes[j]) {
				j++
			}
		case unicode.IsSpace(r):
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
		}
		out = append(out, string(runes[i:j]))
		i = j
	}
	return out
}

// cut segments a run of Han characters.
func (s *Segmenter) cut(runes []rune) []string {
	n := len(runes)
	if n == 0 {
		return nil
	}

	// dag[i] holds the inclusive end indices of dictionary words starting at i.
	dag := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i; j < n && j-i+1 <= s.dict.maxLen; j++ {
			if s.dict.Contains(string(runes[i : j+1])) {
				dag[i] = append(dag[i], j)
			}
		}
		if len(dag[i]) == 0 || dag[i][0] != i {
			dag[i] = append([]int{i}, dag[i]...)
		}
	}

	type step struct {
		logProb float64
		end     int
	}
	route := make([]step, n+1)
	for i := n - 1; i >= 0; i-- {
		best := step{logProb: -math.MaxFloat64, end: i}
		for _, end := range dag[i] {
			p := s.dict.LogProbability(string(runes[i:end+1])) + route[end+1].logProb
			if p > best.logProb {
				best = step{logProb: p, end: end}
			}
		}
		route[i] = best
	}

	var words []string
	for i := 0; i < n; {
		end := route[i].end
		words = append(words, string(runes[i:end+1]))
		i = end + 1
	}
	return words
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

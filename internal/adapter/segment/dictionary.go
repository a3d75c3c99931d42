package segment

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"wordfreq/internal/domain"
)

// unknownLogProb scores a single character that is not in the dictionary.
const unknownLogProb = -20.0

// InstallHint tells the user how to provide a segmentation dictionary.
const InstallHint = `segmented mode needs a word dictionary: download one ("word [freq]" per line, e.g. jieba's dict.txt) and pass --dict <path> or set segment.dict in wordfreq.yaml`

// Dictionary holds words and their frequencies.
type Dictionary struct {
	total  float64
	words  map[string]float64
	maxLen int
}

// NewDictionary creates a new empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{words: make(map[string]float64)}
}

// LoadDictionary opens and parses the dictionary at path. A missing file
// means the segmentation capability is not installed.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return nil, &domain.HintError{
			Err:  fmt.Errorf("%w: no segmentation dictionary configured", domain.ErrMissingCapability),
			Hint: InstallHint,
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.HintError{
				Err:  fmt.Errorf("%w: segmentation dictionary %s not found", domain.ErrMissingCapability, path),
				Hint: InstallHint,
			}
		}
		return nil, err
	}
	defer f.Close()

	d := NewDictionary()
	if err := d.Read(f); err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return d, nil
}

// Read adds entries from r.
// Format: word [frequency [tag]], whitespace separated, one per line.
func (d *Dictionary) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		freq := 1.0
		if len(parts) >= 2 {
			f, err := strconv.ParseFloat(parts[1], 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("line %d: bad frequency %q", lineNo, parts[1])
			}
			freq = f
		}
		d.Add(parts[0], freq)
	}
	return scanner.Err()
}

// Add inserts or replaces word.
func (d *Dictionary) Add(word string, freq float64) {
	if old, ok := d.words[word]; ok {
		d.total -= old
	}
	d.words[word] = freq
	d.total += freq
	if n := utf8.RuneCountInString(word); n > d.maxLen {
		d.maxLen = n
	}
}

// Contains checks if a word exists in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// LogProbability returns the log probability of a word, or unknownLogProb.
func (d *Dictionary) LogProbability(word string) float64 {
	freq, ok := d.words[word]
	if !ok || d.total <= 0 {
		return unknownLogProb
	}
	return math.Log(freq / d.total)
}

package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/fs"
	"wordfreq/internal/domain"
)

const scenarioText = "The cat sat on the mat. The cat ran."

func newCountUseCase(t *testing.T, stops analyzer.StopwordSet) (*CountUseCase, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	uc := NewCountUseCase(
		fs.NewLoader(false, nil),
		analyzer.NewLatinTokenizer(),
		analyzer.NewFilter(stops, nil, 0),
		logger,
	)
	return uc, hook
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCount_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		stops analyzer.StopwordSet
		k     int
		want  domain.RankedResult
	}{
		{
			name: "no stopwords",
			text: scenarioText,
			k:    3,
			want: domain.RankedResult{{Token: "the", Count: 3}, {Token: "cat", Count: 2}, {Token: "sat", Count: 1}},
		},
		{
			name:  "with stopwords",
			text:  scenarioText,
			stops: analyzer.NewStopwordSet("the", "on"),
			k:     3,
			want:  domain.RankedResult{{Token: "cat", Count: 2}, {Token: "sat", Count: 1}, {Token: "mat", Count: 1}},
		},
		{
			name: "empty input",
			text: "",
			k:    10,
			want: domain.RankedResult{},
		},
		{
			name: "k zero",
			text: scenarioText,
			k:    0,
			want: domain.RankedResult{},
		},
		{
			name: "k larger than distinct",
			text: scenarioText,
			k:    100,
			want: domain.RankedResult{{Token: "the", Count: 3}, {Token: "cat", Count: 2}, {Token: "sat", Count: 1}, {Token: "on", Count: 1}, {Token: "mat", Count: 1}, {Token: "ran", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops := tt.stops
			if stops == nil {
				stops = analyzer.StopwordSet{}
			}
			uc, _ := newCountUseCase(t, stops)

			res, err := uc.Count(writeInput(t, tt.text), tt.k)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(res.Result, tt.want) {
				t.Errorf("got %v, want %v", res.Result, tt.want)
			}
		})
	}
}

func TestCount_MissingInput(t *testing.T) {
	uc, _ := newCountUseCase(t, analyzer.StopwordSet{})

	_, err := uc.Count(filepath.Join(t.TempDir(), "nope.txt"), 10)
	if !errors.Is(err, domain.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestCount_NegativeK(t *testing.T) {
	uc, _ := newCountUseCase(t, analyzer.StopwordSet{})

	_, err := uc.Count(writeInput(t, scenarioText), -1)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCount_Totals(t *testing.T) {
	uc, hook := newCountUseCase(t, analyzer.NewStopwordSet("the"))

	res, err := uc.Count(writeInput(t, scenarioText), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tokens != 6 {
		t.Errorf("expected 6 tokens after filtering, got %d", res.Tokens)
	}
	if res.Distinct != 5 {
		t.Errorf("expected 5 distinct tokens, got %d", res.Distinct)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "counted" {
		t.Fatalf("expected a debug entry for counting, got %v", last)
	}
	if last.Data["distinct"] != 5 {
		t.Errorf("expected distinct=5 in log fields, got %v", last.Data["distinct"])
	}
}

func TestCount_Idempotent(t *testing.T) {
	uc, _ := newCountUseCase(t, analyzer.StopwordSet{})
	path := writeInput(t, strings.Repeat(scenarioText+" dog bird cat ", 7))

	first, err := uc.Count(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Count(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
}

func TestRank_Properties(t *testing.T) {
	tokens := strings.Fields("b a c a b d e a f b c g")

	for k := 0; k <= 10; k++ {
		result, err := Rank(tokens, k)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}

		truth := make(map[string]int)
		firstSeen := make(map[string]int)
		for i, tok := range tokens {
			truth[tok]++
			if _, ok := firstSeen[tok]; !ok {
				firstSeen[tok] = i
			}
		}

		if len(result) > k || len(result) > len(truth) {
			t.Errorf("k=%d: result length %d out of bounds", k, len(result))
		}
		for i, e := range result {
			if e.Count < 1 || e.Count != truth[e.Token] {
				t.Errorf("k=%d: %q count %d, want %d", k, e.Token, e.Count, truth[e.Token])
			}
			if i == 0 {
				continue
			}
			prev := result[i-1]
			if prev.Count < e.Count {
				t.Errorf("k=%d: not sorted descending at %d", k, i)
			}
			if prev.Count == e.Count && firstSeen[prev.Token] > firstSeen[e.Token] {
				t.Errorf("k=%d: tie %q/%q not in first-occurrence order", k, prev.Token, e.Token)
			}
		}
	}
}

func TestRank_NegativeK(t *testing.T) {
	if _, err := Rank([]string{"a"}, -3); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

type fakeArchive struct {
	runs []domain.Run
	err  error
}

func (f *fakeArchive) PutRun(run domain.Run) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	run.ID = fmt.Sprintf("run-%d", len(f.runs)+1)
	f.runs = append(f.runs, run)
	return run.ID, nil
}

func (f *fakeArchive) GetRun(id string) (domain.Run, error) {
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Run{}, domain.ErrRunNotFound
}

func (f *fakeArchive) ListRuns(int) ([]domain.Run, error) { return f.runs, nil }

func (f *fakeArchive) Close() error { return nil }

func TestCount_Archive(t *testing.T) {
	uc, _ := newCountUseCase(t, analyzer.StopwordSet{})
	archive := &fakeArchive{}

	path := writeInput(t, scenarioText)
	res, err := uc.Count(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Archive(archive, domain.ModeLatin, path, 2, res); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.RunID == "" {
		t.Fatal("expected RunID to be set")
	}

	run, err := archive.GetRun(res.RunID)
	if err != nil {
		t.Fatalf("archived run not found: %v", err)
	}
	if run.InputPath != path || run.Mode != "latin" || run.TopK != 2 || run.Tokens != 9 || run.Distinct != 6 {
		t.Errorf("unexpected archived run %+v", run)
	}
	if !reflect.DeepEqual(run.Result, res.Result) {
		t.Errorf("archived result %v, want %v", run.Result, res.Result)
	}
}

func TestCount_ArchiveError(t *testing.T) {
	uc, _ := newCountUseCase(t, analyzer.StopwordSet{})
	archive := &fakeArchive{err: errors.New("disk full")}

	res, err := uc.Count(writeInput(t, scenarioText), 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.Archive(archive, domain.ModeLatin, "in.txt", 2, res); err == nil {
		t.Fatal("expected archive error")
	}
	if res.RunID != "" {
		t.Errorf("RunID must stay empty on failure, got %q", res.RunID)
	}
}

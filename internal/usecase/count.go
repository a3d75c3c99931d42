package usecase

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// CountUseCase runs the frequency pipeline:
// load, tokenize, filter, count and rank.
type CountUseCase struct {
	loader    port.TextLoader
	tokenizer port.Tokenizer
	filter    port.TokenFilter
	log       logrus.FieldLogger
}

// NewCountUseCase creates a new count use case.
func NewCountUseCase(
	loader port.TextLoader,
	tokenizer port.Tokenizer,
	filter port.TokenFilter,
	log logrus.FieldLogger,
) *CountUseCase {
	return &CountUseCase{
		loader:    loader,
		tokenizer: tokenizer,
		filter:    filter,
		log:       log,
	}
}

// CountResult contains the ranked result and corpus totals.
type CountResult struct {
	Result   domain.RankedResult
	Tokens   int    // tokens after filtering
	Distinct int    // distinct tokens after filtering
	RunID    string // set when the run was archived
}

// Count ranks the topK most frequent tokens of the file at path.
func (u *CountUseCase) Count(path string, topK int) (*CountResult, error) {
	if topK < 0 {
		return nil, fmt.Errorf("%w: top-k must be >= 0, got %d", domain.ErrInvalidArgument, topK)
	}
	log := u.log.WithField("path", path)

	text, err := u.loader.Load(path)
	if err != nil {
		return nil, err
	}
	log.WithField("bytes", len(text)).Debug("loaded input")

	tokens := u.tokenizer.Tokenize(text)
	log.WithField("tokens", len(tokens)).Debug("tokenized")

	tokens = u.filter.Filter(tokens)

	table := Tally(tokens)
	log.WithFields(logrus.Fields{
		"tokens":   len(tokens),
		"distinct": table.Len(),
	}).Debug("counted")

	res := &CountResult{
		Result:   TopK(table, topK),
		Tokens:   len(tokens),
		Distinct: table.Len(),
	}

	return res, nil
}

// Archive records a completed run in archive and sets res.RunID.
func (u *CountUseCase) Archive(archive port.RunArchive, mode domain.Mode, path string, topK int, res *CountResult) error {
	id, err := archive.PutRun(domain.Run{
		InputPath: path,
		Mode:      mode.String(),
		TopK:      topK,
		Tokens:    res.Tokens,
		Distinct:  res.Distinct,
		Result:    res.Result,
	})
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	res.RunID = id
	u.log.WithFields(logrus.Fields{"path": path, "id": id}).Debug("archived run")
	return nil
}

// Tally builds a frequency table from tokens.
func Tally(tokens []string) *domain.FrequencyTable {
	table := domain.NewFrequencyTable()
	for _, tok := range tokens {
		table.Add(tok)
	}
	return table
}

// TopK returns the k most frequent entries of table, count descending.
// Equal counts keep first-occurrence order. k <= 0 yields an empty result.
func TopK(table *domain.FrequencyTable, k int) domain.RankedResult {
	if k <= 0 {
		return domain.RankedResult{}
	}
	entries := table.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k < len(entries) {
		entries = entries[:k]
	}
	return domain.RankedResult(entries)
}

// Rank counts tokens and returns the top k.
func Rank(tokens []string, k int) (domain.RankedResult, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: top-k must be >= 0, got %d", domain.ErrInvalidArgument, k)
	}
	return TopK(Tally(tokens), k), nil
}

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"wordfreq/config"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/fs"
	"wordfreq/internal/adapter/report"
	"wordfreq/internal/adapter/segment"
	"wordfreq/internal/adapter/store"
	"wordfreq/internal/domain"
	"wordfreq/internal/port"
	"wordfreq/internal/usecase"
)

// countOptions mirrors the config values that flags may override.
type countOptions struct {
	topK      int
	lang      string
	stopwords string
	output    string
	dict      string
	exclude   []string
	minLength int
	html      bool
	json      bool
	progress  bool
	archive   string
}

func (o *countOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&o.topK, "top-k", "k", 10, "number of results")
	f.StringVarP(&o.lang, "lang", "l", "en", "language mode: en|latin|zh|segmented")
	f.StringVarP(&o.stopwords, "stopwords", "s", config.DefaultStopwordsFile, "stopword file, one word per line (skipped if absent)")
	f.StringVarP(&o.output, "output", "o", "", "also write results to this file")
	f.StringVar(&o.dict, "dict", "", "segmentation dictionary for zh mode")
	f.StringArrayVar(&o.exclude, "exclude", nil, "drop tokens matching this glob (repeatable)")
	f.IntVar(&o.minLength, "min-length", 0, "drop tokens shorter than this many characters")
	f.BoolVar(&o.html, "html", false, "count only the visible text of an HTML file")
	f.BoolVar(&o.json, "json", false, "output as JSON")
	f.BoolVar(&o.progress, "progress", false, "show read progress on stderr")
	f.StringVar(&o.archive, "archive", "", "record the run in this archive database")
}

func (a *app) newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <file> [topk]",
		Short: "Count words in a file",
		Long: `Count word occurrences in a file and print the top-K tokens.

Examples:
  wordfreq count book.txt
  wordfreq count book.txt 5 --exclude '[0-9]*' --json
  wordfreq count news.txt -l zh --dict dict.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.runCount,
	}
	a.count.addFlags(cmd)
	return cmd
}

// applyFlags copies explicitly set flags and the positional topk over the
// loaded configuration.
func (a *app) applyFlags(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	o := a.count
	f := cmd.Flags()

	if f.Changed("top-k") {
		cfg.Count.TopK = o.topK
	}
	if len(args) > 1 {
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: topk must be an integer, got %q", domain.ErrInvalidArgument, args[1])
		}
		cfg.Count.TopK = k
	}
	if f.Changed("lang") {
		cfg.Count.Lang = o.lang
	}
	if f.Changed("stopwords") {
		cfg.Filter.Stopwords = o.stopwords
	}
	if f.Changed("output") {
		cfg.Output.Path = o.output
	}
	if f.Changed("dict") {
		cfg.Segment.Dict = o.dict
	}
	if f.Changed("exclude") {
		cfg.Filter.ExcludePatterns = o.exclude
	}
	if f.Changed("min-length") {
		cfg.Filter.MinLength = o.minLength
	}
	if f.Changed("html") {
		cfg.Input.HTML = o.html
	}
	if f.Changed("json") && o.json {
		cfg.Output.Format = config.FormatJSON
	}
	if f.Changed("progress") {
		cfg.Input.Progress = o.progress
	}
	if f.Changed("archive") {
		cfg.Archive.Path = o.archive
	}
	return cfg.Validate()
}

func (a *app) runCount(cmd *cobra.Command, args []string) error {
	if err := a.applyFlags(cmd, args); err != nil {
		return err
	}
	cfg := a.cfg
	inputPath := args[0]

	tokenizer, err := buildTokenizer(cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Filter.Stopwords); os.IsNotExist(err) && cmd.Flags().Changed("stopwords") {
		a.log.WithField("path", cfg.Filter.Stopwords).Warn("stopword file not found, counting all tokens")
	}
	stops, err := analyzer.LoadStopwords(cfg.Filter.Stopwords)
	if err != nil {
		return fmt.Errorf("failed to load stopwords: %w", err)
	}
	a.log.WithField("stopwords", len(stops)).Debug("loaded stopwords")

	var loader *fs.Loader
	if cfg.Input.Progress {
		loader = fs.NewLoader(cfg.Input.HTML, cmd.ErrOrStderr())
	} else {
		loader = fs.NewLoader(cfg.Input.HTML, nil)
	}
	loader.SetLogger(a.log)

	countUC := usecase.NewCountUseCase(
		loader,
		tokenizer,
		analyzer.NewFilter(stops, cfg.Filter.ExcludePatterns, cfg.Filter.MinLength),
		a.log,
	)

	res, err := countUC.Count(inputPath, cfg.Count.TopK)
	if err != nil {
		return err
	}

	var reporter port.Reporter = report.NewWriter(cmd.OutOrStdout(), cfg.Output.Path, cfg.Output.Format)
	if err := reporter.Report(res.Result); err != nil {
		return err
	}

	// The archive is opened only for runs that succeeded.
	if cfg.Archive.Path != "" {
		st, err := store.NewBoltStore(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer st.Close()
		if err := countUC.Archive(st, cfg.Mode(), inputPath, cfg.Count.TopK, res); err != nil {
			return err
		}
		a.log.WithField("id", res.RunID).Info("archived run")
	}

	return nil
}

// buildTokenizer selects the tokenizer for the configured mode.
func buildTokenizer(cfg *config.Config) (port.Tokenizer, error) {
	switch cfg.Mode() {
	case domain.ModeSegmented:
		seg, err := segment.NewFromFile(cfg.Segment.Dict)
		if err != nil {
			return nil, err
		}
		return analyzer.NewSegmentedTokenizer(seg), nil
	default:
		return analyzer.NewLatinTokenizer(), nil
	}
}

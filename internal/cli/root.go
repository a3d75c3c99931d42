package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"wordfreq/config"
	"wordfreq/internal/domain"
)

// app carries state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *logrus.Logger

	count countOptions
}

// NewRootCmd builds the command tree. The root command counts words so
// that "wordfreq <file> [topk]" works without a subcommand.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wordfreq <file> [topk]",
		Short: "Report the most frequent words in a text file",
		Long: `wordfreq counts word occurrences in a text file and prints the top-K
most frequent tokens as tab-separated "token<TAB>count" lines.

Latin-script text is split on word boundaries. Text without spaces between
words (e.g. Chinese) is segmented against a word dictionary.

Example usage:
  wordfreq book.txt                  # Top 10 words
  wordfreq book.txt 25 -s stop.txt   # Top 25, excluding stopwords
  wordfreq count news.txt -l zh --dict dict.txt -o top.tsv`,
		Args:              cobra.RangeArgs(1, 2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runCount,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	a.count.addFlags(rootCmd)

	rootCmd.AddCommand(a.newCountCmd(), a.newHistoryCmd(), a.newConfigCmd())
	return rootCmd
}

// setup loads configuration and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		var dir string
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		a.cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.log, err = newLogger(cmd.ErrOrStderr(), level)
	return err
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := domain.Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

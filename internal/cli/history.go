package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"wordfreq/config"
	"wordfreq/internal/adapter/report"
	"wordfreq/internal/adapter/store"
	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var (
		archivePath string
		limit       int
		asJSON      bool
	)

	openArchive := func(cmd *cobra.Command) (*store.BoltStore, error) {
		path := a.cfg.Archive.Path
		if cmd.Flags().Changed("archive") {
			path = archivePath
		}
		if path == "" {
			return nil, fmt.Errorf("%w: no archive configured, pass --archive or set archive.path", domain.ErrInvalidArgument)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: archive %s", domain.ErrInputNotFound, path)
		}
		return store.NewBoltStore(path)
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Long: `List runs recorded with --archive, newest first.

Examples:
  wordfreq history --archive runs.db
  wordfreq history show 01JA2B3C4D5E6F7G8H9JAKBMCN --archive runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived runs.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tMODE\tTOP-K\tTOKENS\tINPUT")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Mode, r.TopK, r.Tokens, r.InputPath)
			}
			return tw.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the result of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(args[0])
			if err != nil {
				return err
			}
			format := a.cfg.Output.Format
			if asJSON {
				format = config.FormatJSON
			}
			var reporter port.Reporter = report.NewWriter(cmd.OutOrStdout(), "", format)
			return reporter.Report(run.Result)
		},
	}

	historyCmd.PersistentFlags().StringVar(&archivePath, "archive", "", "archive database (default from config)")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 = all)")
	showCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(showCmd)

	return historyCmd
}

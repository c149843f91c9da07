package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/report"
)

func newLogbookCmd() *cobra.Command {
	var logbookPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "logbook",
		Short: "Show recent audit runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := logbookPath
			if path == "" && globalConfig != nil {
				path = globalConfig.LogbookPath()
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
				return nil
			}

			lb, err := report.OpenLogbook(path)
			if err != nil {
				return err
			}
			defer lb.Close()

			runs, err := lb.Recent(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  %s  rows=%d missing_ref=%d missing_rev=%d order=%d (%s)\n",
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.WorkPackage, r.InputFile,
					r.Rows, r.MissingReference, r.MissingRevision, r.OrderViolations,
					r.Duration)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logbookPath, "logbook", "", "logbook database path (default: configured path)")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")

	return cmd
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/model"
	"github.com/skyline-mro/wpaudit/internal/pkg/wppath"
	"github.com/skyline-mro/wpaudit/internal/report"
	"github.com/skyline-mro/wpaudit/internal/table"
	"github.com/skyline-mro/wpaudit/internal/validator/order"
	"github.com/skyline-mro/wpaudit/internal/validator/reference"
)

type checkOptions struct {
	in          string
	rulesPath   string
	outDir      string
	format      string
	logbookPath string
	noLogbook   bool
	workers     int
	from        string
	to          string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit a work package export",
		Long: "Classify every action row for documentation compliance, verify\n" +
			"workstep execution order per work order, write an annotated\n" +
			"workbook, and print a summary. Exits nonzero when findings exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "input export file (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "rules YAML file (default: built-in rules)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory for the annotated workbook (default: data dir)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "summary format: text or json")
	cmd.Flags().StringVar(&opts.logbookPath, "logbook", "", "logbook database path (default: configured path)")
	cmd.Flags().BoolVar(&opts.noLogbook, "no-logbook", false, "skip recording the run in the logbook")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "classification workers (0: one per CPU)")
	cmd.Flags().StringVar(&opts.from, "from", "", "keep only rows actioned on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "keep only rows actioned on or before this date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	start := time.Now()
	fs := afero.NewOsFs()
	ctx := cmd.Context()

	lib, err := loadLibrary(fs, opts.rulesPath)
	if err != nil {
		return err
	}

	tbl, err := table.Read(fs, opts.in)
	if err != nil {
		return err
	}
	logDebug("read %d rows from %s", len(tbl.Rows), opts.in)

	tbl, err = applyDateRange(tbl, opts.from, opts.to)
	if err != nil {
		return err
	}

	entries := tbl.Entries()

	workers := opts.workers
	if workers == 0 && globalConfig != nil {
		workers = globalConfig.Workers()
	}
	states, err := reference.NewClassifier(lib).ClassifyAll(ctx, entries, workers)
	if err != nil {
		return err
	}

	verdicts, summaries := order.NewVerifier().VerifyOrder(ctx, entries)

	stats := report.Collect(tbl.WorkPackage(), states, verdicts, summaries)
	if err := stats.Reconcile(); err != nil {
		return err
	}

	outPath, err := writeAnnotated(fs, tbl, entries, states, verdicts, opts.outDir)
	if err != nil {
		return err
	}
	logInfo("annotated workbook written to %s", outPath)

	if opts.format == "json" {
		if err := stats.WriteJSON(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		stats.WriteText(cmd.OutOrStdout())
	}

	if !opts.noLogbook {
		recordRun(stats, opts.in, opts.logbookPath, time.Since(start))
	}

	if n := stats.Findings(); n > 0 {
		return fmt.Errorf("%d finding(s) in %d rows", n, stats.Rows)
	}
	return nil
}

// applyDateRange narrows the table to the requested action date window.
func applyDateRange(tbl *table.Table, from, to string) (*table.Table, error) {
	if from == "" && to == "" {
		return tbl, nil
	}
	parse := func(s string) (time.Time, error) {
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range table.DefaultDateLayouts() {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	fromT, err := parse(from)
	if err != nil {
		return nil, err
	}
	toT, err := parse(to)
	if err != nil {
		return nil, err
	}
	return tbl.FilterByActionDate(fromT, toT, table.DefaultDateLayouts()), nil
}

// writeAnnotated appends the classification and order columns to the
// input rows and writes the result as an XLSX workbook named after the
// work package.
func writeAnnotated(fs afero.Fs, tbl *table.Table, entries []model.LogEntry, states []reference.State, verdicts []order.Verdict, outDir string) (string, error) {
	byStep := make(map[string]order.Verdict, len(verdicts))
	for _, v := range verdicts {
		byStep[stepKey(v.WorkOrderID, v.Ordinal)] = v
	}

	docCol := make([]string, len(entries))
	orderCol := make([]string, len(entries))
	for i, e := range entries {
		docCol[i] = states[i].String()
		if v, ok := byStep[stepKey(e.WorkOrderID, e.WorkstepOrdinal)]; ok && !v.OrderOK {
			orderCol[i] = v.Issue
		}
	}

	if outDir == "" {
		var err error
		outDir, err = dataDir()
		if err != nil {
			return "", err
		}
	}
	outPath := filepath.Join(outDir, wppath.ReportName(tbl.WorkPackage()))
	err := table.WriteXLSX(fs, outPath, tbl, []string{"Documentation Check", "Order Check"}, [][]string{docCol, orderCol})
	if err != nil {
		return "", err
	}
	return outPath, nil
}

func stepKey(workOrderID string, ordinal int) string {
	return fmt.Sprintf("%s#%d", workOrderID, ordinal)
}

// recordRun appends the run to the logbook. Failures are logged, not
// fatal: a broken logbook must not mask audit results.
func recordRun(stats report.Stats, inputFile, logbookPath string, elapsed time.Duration) {
	if logbookPath == "" && globalConfig != nil {
		logbookPath = globalConfig.LogbookPath()
	}
	if logbookPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logbookPath), 0o755); err != nil {
		logWarn("create logbook dir: %v", err)
		return
	}
	lb, err := report.OpenLogbook(logbookPath)
	if err != nil {
		logWarn("open logbook: %v", err)
		return
	}
	defer lb.Close()
	if _, err := lb.Append(stats, filepath.Base(inputFile), elapsed); err != nil {
		logWarn("append logbook: %v", err)
	}
}

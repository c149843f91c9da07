package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/table"
	"github.com/skyline-mro/wpaudit/internal/validator/order"
)

func newOrderCmd() *cobra.Command {
	var in string
	var format string
	var showAll bool

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Verify workstep execution order only",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			tbl, err := table.Read(fs, in)
			if err != nil {
				return err
			}
			entries := tbl.Entries()

			verdicts, summaries := order.NewVerifier().VerifyOrder(cmd.Context(), entries)

			out := cmd.OutOrStdout()
			if format == "json" {
				payload := struct {
					Summaries []order.GroupSummary `json:"work_orders"`
					Verdicts  []order.Verdict      `json:"steps,omitempty"`
				}{Summaries: summaries}
				if showAll {
					payload.Verdicts = verdicts
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(payload); err != nil {
					return err
				}
			} else {
				violations := 0
				for _, s := range summaries {
					fmt.Fprintf(out, "%s: %s (%d steps, %d violations)\n",
						s.WorkOrderID, s.Status, s.Steps, s.Violations)
					violations += s.Violations
				}
				for _, v := range verdicts {
					if !v.OrderOK || showAll {
						status := "OK"
						if !v.OrderOK {
							status = v.Issue
						}
						fmt.Fprintf(out, "  %s step %d: %s\n", v.WorkOrderID, v.Ordinal, status)
					}
				}
				fmt.Fprintf(out, "SUMMARY: %d work orders, %d violations\n", len(summaries), violations)
			}

			for _, s := range summaries {
				if s.Status == order.StatusViolations {
					return fmt.Errorf("order violations found")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input export file (.xlsx or .csv)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&showAll, "all", false, "show every step, not only violations")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/spf13/cobra"
)

func summaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show headline sales metrics",
		Long: `Show total sales, total profit, distinct orders and distinct customers
for the active filter selection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd, summaryOutput{
					Summary:         s.dashboard.Summary,
					Source:          s.records.Source(),
					Records:         s.records.Len(),
					FilteredRecords: s.dashboard.FilteredRecords,
					Stats:           s.records.Stats(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Global Superstore"))
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%s · %s of %s records",
				s.records.Source(),
				cli.FormatCount(s.dashboard.FilteredRecords),
				cli.FormatCount(s.records.Len()))))
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.RenderSelection(s.selection, s.records.Options()))
			fmt.Fprintln(out, cli.RenderSummary(s.dashboard.Summary))

			if s.dashboard.IsEmpty() {
				fmt.Fprintln(out, cli.FormatWarning("No records match the current filters."))
			}
			if stats := s.records.Stats(); stats.BadOrderDates+stats.BadShipDates+stats.BadNumbers > 0 {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf(
					"Recovered cells: %d order dates, %d ship dates, %d numbers",
					stats.BadOrderDates, stats.BadShipDates, stats.BadNumbers)))
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print JSON instead of a table")
	return cmd
}

type summaryOutput struct {
	Source          string            `json:"source"`
	Stats           dataset.LoadStats `json:"load_stats"`
	Summary         model.Summary     `json:"summary"`
	Records         int               `json:"records"`
	FilteredRecords int               `json:"filtered_records"`
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

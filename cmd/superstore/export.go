package main

import (
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/export"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard to a workbook or SQLite snapshot",
		Long: `Export the dashboard for the active filter selection.

  xlsx    one sheet per view plus a summary sheet
  sqlite  the filtered records and a dashboard snapshot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = "superstore-dashboard" + format.Extension()
			}

			s, err := a.load(cmd)
			if err != nil {
				return err
			}

			result, err := export.Write(cmd.Context(), export.Request{
				Dashboard: s.dashboard,
				Selection: s.selection,
				Source:    s.records.Source(),
				Records:   pipeline.Filter(s.records.Records(), s.selection),
				Format:    format,
				Path:      out,
			})
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			common.LogInfo("Export complete", common.Fields{
				"format":      format,
				"path":        result.Path,
				"sheets":      result.Sheets,
				"snapshot_id": result.SnapshotID,
			})

			msg := fmt.Sprintf("Wrote %s", result.Path)
			if result.SnapshotID > 0 {
				msg += fmt.Sprintf(" (snapshot %d)", result.SnapshotID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().String("format", "xlsx", "export format (xlsx, sqlite)")
	cmd.Flags().StringP("out", "o", "", "output path (default superstore-dashboard.<ext>)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/tui"
	"github.com/Veraticus/superstore-dash/internal/tui/themes"
	"github.com/spf13/cobra"
)

func exploreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the dashboard interactively",
		Long: `Open a terminal explorer with filter checkboxes on the left and the
selected view on the right. Toggling a filter recomputes every view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := a.loadRecords(cmd.Context())
			if err != nil {
				return err
			}

			themeName, _ := cmd.Flags().GetString("theme")
			cfg := tui.NewConfig(rs.Source(), rs.Records(),
				tui.WithTheme(themes.ByName(themeName)),
				tui.WithSelection(a.selectionFor(cmd, rs)),
			)

			final, err := tui.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			dash := final.Result()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderSummary(dash.Summary))
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%s of %s records selected",
				cli.FormatCount(dash.FilteredRecords), cli.FormatCount(rs.Len()))))
			return nil
		},
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	return cmd
}

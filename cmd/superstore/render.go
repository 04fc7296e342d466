package main

import (
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/config"
	"github.com/Veraticus/superstore-dash/internal/render"
	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw every view as a PNG chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}

			renderer := newRenderer(a.settings)
			files, err := renderer.WriteDashboard(cmd.Context(), s.dashboard, a.settings.Render.Dir)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No records match the current filters; nothing to draw."))
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(out, cli.SubtleStyle.Render("  "+f))
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Wrote %d charts to %s", len(files), a.settings.Render.Dir)))
			return nil
		},
	}

	cmd.Flags().String("dir", "", "output directory")
	cmd.Flags().Int("width", 0, "chart width in pixels")
	cmd.Flags().Int("height", 0, "chart height in pixels")
	cmd.Flags().Int("bins", 0, "order value histogram bins")
	bindFlags(a, cmd, map[string]string{
		config.KeyRenderDir:    "dir",
		config.KeyRenderWidth:  "width",
		config.KeyRenderHeight: "height",
		config.KeyRenderBins:   "bins",
	})
	return cmd
}

func newRenderer(s *config.Settings) *render.Renderer {
	return render.NewRenderer(render.Options{
		Width:         s.Render.Width,
		Height:        s.Render.Height,
		HistogramBins: s.Render.HistogramBins,
	})
}

// bindFlags binds command flags to config keys. Unset flags fall back to
// the config file, environment, then defaults.
func bindFlags(a *app, cmd *cobra.Command, bindings map[string]string) {
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

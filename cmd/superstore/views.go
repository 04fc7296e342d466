package main

import (
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/report"
	"github.com/spf13/cobra"
)

func viewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views [name...]",
		Short: "Print aggregate views as tables",
		Long: `Print the dashboard's aggregate views for the active filter selection.
Without arguments every view is printed in dashboard order.

Views: monthly_sales, category_performance, sub_category_sales,
region_sales, top_customers, order_values, weekday_sales, shipping,
discount_profit, segment_sales.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := viewNames(args)
			if err != nil {
				return err
			}

			s, err := a.load(cmd)
			if err != nil {
				return err
			}

			views := make([]model.View, 0, len(names))
			for _, name := range names {
				v, _ := s.dashboard.View(name)
				views = append(views, v)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				if len(args) == 0 {
					return writeJSON(cmd, s.dashboard)
				}
				return writeJSON(cmd, views)
			}

			limit, _ := cmd.Flags().GetInt("limit")
			out := cmd.OutOrStdout()
			if s.dashboard.IsEmpty() {
				fmt.Fprintln(out, cli.FormatWarning("No records match the current filters."))
				fmt.Fprintln(out)
			}
			for _, v := range views {
				for _, sheet := range report.Sheets(v) {
					fmt.Fprintln(out, cli.RenderSheet(sheet, limit))
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print JSON instead of tables")
	cmd.Flags().Int("limit", 20, "maximum rows per table (0 for all)")
	return cmd
}

// viewNames validates the requested view names, defaulting to the catalog.
func viewNames(args []string) ([]model.ViewName, error) {
	if len(args) == 0 {
		names := make([]model.ViewName, len(model.ViewCatalog))
		for i, desc := range model.ViewCatalog {
			names[i] = desc.Name
		}
		return names, nil
	}

	names := make([]model.ViewName, len(args))
	for i, arg := range args {
		desc, ok := model.Describe(model.ViewName(arg))
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrUnknownView, arg)
		}
		names[i] = desc.Name
	}
	return names, nil
}

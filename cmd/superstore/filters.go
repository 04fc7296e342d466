package main

import (
	"fmt"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/spf13/cobra"
)

func filtersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the filter values present in the data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := a.loadRecords(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, rs.Options())
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderFilters(rs.Options()))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print JSON instead of a list")
	return cmd
}

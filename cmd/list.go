package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/review"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
)

var listFilter sheet.Filter

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print sheet records, optionally filtered",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(config.ModeList); err != nil {
			return err
		}
		rs, rows, _, err := filteredRecords(cmd.Context(), listFilter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No matching records.") //nolint:errcheck
			return nil
		}
		grid := make([][]string, len(rows))
		for i, r := range rows {
			grid[i] = r.Values
		}
		fmt.Fprintln(out, review.Grid(rs.Headers, grid)) //nolint:errcheck
		fmt.Fprintf(out, "%d records\n", len(rows))      //nolint:errcheck
		return nil
	},
}

// filteredRecords reads the configured sheet and applies f.
func filteredRecords(ctx context.Context, f sheet.Filter) (sheet.Records, []sheet.Record, *sheet.Layout, error) {
	table, layout, err := newSheet(ctx, cfg)
	if err != nil {
		return sheet.Records{}, nil, nil, err
	}
	rs, err := sheet.NewReader(table, layout).Read(ctx)
	if err != nil {
		return sheet.Records{}, nil, nil, err
	}
	return rs, f.Apply(layout, rs), layout, nil
}

func addFilterFlags(cmd *cobra.Command, f *sheet.Filter) {
	cmd.Flags().StringVar(&f.Company, "company", "", "filter by company name substring")
	cmd.Flags().StringVar(&f.Name, "name", "", "filter by contact name substring")
	cmd.Flags().StringVar(&f.Email, "email", "", "filter by email substring")
}

func init() {
	addFilterFlags(listCmd, &listFilter)
	rootCmd.AddCommand(listCmd)
}

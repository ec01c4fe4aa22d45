package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/model"
	"github.com/csbb5959/sales-challenge-tool/internal/pipeline"
	"github.com/csbb5959/sales-challenge-tool/internal/review"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
)

var (
	writeIn     string
	writeGroup  string
	writeMember string
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Append reviewed candidates to the sheet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(config.ModeWrite); err != nil {
			return err
		}
		f, err := review.Load(writeIn)
		if err != nil {
			return err
		}
		table, layout, err := newSheet(ctx, cfg)
		if err != nil {
			return err
		}

		session := pipeline.New(nil, nil, nil,
			pipeline.WithWriter(sheet.NewWriter(table, layout)),
			pipeline.WithID(sessionID(f)),
		)
		res, err := session.Commit(ctx, f.Candidates, model.Metadata{Group: writeGroup, Member: writeMember})
		if err != nil {
			return err
		}
		printWriteResult(cmd, res)
		return nil
	},
}

func sessionID(f review.File) string {
	if f.SessionID != "" {
		return f.SessionID
	}
	return "review"
}

func printWriteResult(cmd *cobra.Command, res sheet.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Inserted %d rows.\n", res.Inserted) //nolint:errcheck
	if len(res.Names) > 0 {
		fmt.Fprintf(out, "  new: %s\n", strings.Join(res.Names, ", ")) //nolint:errcheck
	}
	if len(res.Skipped) > 0 {
		skipped := make([]string, len(res.Skipped))
		for i, s := range res.Skipped {
			if s == "" {
				s = "(empty name)"
			}
			skipped[i] = s
		}
		fmt.Fprintf(out, "  skipped: %s\n", strings.Join(skipped, ", ")) //nolint:errcheck
	}
}

func init() {
	writeCmd.Flags().StringVar(&writeIn, "in", review.DefaultPath, "review file to read")
	writeCmd.Flags().StringVar(&writeGroup, "group", "", "group to stamp on written rows")
	writeCmd.Flags().StringVar(&writeMember, "member", "", "member name to stamp on written rows")
	rootCmd.AddCommand(writeCmd)
}

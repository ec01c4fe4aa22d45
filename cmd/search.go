package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/dedup"
	"github.com/csbb5959/sales-challenge-tool/internal/model"
	"github.com/csbb5959/sales-challenge-tool/internal/pipeline"
	"github.com/csbb5959/sales-challenge-tool/internal/prospect"
	"github.com/csbb5959/sales-challenge-tool/internal/review"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
)

var (
	searchPrompt       string
	searchCount        int
	searchCustomPrompt string
	searchContacts     bool
	searchOnlyNew      bool
	searchOut          string
	searchWrite        bool
	searchGroup        string
	searchMember       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Ask the model for prospects and check them against the CRM",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(config.ModeSearch); err != nil {
			return err
		}
		if searchWrite {
			if err := cfg.RequireSheet(); err != nil {
				return err
			}
		}

		custom, err := readCustomPrompt(searchCustomPrompt)
		if err != nil {
			return err
		}

		completer, err := newCompleter(ctx, cfg)
		if err != nil {
			return err
		}
		matcher, err := newMatcher(cfg)
		if err != nil {
			return err
		}

		var opts []pipeline.Option
		if searchWrite {
			table, layout, err := newSheet(ctx, cfg)
			if err != nil {
				return err
			}
			opts = append(opts, pipeline.WithWriter(sheet.NewWriter(table, layout)))
		}

		session := pipeline.New(
			prospect.NewCatalog(cfg.Prompts.Dir),
			prospect.NewGenerator(completer),
			dedup.NewEngine(matcher),
			opts...,
		)
		logStartup("search", zap.String("session_id", session.ID), zap.String("prompt", searchPrompt))

		res, err := session.Search(ctx, pipeline.SearchRequest{
			Kind:   prospect.Kind(searchPrompt),
			Count:  searchCount,
			Custom: custom,
			Options: dedup.Options{
				SearchContacts: searchContacts,
				OnlyNewInCRM:   searchOnlyNew,
			},
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.AllKnown() {
			fmt.Fprintf(out, "All %d proposed companies are already in the CRM.\n", res.Proposed) //nolint:errcheck
		} else {
			review.Print(out, res.Candidates)
		}
		if len(res.Known) > 0 && !res.AllKnown() {
			fmt.Fprintf(out, "%d companies already in the CRM were left out.\n", len(res.Known)) //nolint:errcheck
		}

		if err := review.Save(searchOut, review.File{
			SessionID:  session.ID,
			CreatedAt:  time.Now().UTC(),
			Prompt:     res.Prompt,
			Candidates: res.Candidates,
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d candidates to %s\n", len(res.Candidates), searchOut) //nolint:errcheck

		if !searchWrite {
			return nil
		}
		wr, err := session.Commit(ctx, res.Candidates, model.Metadata{Group: searchGroup, Member: searchMember})
		if err != nil {
			return err
		}
		printWriteResult(cmd, wr)
		return nil
	},
}

// readCustomPrompt accepts inline text or @path.
func readCustomPrompt(v string) (string, error) {
	if !strings.HasPrefix(v, "@") {
		return v, nil
	}
	b, err := os.ReadFile(strings.TrimPrefix(v, "@"))
	if err != nil {
		return "", eris.Wrap(err, "read custom prompt")
	}
	return string(b), nil
}

func init() {
	searchCmd.Flags().StringVar(&searchPrompt, "prompt", string(prospect.KindMedium), "prompt template: medium, small or custom")
	searchCmd.Flags().IntVar(&searchCount, "count", prospect.DefaultCount, "number of companies to request (1-100)")
	searchCmd.Flags().StringVar(&searchCustomPrompt, "custom-prompt", "", "custom prompt text, or @file")
	searchCmd.Flags().BoolVar(&searchContacts, "contacts", false, "also look up CRM contact persons")
	searchCmd.Flags().BoolVar(&searchOnlyNew, "only-new", false, "drop companies the CRM already knows")
	searchCmd.Flags().StringVar(&searchOut, "out", review.DefaultPath, "review file to write")
	searchCmd.Flags().BoolVar(&searchWrite, "write", false, "append new companies to the sheet right away")
	searchCmd.Flags().StringVar(&searchGroup, "group", "", "group to stamp on written rows")
	searchCmd.Flags().StringVar(&searchMember, "member", "", "member name to stamp on written rows")
	rootCmd.AddCommand(searchCmd)
}

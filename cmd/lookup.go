package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/directory"
	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

var (
	lookupEmail string
	lookupName  string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a company or contact in the CRM",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if lookupEmail == "" && lookupName == "" {
			return eris.New("lookup: --email or --name is required")
		}
		if err := cfg.Validate(config.ModeLookup); err != nil {
			return err
		}
		m, err := newMatcher(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if lookupName != "" {
			printOrg(out, m.LookupOrg(ctx, lookupName))
		}
		printContact(out, m.LookupContact(ctx, lookupEmail, lookupName))
		return nil
	},
}

func printOrg(w io.Writer, r directory.Result[model.OrgMatch]) {
	if o := r.Found(); o != nil {
		fmt.Fprintf(w, "organization: %s (last activity %s)\n", o.Name, o.LastActivity) //nolint:errcheck
		return
	}
	fmt.Fprintf(w, "organization: %s%s\n", r.Status, errSuffix(r.Err)) //nolint:errcheck
}

func printContact(w io.Writer, r directory.Result[model.DirectoryMatch]) {
	if c := r.Found(); c != nil {
		date := c.Date
		if date == "" {
			date = model.NoDateFound
		}
		fmt.Fprintf(w, "contact: %s <%s> (last contact %s)\n", c.Name, c.Email, date) //nolint:errcheck
		return
	}
	fmt.Fprintf(w, "contact: %s%s\n", r.Status, errSuffix(r.Err)) //nolint:errcheck
}

func errSuffix(err error) string {
	if err == nil {
		return ""
	}
	return ": " + err.Error()
}

func init() {
	lookupCmd.Flags().StringVar(&lookupEmail, "email", "", "contact email address")
	lookupCmd.Flags().StringVar(&lookupName, "name", "", "company name")
	rootCmd.AddCommand(lookupCmd)
}

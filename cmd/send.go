package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/outreach"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
)

var (
	sendFilter      sheet.Filter
	sendSubject     string
	sendTextFile    string
	sendAttach      string
	sendCc          string
	sendNoSignature bool
	sendDryRun      bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Mail the filtered sheet records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(config.ModeSend); err != nil {
			return err
		}

		tmpl := outreach.Template{Subject: sendSubject}
		if sendTextFile != "" {
			b, err := os.ReadFile(sendTextFile)
			if err != nil {
				return eris.Wrap(err, "read mail text")
			}
			tmpl.Text = string(b)
		}
		if !sendNoSignature {
			sig, err := outreach.LoadSignature(cfg.Mail.Signature)
			if err != nil {
				return err
			}
			tmpl.Signature = sig
		}
		if sendAttach != "" {
			if _, err := os.Stat(sendAttach); err != nil {
				return eris.Wrap(err, "attachment")
			}
		}

		_, rows, layout, err := filteredRecords(ctx, sendFilter)
		if err != nil {
			return err
		}
		recipients := outreach.Recipients(layout, rows)
		out := cmd.OutOrStdout()
		if len(recipients) == 0 {
			fmt.Fprintln(out, "No companies to contact.") //nolint:errcheck
			return nil
		}

		m, err := newMailer(cfg)
		if err != nil {
			return err
		}
		logStartup("send", zap.Int("recipients", len(recipients)), zap.Bool("dry_run", sendDryRun))

		sender := outreach.NewSender(m, time.Duration(cfg.Mail.DelaySecs)*time.Second)
		results := sender.SendAll(ctx, recipients, tmpl, outreach.Options{
			Cc:         sendCc,
			Attachment: sendAttach,
			DryRun:     sendDryRun,
		})

		failed := 0
		for _, r := range results {
			if r.Sent {
				fmt.Fprintf(out, "sent    %s (%s)\n", r.Recipient.Email, r.Recipient.Company) //nolint:errcheck
				continue
			}
			failed++
			fmt.Fprintf(out, "failed  %s (%s): %v\n", r.Recipient.Email, r.Recipient.Company, r.Err) //nolint:errcheck
		}
		fmt.Fprintf(out, "%d sent, %d failed\n", len(results)-failed, failed) //nolint:errcheck
		return nil
	},
}

func init() {
	addFilterFlags(sendCmd, &sendFilter)
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "subject template, {company} is replaced")
	sendCmd.Flags().StringVar(&sendTextFile, "text-file", "", "plain text body, one paragraph per line")
	sendCmd.Flags().StringVar(&sendAttach, "attach", "", "file to attach")
	sendCmd.Flags().StringVar(&sendCc, "cc", "", "cc address")
	sendCmd.Flags().BoolVar(&sendNoSignature, "no-signature", false, "omit the signature")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "render and validate without sending")
	rootCmd.AddCommand(sendCmd)
}

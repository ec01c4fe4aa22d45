package outreach

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
	"github.com/csbb5959/sales-challenge-tool/pkg/mailer"
)

// Recipient is one addressee of a campaign.
type Recipient struct {
	Email   string `validate:"required,email"`
	Company string
}

// Recipients maps sheet records to recipients using the layout's email and
// company columns.
func Recipients(l *sheet.Layout, records []sheet.Record) []Recipient {
	email := l.Index(sheet.FieldEmail)
	out := make([]Recipient, 0, len(records))
	for _, r := range records {
		out = append(out, Recipient{
			Email:   strings.TrimSpace(r.Get(email)),
			Company: strings.TrimSpace(r.Get(l.NameColumn)),
		})
	}
	return out
}

// Options are per-campaign extras.
type Options struct {
	Cc         string
	Attachment string
	DryRun     bool
}

// Result is the outcome for one recipient.
type Result struct {
	Recipient Recipient
	Sent      bool
	Err       error
}

// Sender sends a campaign one recipient at a time.
type Sender struct {
	mail     mailer.Sender
	delay    time.Duration
	validate *validator.Validate
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewSender creates a Sender that waits delay between consecutive sends.
func NewSender(m mailer.Sender, delay time.Duration) *Sender {
	return &Sender{
		mail:     m,
		delay:    delay,
		validate: validator.New(),
		sleep:    sleepCtx,
	}
}

// SendAll mails every recipient in order. A failure for one recipient is
// recorded in its Result and the batch continues. Cancelling ctx stops the
// batch; unsent recipients get ctx.Err().
func (s *Sender) SendAll(ctx context.Context, rs []Recipient, tmpl Template, opts Options) []Result {
	results := make([]Result, len(rs))
	sent, failed := 0, 0
	for i, r := range rs {
		results[i].Recipient = r
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			failed++
			continue
		}
		if i > 0 && s.delay > 0 && !opts.DryRun {
			if err := s.sleep(ctx, s.delay); err != nil {
				results[i].Err = err
				failed++
				continue
			}
		}

		if err := s.sendOne(ctx, r, tmpl, opts); err != nil {
			results[i].Err = err
			failed++
			zap.L().Warn("mail failed",
				zap.String("recipient", r.Email),
				zap.String("company", r.Company),
				zap.Error(err),
			)
			continue
		}
		results[i].Sent = true
		sent++
		zap.L().Info("mail sent",
			zap.String("recipient", r.Email),
			zap.String("company", r.Company),
			zap.Bool("dry_run", opts.DryRun),
		)
	}
	zap.L().Info("outreach: batch complete",
		zap.Int("recipients", len(rs)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return results
}

func (s *Sender) sendOne(ctx context.Context, r Recipient, tmpl Template, opts Options) error {
	if err := s.validate.Struct(r); err != nil {
		return eris.Wrapf(err, "outreach: invalid recipient %q", r.Email)
	}
	body, err := tmpl.RenderBody(r.Company)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return nil
	}
	return s.mail.Send(ctx, mailer.Message{
		To:         r.Email,
		Cc:         opts.Cc,
		Subject:    tmpl.RenderSubject(r.Company),
		HTML:       body,
		Attachment: opts.Attachment,
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

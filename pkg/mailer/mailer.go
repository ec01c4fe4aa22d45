// Package mailer sends HTML mail over authenticated SMTP submission.
package mailer

import (
	"context"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/wneessen/go-mail"
)

// Message is a single outgoing HTML mail.
type Message struct {
	To         string
	Cc         string
	Subject    string
	HTML       string
	Attachment string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds the SMTP submission settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP is a Sender using STARTTLS with plain auth.
type SMTP struct {
	cfg  Config
	opts []mail.Option
}

// New validates cfg and returns an SMTP sender. Extra options are applied
// after the defaults.
func New(cfg Config, opts ...mail.Option) (*SMTP, error) {
	if cfg.Host == "" {
		return nil, eris.New("mailer: host is required (OUTREACH_MAIL_HOST)")
	}
	if cfg.From == "" {
		return nil, eris.New("mailer: from address is required (OUTREACH_MAIL_FROM)")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	base := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Username != "" {
		base = append(base,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return &SMTP{cfg: cfg, opts: append(base, opts...)}, nil
}

// Send dials the server, submits msg and closes the connection.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m, err := Build(s.cfg.From, msg)
	if err != nil {
		return err
	}
	c, err := mail.NewClient(s.cfg.Host, s.opts...)
	if err != nil {
		return eris.Wrap(err, "mailer: client")
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return eris.Wrapf(err, "mailer: send to %s", msg.To)
	}
	return nil
}

// Build assembles the MIME message.
func Build(from string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, eris.Wrapf(err, "mailer: from %q", from)
	}
	if err := m.To(msg.To); err != nil {
		return nil, eris.Wrapf(err, "mailer: to %q", msg.To)
	}
	if msg.Cc != "" {
		if err := m.Cc(msg.Cc); err != nil {
			return nil, eris.Wrapf(err, "mailer: cc %q", msg.Cc)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	if msg.Attachment != "" {
		m.AttachFile(msg.Attachment, mail.WithFileName(filepath.Base(msg.Attachment)))
	}
	return m, nil
}

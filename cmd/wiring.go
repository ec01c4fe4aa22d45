package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/config"
	"github.com/csbb5959/sales-challenge-tool/internal/directory"
	"github.com/csbb5959/sales-challenge-tool/internal/prospect"
	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
	"github.com/csbb5959/sales-challenge-tool/pkg/anthropic"
	"github.com/csbb5959/sales-challenge-tool/pkg/gemini"
	"github.com/csbb5959/sales-challenge-tool/pkg/gsheets"
	"github.com/csbb5959/sales-challenge-tool/pkg/hubspot"
	"github.com/csbb5959/sales-challenge-tool/pkg/mailer"
	"github.com/csbb5959/sales-challenge-tool/pkg/notion"
	"github.com/csbb5959/sales-challenge-tool/pkg/salesforce"
)

// newCompleter builds the language model client selected by llm.provider.
func newCompleter(ctx context.Context, c *config.Config) (prospect.Completer, error) {
	switch c.LLM.Provider {
	case "gemini":
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:  c.Gemini.Key,
			Model:   c.Gemini.Model,
			BaseURL: c.Gemini.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return &prospect.GeminiCompleter{Client: client}, nil
	case "anthropic", "":
		var opts []anthropic.Option
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(c.Anthropic.BaseURL))
		}
		return &prospect.AnthropicCompleter{
			Client:    anthropic.NewClient(c.Anthropic.Key, opts...),
			Model:     c.Anthropic.Model,
			MaxTokens: int64(c.Anthropic.MaxTokens),
		}, nil
	default:
		return nil, eris.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
}

// newMatcher builds the CRM directory selected by crm.provider behind a
// circuit breaker.
func newMatcher(c *config.Config) (*directory.Matcher, error) {
	var dir directory.Directory
	switch c.CRM.Provider {
	case "salesforce":
		sf, err := salesforce.Dial(salesforce.Creds{
			LoginURL: c.Salesforce.LoginURL,
			Username: c.Salesforce.Username,
			ClientID: c.Salesforce.ClientID,
			KeyPath:  c.Salesforce.KeyPath,
		}, salesforce.WithRateLimit(c.Salesforce.RateLimit))
		if err != nil {
			return nil, err
		}
		dir = directory.NewSalesforce(sf)
	case "hubspot", "":
		opts := []hubspot.Option{hubspot.WithRateLimit(c.HubSpot.RateLimit)}
		if c.HubSpot.BaseURL != "" {
			opts = append(opts, hubspot.WithBaseURL(c.HubSpot.BaseURL))
		}
		dir = directory.NewHubSpot(hubspot.NewClient(c.HubSpot.Token, opts...))
	default:
		return nil, eris.Errorf("unknown crm provider %q", c.CRM.Provider)
	}

	bc := resilience.DefaultCircuitBreakerConfig(c.CRM.Provider)
	if c.CRM.BreakerThreshold > 0 {
		bc.FailureThreshold = c.CRM.BreakerThreshold
	}
	bc.Cooldown = time.Duration(c.CRM.BreakerCooldown) * time.Second
	return directory.NewMatcher(dir, directory.WithBreaker(resilience.NewCircuitBreaker(bc))), nil
}

// newSheet loads the column layout and opens the configured backend.
func newSheet(ctx context.Context, c *config.Config) (sheet.Table, *sheet.Layout, error) {
	layout, err := sheet.LoadLayout(c.Sheet.Layout, c.Sheet.LayoutPath)
	if err != nil {
		return nil, nil, err
	}

	switch c.Sheet.Backend {
	case "xlsx":
		return sheet.NewXLSXTable(c.Sheet.XLSXPath, c.Sheet.Worksheet), layout, nil
	case "notion":
		nc := notion.NewClient(c.Notion.Token, notion.WithRateLimit(c.Notion.RateLimit))
		t, err := sheet.NewNotionTable(nc, c.Sheet.NotionDB, layout)
		if err != nil {
			return nil, nil, err
		}
		return t, layout, nil
	case "gsheets", "":
		var opts []gsheets.Option
		if c.Sheet.CredentialsFile != "" {
			opts = append(opts, gsheets.WithCredentialsFile(c.Sheet.CredentialsFile))
		}
		if c.Sheet.Endpoint != "" {
			opts = append(opts, gsheets.WithEndpoint(c.Sheet.Endpoint))
		}
		gc, err := gsheets.New(ctx, c.Sheet.SpreadsheetID, opts...)
		if err != nil {
			return nil, nil, err
		}
		return sheet.NewGoogleTable(gc, c.Sheet.Worksheet, layout.Width), layout, nil
	default:
		return nil, nil, eris.Errorf("unknown sheet backend %q", c.Sheet.Backend)
	}
}

func newMailer(c *config.Config) (*mailer.SMTP, error) {
	return mailer.New(mailer.Config{
		Host:     c.Mail.Host,
		Port:     c.Mail.Port,
		Username: c.Mail.Username,
		Password: c.Mail.Password,
		From:     c.Mail.From,
	})
}

func logStartup(cmd string, fields ...zap.Field) {
	zap.L().Info(cmd+": starting", fields...)
}

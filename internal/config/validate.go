package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// Command modes understood by Validate.
const (
	ModeSearch = "search"
	ModeWrite  = "write"
	ModeList   = "list"
	ModeSend   = "send"
	ModeLookup = "lookup"
)

// Validate checks field shapes and that the sections a command needs are
// filled in. Missing values are reported by their environment variable.
func (c *Config) Validate(mode string) error {
	var errs []string

	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return eris.Wrap(err, "config: validate")
		}
		for _, fe := range ve {
			errs = append(errs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
		}
	}

	switch mode {
	case ModeSearch:
		errs = append(errs, c.requireLLM()...)
		errs = append(errs, c.requireCRM()...)
	case ModeWrite, ModeList:
		errs = append(errs, c.requireSheet()...)
	case ModeSend:
		errs = append(errs, c.requireSheet()...)
		errs = append(errs, c.requireMail()...)
	case ModeLookup:
		errs = append(errs, c.requireCRM()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RequireSheet exposes the sheet checks for commands that write optionally.
func (c *Config) RequireSheet() error {
	if errs := c.requireSheet(); len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func required(errs []string, value, key string) []string {
	if strings.TrimSpace(value) == "" {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		errs = append(errs, fmt.Sprintf("%s is required (%s)", key, env))
	}
	return errs
}

func (c *Config) requireLLM() []string {
	var errs []string
	switch c.LLM.Provider {
	case "gemini":
		errs = required(errs, c.Gemini.Key, "gemini.key")
		errs = required(errs, c.Gemini.Model, "gemini.model")
	default:
		errs = required(errs, c.Anthropic.Key, "anthropic.key")
		errs = required(errs, c.Anthropic.Model, "anthropic.model")
	}
	return errs
}

func (c *Config) requireCRM() []string {
	var errs []string
	switch c.CRM.Provider {
	case "salesforce":
		errs = required(errs, c.Salesforce.ClientID, "salesforce.client_id")
		errs = required(errs, c.Salesforce.Username, "salesforce.username")
		errs = required(errs, c.Salesforce.KeyPath, "salesforce.key_path")
	default:
		errs = required(errs, c.HubSpot.Token, "hubspot.token")
	}
	return errs
}

func (c *Config) requireSheet() []string {
	var errs []string
	switch c.Sheet.Backend {
	case "xlsx":
		errs = required(errs, c.Sheet.XLSXPath, "sheet.xlsx_path")
		errs = required(errs, c.Sheet.Worksheet, "sheet.worksheet")
	case "notion":
		errs = required(errs, c.Notion.Token, "notion.token")
		errs = required(errs, c.Sheet.NotionDB, "sheet.notion_db")
	default:
		errs = required(errs, c.Sheet.SpreadsheetID, "sheet.spreadsheet_id")
		errs = required(errs, c.Sheet.Worksheet, "sheet.worksheet")
	}
	if c.Sheet.LayoutPath == "" {
		errs = required(errs, c.Sheet.Layout, "sheet.layout")
	}
	return errs
}

func (c *Config) requireMail() []string {
	var errs []string
	errs = required(errs, c.Mail.Host, "mail.host")
	errs = required(errs, c.Mail.From, "mail.from")
	if c.Mail.Username != "" {
		errs = required(errs, c.Mail.Password, "mail.password")
	}
	return errs
}

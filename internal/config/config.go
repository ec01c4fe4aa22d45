package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	CRM        CRMConfig        `yaml:"crm" mapstructure:"crm"`
	HubSpot    HubSpotConfig    `yaml:"hubspot" mapstructure:"hubspot"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Sheet      SheetConfig      `yaml:"sheet" mapstructure:"sheet"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Mail       MailConfig       `yaml:"mail" mapstructure:"mail"`
	Prompts    PromptsConfig    `yaml:"prompts" mapstructure:"prompts"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the completion provider.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider" validate:"oneof=anthropic gemini"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=256"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// CRMConfig selects the directory and tunes the circuit breaker around it.
type CRMConfig struct {
	Provider         string `yaml:"provider" mapstructure:"provider" validate:"oneof=hubspot salesforce"`
	BreakerThreshold int    `yaml:"breaker_threshold" mapstructure:"breaker_threshold" validate:"gte=1"`
	BreakerCooldown  int    `yaml:"breaker_cooldown_secs" mapstructure:"breaker_cooldown_secs" validate:"gte=0"`
}

// HubSpotConfig holds HubSpot private app settings.
type HubSpotConfig struct {
	Token     string  `yaml:"token" mapstructure:"token"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
}

// SalesforceConfig holds Salesforce JWT auth settings.
type SalesforceConfig struct {
	ClientID  string  `yaml:"client_id" mapstructure:"client_id"`
	Username  string  `yaml:"username" mapstructure:"username"`
	KeyPath   string  `yaml:"key_path" mapstructure:"key_path"`
	LoginURL  string  `yaml:"login_url" mapstructure:"login_url" validate:"omitempty,url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
}

// SheetConfig selects the destination table and its column layout.
type SheetConfig struct {
	Backend         string `yaml:"backend" mapstructure:"backend" validate:"oneof=gsheets xlsx notion"`
	Layout          string `yaml:"layout" mapstructure:"layout"`
	LayoutPath      string `yaml:"layout_path" mapstructure:"layout_path"`
	SpreadsheetID   string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	Worksheet       string `yaml:"worksheet" mapstructure:"worksheet"`
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	XLSXPath        string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
	NotionDB        string `yaml:"notion_db" mapstructure:"notion_db"`
}

// NotionConfig holds Notion API credentials.
type NotionConfig struct {
	Token     string  `yaml:"token" mapstructure:"token"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
}

// MailConfig holds SMTP submission settings.
type MailConfig struct {
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`
	Username  string `yaml:"username" mapstructure:"username"`
	Password  string `yaml:"password" mapstructure:"password"`
	From      string `yaml:"from" mapstructure:"from" validate:"omitempty,email"`
	DelaySecs int    `yaml:"delay_secs" mapstructure:"delay_secs" validate:"gte=0"`
	// Signature is a path to an HTML signature; empty uses the built-in one.
	Signature string `yaml:"signature" mapstructure:"signature"`
}

// PromptsConfig points at prompt overrides.
type PromptsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "OUTREACH"

// keys without a default that still need an env binding.
var secretKeys = []string{
	"anthropic.key",
	"anthropic.base_url",
	"gemini.key",
	"gemini.base_url",
	"hubspot.token",
	"salesforce.client_id",
	"salesforce.username",
	"salesforce.key_path",
	"sheet.layout_path",
	"sheet.spreadsheet_id",
	"sheet.credentials_file",
	"sheet.endpoint",
	"sheet.notion_db",
	"notion.token",
	"mail.host",
	"mail.username",
	"mail.password",
	"mail.from",
	"mail.signature",
	"prompts.dir",
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range secretKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", k)
		}
	}

	// Defaults
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("crm.provider", "hubspot")
	v.SetDefault("crm.breaker_threshold", 5)
	v.SetDefault("crm.breaker_cooldown_secs", 30)
	v.SetDefault("hubspot.base_url", "https://api.hubapi.com")
	v.SetDefault("hubspot.rate_limit", 9)
	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
	v.SetDefault("salesforce.rate_limit", 5)
	v.SetDefault("sheet.backend", "gsheets")
	v.SetDefault("sheet.layout", "kontaktliste")
	v.SetDefault("sheet.worksheet", "Kontaktliste all")
	v.SetDefault("sheet.xlsx_path", "kontaktliste.xlsx")
	v.SetDefault("notion.rate_limit", 3)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.delay_secs", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

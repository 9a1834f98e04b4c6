package config

import (
	"fmt"
	"os"

	"LedgerDrill/internal/scenario"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Practice struct {
		Seed          string `yaml:"seed"`
		MasteryStreak int    `yaml:"mastery_streak"`
		DefaultKind   string `yaml:"default_kind"`
	} `yaml:"practice"`
	Schedule struct {
		DrillCron   string `yaml:"drill_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Progress struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"progress"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env only fills variables that are not already set
	_ = godotenv.Load()

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("LEDGERDRILL_SEED"); v != "" {
		cfg.Practice.Seed = v
	}
	if v := os.Getenv("MASTERY_STREAK"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Practice.MasteryStreak = n
		}
	}
	if v := os.Getenv("CRON_DRILL"); v != "" {
		cfg.Schedule.DrillCron = v
	}
	if v := os.Getenv("CRON_SUMMARY"); v != "" {
		cfg.Schedule.SummaryCron = v
	}
	if v := os.Getenv("PROGRESS_FILE"); v != "" {
		cfg.Progress.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Practice.MasteryStreak == 0 {
		cfg.Practice.MasteryStreak = 3
	}
	if cfg.Schedule.DrillCron == "" {
		cfg.Schedule.DrillCron = "0 0 8 * * *"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 18 * * 0"
	}
	if cfg.Progress.StateFile == "" {
		cfg.Progress.StateFile = "data/progress.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/ledgerdrill.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// Validate checks the settings every mode needs.
func (c *Config) Validate() error {
	if c.Practice.MasteryStreak <= 0 {
		return fmt.Errorf("practice.mastery_streak must be positive")
	}
	if c.Practice.DefaultKind != "" {
		if _, err := scenario.ParseKind(c.Practice.DefaultKind); err != nil {
			return fmt.Errorf("practice.default_kind: %w", err)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ValidateBot checks the additional settings the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

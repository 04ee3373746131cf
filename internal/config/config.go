package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"TokenSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Simulation model.SimParams `yaml:"simulation"`
	MonteCarlo struct {
		Runs    int   `yaml:"runs"`
		Workers int   `yaml:"workers"`
		Seed    int64 `yaml:"seed"`
	} `yaml:"monte_carlo"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Enabled    bool   `yaml:"enabled"`
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Output struct {
		RunJSON        string `yaml:"run_json"`
		MonteCarloJSON string `yaml:"monte_carlo_json"`
	} `yaml:"output"`
	ScenarioFile string `yaml:"scenario_file"`
	Proxy        string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Simulation parameters start from the documented defaults and the
// file overrides individual fields.
func Load(path string) (*Config, error) {
	cfg := &Config{Simulation: model.DefaultParams()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCENARIO_FILE"); v != "" {
		cfg.ScenarioFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MC_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MonteCarlo.Runs = n
		}
	}
	if v := os.Getenv("MC_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MonteCarlo.Seed = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}

	// Defaults
	if cfg.MonteCarlo.Runs == 0 {
		cfg.MonteCarlo.Runs = 1000
	}
	if cfg.MonteCarlo.Seed == 0 {
		cfg.MonteCarlo.Seed = 1
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 8 * * *"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 9 * * 1"
	}

	return cfg, nil
}

// Validate checks the full configuration eagerly, before anything runs.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.MonteCarlo.Runs <= 0 {
		return fmt.Errorf("monte_carlo.runs must be positive")
	}
	if c.MonteCarlo.Workers < 0 {
		return fmt.Errorf("monte_carlo.workers must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Schedule.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("schedule mode requires telegram credentials")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUserAgent = "rdt/0.1 (terminal reddit browser)"
	DefaultAIModel   = "claude-3-haiku-20240307"
	DefaultAIURL     = "https://api.anthropic.com/v1/messages"
)

// Config holds application-level configuration.
type Config struct {
	Reddit RedditConfig `yaml:"reddit"`
	AI     AIConfig     `yaml:"ai"`
	TUI    TUIConfig    `yaml:"tui"`
	Log    LogConfig    `yaml:"log"`
}

// RedditConfig controls how the data provider talks to Reddit.
// Without a token the public JSON endpoints are used.
type RedditConfig struct {
	AccessToken       string        `yaml:"access_token"`
	TokenFile         string        `yaml:"token_file"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// AIConfig enables the language-model layer of query interpretation.
// An empty APIKey disables it.
type AIConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether AI interpretation can be attempted.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// TUIConfig holds the interactive session defaults.
type TUIConfig struct {
	HomeFeed     string `yaml:"home_feed"`
	HomeSort     string `yaml:"home_sort"`
	HomeTime     string `yaml:"home_time"`
	HomeLimit    int    `yaml:"home_limit"`
	CommentSort  string `yaml:"comment_sort"`
	CommentLimit int    `yaml:"comment_limit"`
	Images       bool   `yaml:"images"`
}

// LogConfig selects the log level and file. An empty file means no log in
// the TUI and stderr for one-shot commands.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Reddit: RedditConfig{
			UserAgent:         DefaultUserAgent,
			Timeout:           15 * time.Second,
			RequestsPerMinute: 60,
		},
		AI: AIConfig{
			Endpoint: DefaultAIURL,
			Model:    DefaultAIModel,
			Timeout:  10 * time.Second,
		},
		TUI: TUIConfig{
			HomeFeed:     "all",
			HomeSort:     "hot",
			HomeTime:     "day",
			HomeLimit:    25,
			CommentSort:  "best",
			CommentLimit: 50,
			Images:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the configuration directory (~/.config/rdt).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rdt"), nil
}

// DefaultPath returns RDT_CONFIG when set, else ~/.config/rdt/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("RDT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the YAML file at path, then applies environment overrides.
// An empty path means DefaultPath. A missing file yields the defaults.
//
//	RDT_ACCESS_TOKEN : OAuth bearer token
//	RDT_TOKEN_FILE   : file holding the bearer token
//	RDT_USER_AGENT   : User-Agent sent to Reddit
//	RDT_AI_ENDPOINT  : messages API endpoint for AI interpretation
//	RDT_AI_API_KEY   : API key; enables AI interpretation
//	RDT_AI_MODEL     : model name
//	RDT_LOG_LEVEL    : debug, info, warn, error
//	RDT_LOG_FILE     : log file path
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Reddit.AccessToken, "RDT_ACCESS_TOKEN")
	setFromEnv(&c.Reddit.TokenFile, "RDT_TOKEN_FILE")
	setFromEnv(&c.Reddit.UserAgent, "RDT_USER_AGENT")
	setFromEnv(&c.AI.Endpoint, "RDT_AI_ENDPOINT")
	setFromEnv(&c.AI.APIKey, "RDT_AI_API_KEY")
	setFromEnv(&c.AI.Model, "RDT_AI_MODEL")
	setFromEnv(&c.Log.Level, "RDT_LOG_LEVEL")
	setFromEnv(&c.Log.File, "RDT_LOG_FILE")
}

func setFromEnv(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() error {
	d := DefaultConfig()
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = d.Reddit.UserAgent
	}
	if c.Reddit.Timeout == 0 {
		c.Reddit.Timeout = d.Reddit.Timeout
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = d.AI.Timeout
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
	if c.AI.Endpoint == "" {
		c.AI.Endpoint = d.AI.Endpoint
	}
	if c.TUI.HomeFeed == "" {
		c.TUI.HomeFeed = d.TUI.HomeFeed
	}
	if c.TUI.HomeSort == "" {
		c.TUI.HomeSort = d.TUI.HomeSort
	}
	if c.TUI.HomeTime == "" {
		c.TUI.HomeTime = d.TUI.HomeTime
	}
	if c.TUI.CommentSort == "" {
		c.TUI.CommentSort = d.TUI.CommentSort
	}
	if c.Reddit.TokenFile == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.Reddit.TokenFile = filepath.Join(dir, "token")
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Reddit.RequestsPerMinute < 1 {
		return fmt.Errorf("reddit.requests_per_minute must be at least 1")
	}
	if c.Reddit.Timeout < 0 || c.AI.Timeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if c.TUI.HomeLimit < 1 || c.TUI.HomeLimit > 100 {
		return fmt.Errorf("tui.home_limit must be between 1 and 100")
	}
	if c.TUI.CommentLimit < 1 || c.TUI.CommentLimit > 500 {
		return fmt.Errorf("tui.comment_limit must be between 1 and 500")
	}
	if c.AI.Enabled() {
		parsed, err := url.Parse(c.AI.Endpoint)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("ai.endpoint must be an absolute URL")
		}
		if parsed.Scheme != "https" {
			return fmt.Errorf("ai.endpoint: only https is allowed")
		}
	}
	return nil
}

// Package config loads application settings from an optional YAML file, a
// .env file and NURSING_MCQ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ashmilgit15/nursing-mcq-website/internal/llm"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"github.com/ashmilgit15/nursing-mcq-website/internal/sources"
	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
)

// EnvPrefix is prepended to every environment variable, so llm.provider is
// read from NURSING_MCQ_LLM_PROVIDER.
const EnvPrefix = "NURSING_MCQ"

var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	DBPath      string      `mapstructure:"db_path"`      // SQLite file; empty means the XDG default
	PostgresURL string      `mapstructure:"postgres_url"` // when set, bank and progress live in Postgres
	Log         Log         `mapstructure:"log"`
	Replenish   Replenish   `mapstructure:"replenish"`
	Sources     []string    `mapstructure:"sources"`
	Quiz        Quiz        `mapstructure:"quiz"`
	LLMSettings LLMSettings `mapstructure:"llm"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `mapstructure:"level"`
	File        string `mapstructure:"file"` // empty means stderr
	Development bool   `mapstructure:"development"`
}

// Replenish mirrors replenish.Config plus start-up behaviour.
type Replenish struct {
	Threshold       int           `mapstructure:"threshold"`
	BatchSize       int           `mapstructure:"batch_size"`
	SourceTimeout   time.Duration `mapstructure:"source_timeout"`
	FallbackLimit   int           `mapstructure:"fallback_limit"`
	BulkConcurrency int           `mapstructure:"bulk_concurrency"`
	BulkOnStart     bool          `mapstructure:"bulk_on_start"`
	BulkDelay       time.Duration `mapstructure:"bulk_delay"`
}

// Quiz holds session settings.
type Quiz struct {
	TimeLimit time.Duration `mapstructure:"time_limit"`
}

// LLMSettings selects the question generation model.
type LLMSettings struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Questions  int           `mapstructure:"questions"`
	Anthropic  Vendor        `mapstructure:"anthropic"`
	OpenAI     Vendor        `mapstructure:"openai"`
	Gemini     Vendor        `mapstructure:"gemini"`
	OpenRouter Vendor        `mapstructure:"openrouter"`
}

// Vendor holds one provider's credentials.
type Vendor struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

func setDefaults(v *viper.Viper) {
	rd := replenish.DefaultConfig()
	ld := llm.DefaultConfig()

	v.SetDefault("db_path", "")
	v.SetDefault("postgres_url", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.development", false)

	v.SetDefault("replenish.threshold", rd.Threshold)
	v.SetDefault("replenish.batch_size", rd.BatchSize)
	v.SetDefault("replenish.source_timeout", rd.SourceTimeout)
	v.SetDefault("replenish.fallback_limit", rd.FallbackLimit)
	v.SetDefault("replenish.bulk_concurrency", rd.BulkConcurrency)
	v.SetDefault("replenish.bulk_on_start", true)
	v.SetDefault("replenish.bulk_delay", 5*time.Second)

	v.SetDefault("sources", sources.DefaultNames)
	v.SetDefault("quiz.time_limit", 60*time.Second)

	v.SetDefault("llm.provider", ld.Provider)
	v.SetDefault("llm.timeout", ld.Timeout)
	v.SetDefault("llm.questions", sources.DefaultLLMConfig().Count)
	for name, model := range map[string]string{
		"anthropic":  ld.Anthropic.Model,
		"openai":     ld.OpenAI.Model,
		"gemini":     ld.Gemini.Model,
		"openrouter": ld.OpenRouter.Model,
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}
}

// Load reads configuration. path names a YAML file and may be empty, in
// which case config.yaml is looked up in the working directory and the data
// directory. A .env file beside the config (or in the working directory) is
// loaded into the environment first; variables already set win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := store.DataDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	r := c.Replenish
	switch {
	case r.Threshold <= 0:
		return fmt.Errorf("%w: replenish.threshold must be positive", ErrInvalid)
	case r.BatchSize <= 0:
		return fmt.Errorf("%w: replenish.batch_size must be positive", ErrInvalid)
	case r.BulkConcurrency <= 0:
		return fmt.Errorf("%w: replenish.bulk_concurrency must be positive", ErrInvalid)
	case r.SourceTimeout <= 0:
		return fmt.Errorf("%w: replenish.source_timeout must be positive", ErrInvalid)
	case c.Quiz.TimeLimit < 0:
		return fmt.Errorf("%w: quiz.time_limit must not be negative", ErrInvalid)
	}
	if _, err := sources.Build(c.Sources, sources.Deps{}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.LLM().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ReplenishConfig maps the replenish section onto replenish.Config.
func (c *Config) ReplenishConfig() replenish.Config {
	return replenish.Config{
		Threshold:       c.Replenish.Threshold,
		BatchSize:       c.Replenish.BatchSize,
		SourceTimeout:   c.Replenish.SourceTimeout,
		FallbackLimit:   c.Replenish.FallbackLimit,
		BulkConcurrency: c.Replenish.BulkConcurrency,
	}
}

// LLM maps the llm section onto llm.Config. With no provider configured it
// falls back to whichever vendor key llm.DiscoverConfig finds.
func (c *Config) LLM() llm.Config {
	s := c.LLMSettings
	if s.Provider == llm.ProviderNone {
		if discovered, ok := llm.DiscoverConfig(); ok {
			return discovered
		}
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = s.Provider
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
	}
	cfg.Anthropic = llm.AnthropicConfig{APIKey: s.Anthropic.APIKey, Model: s.Anthropic.Model}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: s.OpenAI.APIKey, Model: s.OpenAI.Model, BaseURL: s.OpenAI.BaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: s.Gemini.APIKey, Model: s.Gemini.Model}
	cfg.OpenRouter = llm.OpenRouterConfig{APIKey: s.OpenRouter.APIKey, Model: s.OpenRouter.Model, BaseURL: s.OpenRouter.BaseURL}
	return cfg
}

// LLMSourceConfig returns generation settings for the llm question source.
func (c *Config) LLMSourceConfig() sources.LLMConfig {
	cfg := sources.DefaultLLMConfig()
	if c.LLMSettings.Questions > 0 {
		cfg.Count = c.LLMSettings.Questions
	}
	return cfg
}

func loadDotEnv(configPath string) error {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), ".env")}, candidates...)
	}
	for _, f := range candidates {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
		return nil
	}
	return nil
}

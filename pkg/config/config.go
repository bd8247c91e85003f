// Package config loads tierchat settings from defaults, an optional YAML file,
// an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
)

// EnvPrefix namespaces every tierchat environment variable.
const EnvPrefix = "TIERCHAT"

// Config holds all configuration for tierchat.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Levels     LevelsConfig     `mapstructure:"levels"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Log        LogConfig        `mapstructure:"log"`
}

// LLMConfig selects the language model backend and its sampling settings.
type LLMConfig struct {
	Provider        string  `mapstructure:"provider"`
	Model           string  `mapstructure:"model"`
	APIKey          string  `mapstructure:"api_key"`
	Host            string  `mapstructure:"host"`
	Temperature     float32 `mapstructure:"temperature"`
	TopK            int32   `mapstructure:"top_k"`
	TopP            float32 `mapstructure:"top_p"`
	SafetyThreshold string  `mapstructure:"safety_threshold"`
}

// LevelConfig holds per-tier limits.
type LevelConfig struct {
	MaxOutputTokens int32 `mapstructure:"max_output_tokens"`
}

// LevelsConfig holds the limits of the three chatbot tiers.
type LevelsConfig struct {
	Chatbot     LevelConfig `mapstructure:"chatbot"`
	ToolChatbot LevelConfig `mapstructure:"tool_chatbot"`
	Agent       LevelConfig `mapstructure:"agent"`
}

// CacheConfig controls the response cache in front of the model. Size 0 disables it.
type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
	Path string        `mapstructure:"path"`
}

// TranslatorConfig extends the built-in English to German dictionary.
type TranslatorConfig struct {
	Phrases map[string]string `mapstructure:"phrases"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Options tell Load where to look for files.
type Options struct {
	// ConfigFile is an explicit YAML path. When empty, ./tierchat.yaml is used if present.
	ConfigFile string
	// EnvFile is a dotenv file whose variables are exported unless already set.
	// When empty, ./.env is used if present.
	EnvFile string
}

// Load resolves configuration. Precedence (highest to lowest):
// 1. Environment variables (TIERCHAT_*, OLLAMA_HOST)
// 2. The .env file, for variables not already in the environment
// 3. The YAML config file
// 4. Built-in defaults
func Load(opts Options) (*Config, error) {
	if err := loadDotenv(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("tierchat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.host", EnvPrefix+"_LLM_HOST", "OLLAMA_HOST")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.LLM.APIKey = os.ExpandEnv(cfg.LLM.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotenv exports the variables of a dotenv file without overriding the environment.
func loadDotenv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, key := range ev.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, ev.GetString(key)); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
	}
	return nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.host", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_k", 1)
	v.SetDefault("llm.top_p", 1)
	v.SetDefault("llm.safety_threshold", string(models.BlockMediumAndAbove))

	v.SetDefault("levels.chatbot.max_output_tokens", 500)
	v.SetDefault("levels.tool_chatbot.max_output_tokens", 500)
	v.SetDefault("levels.agent.max_output_tokens", 300)

	v.SetDefault("cache.size", 0)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.path", "")

	v.SetDefault("log.level", "info")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:        "gemini",
			Temperature:     0.7,
			TopK:            1,
			TopP:            1,
			SafetyThreshold: string(models.BlockMediumAndAbove),
		},
		Levels: LevelsConfig{
			Chatbot:     LevelConfig{MaxOutputTokens: 500},
			ToolChatbot: LevelConfig{MaxOutputTokens: 500},
			Agent:       LevelConfig{MaxOutputTokens: 300},
		},
		Cache: CacheConfig{TTL: 5 * time.Minute},
		Log:   LogConfig{Level: "info"},
	}
}

// Validate rejects settings no model backend can honour.
func (c *Config) Validate() error {
	if _, err := models.ParseSafetyThreshold(c.LLM.SafetyThreshold); err != nil {
		return fmt.Errorf("llm.safety_threshold: %w", err)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.TopP < 0 || c.LLM.TopP > 1 {
		return fmt.Errorf("llm.top_p must be within [0, 1], got %v", c.LLM.TopP)
	}
	for name, lvl := range map[string]LevelConfig{
		"chatbot":      c.Levels.Chatbot,
		"tool_chatbot": c.Levels.ToolChatbot,
		"agent":        c.Levels.Agent,
	} {
		if lvl.MaxOutputTokens <= 0 {
			return fmt.Errorf("levels.%s.max_output_tokens must be positive", name)
		}
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative")
	}
	return nil
}

// Provider returns the settings used to construct the model backend.
func (c *Config) Provider() models.ProviderConfig {
	return models.ProviderConfig{
		Provider: c.LLM.Provider,
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		Host:     c.LLM.Host,
	}
}

// Generation returns the generation settings for a chatbot level (1, 2 or 3).
func (c *Config) Generation(level int) (models.GenerationConfig, error) {
	var lvl LevelConfig
	switch level {
	case 1:
		lvl = c.Levels.Chatbot
	case 2:
		lvl = c.Levels.ToolChatbot
	case 3:
		lvl = c.Levels.Agent
	default:
		return models.GenerationConfig{}, fmt.Errorf("unknown level %d (want 1, 2 or 3)", level)
	}
	safety, err := models.ParseSafetyThreshold(c.LLM.SafetyThreshold)
	if err != nil {
		return models.GenerationConfig{}, err
	}
	return models.GenerationConfig{
		Temperature:     c.LLM.Temperature,
		TopK:            c.LLM.TopK,
		TopP:            c.LLM.TopP,
		MaxOutputTokens: lvl.MaxOutputTokens,
		Safety:          safety,
	}, nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// exercise records store (mongo); URI comes from env, not the toml file
	MongoDBName          string `toml:"mongo_db_name"`
	MongoConnectTimeoutS int    `toml:"mongo_connect_timeout_seconds"`

	// prometheus metrics listener
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// chatbot
	ChatModel          string `toml:"chat_model"`
	ChatMaxTokens      int    `toml:"chat_max_tokens"`
	ChatTimeoutSeconds int    `toml:"chat_timeout_seconds"`
	ChatPerMinLimit    int    `toml:"chat_per_min_limit"`
	RedisHost          string `toml:"redis_host"`
	RedisPort          string `toml:"redis_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	tomlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := LoadFromBytes(env, tomlData)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func LoadFromBytes(env string, tomlData []byte) (*Config, error) {
	var t Toml
	if err := toml.Unmarshal(tomlData, &t); err != nil {
		return nil, fmt.Errorf("unmarshal toml config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section missing for env: %s", env)
	}

	cfg.Environment = env
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "trace"
	}
	if cfg.MongoConnectTimeoutS <= 0 {
		cfg.MongoConnectTimeoutS = 10
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.ChatMaxTokens <= 0 {
		cfg.ChatMaxTokens = 150
	}
	if cfg.ChatTimeoutSeconds <= 0 {
		cfg.ChatTimeoutSeconds = 30
	}
	if cfg.ChatPerMinLimit <= 0 {
		cfg.ChatPerMinLimit = 30
	}
}

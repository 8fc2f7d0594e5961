// Package config loads runtime configuration from an optional YAML file and
// environment variable overrides. Environment always wins over file values.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 3000
	defaultEnv             = "development"
	defaultDataDir         = "data"
	defaultLogDir          = "logs"
	defaultLogLevel        = "info"
	defaultLogRotateSizeMB = 50
	defaultLogRotateKeep   = 3
	defaultAIProviderType  = "openai-compatible"
	defaultMonitorInterval = 24 * time.Hour
)

// AIProvider selects and authenticates the LLM backend used for sentiment
// analysis.
type AIProvider struct {
	// Type is one of "openai-compatible", "openai", "anthropic".
	Type     string `yaml:"type"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type LogConfig struct {
	Dir          string `yaml:"dir"`
	Level        string `yaml:"level"`
	RotateSizeMB int    `yaml:"rotate_size_mb"`
	RotateKeep   int    `yaml:"rotate_keep"`
}

type MonitorConfig struct {
	// Interval is the period of the scheduled monitoring job.
	Interval time.Duration `yaml:"interval"`
}

// AppConfig holds the full runtime configuration.
type AppConfig struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"` // "development" | "production"

	// DataDir holds the JSON table files.
	DataDir string `yaml:"data_dir"`
	// CommentDataFile optionally overrides the embedded review corpus.
	CommentDataFile string `yaml:"comment_data_file"`
	// WebhookURL receives report_created notifications; empty disables them.
	WebhookURL string `yaml:"webhook_url"`

	AllowedOrigins []string      `yaml:"allowed_origins"`
	Log            LogConfig     `yaml:"log"`
	AI             AIProvider    `yaml:"ai"`
	Monitor        MonitorConfig `yaml:"monitor"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// Load reads the YAML file at configPath, then applies environment overrides.
// When configPath is empty and the default file does not exist, the built-in
// defaults are used; an explicitly given path must exist.
func Load(configPath string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if decodeErr := decoder.Decode(&cfg); decodeErr != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, decodeErr)
		}
	case os.IsNotExist(err) && !explicit:
		// No file, run on defaults plus environment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Monitor.Interval <= 0 {
		return nil, fmt.Errorf("invalid monitor interval %s, expected > 0", cfg.Monitor.Interval)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:    defaultPort,
		Env:     defaultEnv,
		DataDir: defaultDataDir,
		Log: LogConfig{
			Dir:          defaultLogDir,
			Level:        defaultLogLevel,
			RotateSizeMB: defaultLogRotateSizeMB,
			RotateKeep:   defaultLogRotateKeep,
		},
		AI: AIProvider{
			Type: defaultAIProviderType,
		},
		Monitor: MonitorConfig{
			Interval: defaultMonitorInterval,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("COMMENT_DATA_FILE")); v != "" {
		cfg.CommentDataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("WEBHOOK_URL")); v != "" {
		cfg.WebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		origins := make([]string, 0, 4)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := strings.TrimSpace(os.Getenv("LOG_DIR")); v != "" {
		cfg.Log.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_PROVIDER")); v != "" {
		cfg.AI.Type = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_ENDPOINT")); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_API_KEY")); v != "" {
		cfg.AI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_MODEL")); v != "" {
		cfg.AI.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("MONITOR_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MONITOR_INTERVAL %q: %w", v, err)
		}
		cfg.Monitor.Interval = d
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	redisstore "horror-quiz-service/internal/infra/redis"

	"gopkg.in/yaml.v3"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"

	DefaultPort     = "8001"
	DefaultDataPath = "data/questions.json"
	DefaultRedisKey = redisstore.DefaultDocumentKey
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`
	Quiz struct {
		Source   string `yaml:"source"`
		DataPath string `yaml:"data_path"`
		RedisKey string `yaml:"redis_key"`
	} `yaml:"quiz"`
	Web struct {
		StaticDir    string `yaml:"static_dir"`
		TemplatePath string `yaml:"template_path"`
	} `yaml:"web"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a config with every default applied.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Quiz.Source == "" {
		c.Quiz.Source = SourceFile
	}
	if c.Quiz.DataPath == "" {
		c.Quiz.DataPath = DefaultDataPath
	}
	if c.Quiz.RedisKey == "" {
		c.Quiz.RedisKey = DefaultRedisKey
	}
}

// Validate reports settings that would prevent the quiz data from loading.
func (c Config) Validate() error {
	switch c.Quiz.Source {
	case SourceFile:
		if c.Quiz.DataPath == "" {
			return fmt.Errorf("quiz data path not configured")
		}
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("quiz source %q requires postgres url", c.Quiz.Source)
		}
	case SourceRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("quiz source %q requires redis addr", c.Quiz.Source)
		}
	default:
		return fmt.Errorf("unknown quiz source %q", c.Quiz.Source)
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

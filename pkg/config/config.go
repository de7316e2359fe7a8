// Package config loads platform settings from a YAML file with
// environment variable overrides. Callers run godotenv.Load first so a
// local .env feeds the overrides during development.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Benchmarks struct {
		File      string `yaml:"file"`
		RemoteURL string `yaml:"remote_url"`
		RedisAddr string `yaml:"redis_addr"`
	} `yaml:"benchmarks"`
}

// Load reads the YAML file at path, then applies environment
// overrides. A missing file is not an error; env vars alone can carry
// a full configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Benchmarks.File = "resources/benchmarks.hjson"

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("BENCHMARK_FILE"); v != "" {
		cfg.Benchmarks.File = v
	}
	if v := os.Getenv("BENCHMARK_URL"); v != "" {
		cfg.Benchmarks.RemoteURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Benchmarks.RedisAddr = v
	}

	return cfg, nil
}

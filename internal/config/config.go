// Package config loads service configuration from YAML and the environment.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OllamaConfig configures the inference gateway client.
type OllamaConfig struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}

// ChunkingConfig holds the default window parameters for ingestion.
// Per-request chunk_size/overlap query params override these.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// IngestConfig configures the watched documents directory.
type IngestConfig struct {
	DataDir string `yaml:"data_dir"`
	Watch   *bool  `yaml:"watch"`
}

// QueryConfig holds retrieval defaults.
type QueryConfig struct {
	TopK int `yaml:"top_k"`
}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Query    QueryConfig    `yaml:"query"`
}

// WatchEnabled reports whether the documents directory should be watched.
// Defaults to true when the config file does not say otherwise.
func (c *Config) WatchEnabled() bool {
	if c.Ingest.Watch == nil {
		return true
	}
	return *c.Ingest.Watch
}

// Load reads the config from path. An empty path or a missing file yields
// defaults. The OLLAMA_URL environment variable overrides the gateway
// address either way.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// Missing file is fine; run on defaults.
		default:
			return nil, err
		}
	}

	applyDefaults(&cfg)

	if url := os.Getenv("OLLAMA_URL"); url != "" {
		cfg.Ollama.URL = url
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = "http://localhost:11434"
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = "qwen2.5:0.5b"
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 500
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = 100
	}
	if cfg.Ingest.DataDir == "" {
		cfg.Ingest.DataDir = "./data"
	}
	if cfg.Query.TopK == 0 {
		cfg.Query.TopK = 3
	}
}

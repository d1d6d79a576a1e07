package config

import (
	"time"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Engine EngineConfig `yaml:"engine"`
}

type ServerConfig struct {
	IP           string        `yaml:"ip"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// MaxBodyBytes caps every inbound request body. Requests beyond it are
	// rejected with 413 before any handler runs.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// FetchConfig controls the remote-URL image client.
type FetchConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	// TLSEnabled is the capability flag for https fetches. When false,
	// https URLs are rejected instead of attempted.
	TLSEnabled   bool  `yaml:"tls_enabled"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// EngineConfig configures the tesseract engine collaborator.
type EngineConfig struct {
	Languages   []string `yaml:"languages"`
	PageSegMode int      `yaml:"page_seg_mode"`
}

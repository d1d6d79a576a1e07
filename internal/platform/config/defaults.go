package config

import "time"

const (
	// MaxPayloadBytes is the fixed 10 MiB ceiling enforced on every
	// image-bearing input: request bodies, uploaded files, decoded base64
	// payloads and fetched remote bodies.
	MaxPayloadBytes = 10 * 1024 * 1024
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:           "127.0.0.1",
			Port:         1224,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: MaxPayloadBytes,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "",
			File:  "server.log",
		},
		Fetch: FetchConfig{
			ConnectTimeout: 10 * time.Second,
			ReadTimeout:    30 * time.Second,
			TLSEnabled:     true,
			MaxBodyBytes:   MaxPayloadBytes,
		},
		Engine: EngineConfig{
			Languages:   []string{"eng"},
			PageSegMode: 3, // fully automatic page segmentation
		},
	}
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/server"
	"github.com/lpvault/lpvault/trace"
)

const (
	defaultHTTPHost        = "127.0.0.1"
	defaultHTTPPort        = 8480
	defaultShutdownTimeout = 10 * time.Second

	defaultReadTimeout       = 30 * time.Second
	defaultReadHeaderTimeout = 30 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second

	defaultLogMaxSize  = 128 // MiB
	defaultLogMaxAge   = 7   // days
	defaultLogMaxFiles = 4

	defaultRequestExpiryWindow = 30 * time.Second
	defaultStreamingBacklog    = 1_024
)

type Config struct {
	HTTPHost string `json:"host"`
	HTTPPort int    `json:"port"`

	AllowedOrigins  []string          `json:"allowedOrigins"`
	AllowedHosts    []string          `json:"allowedHosts"`
	HTTPConfig      server.HTTPConfig `json:"httpConfig"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`

	LogLevel    logging.Level `json:"logLevel"`
	LogDir      string        `json:"logDir"` // empty disables the file core
	LogMaxSize  int           `json:"logMaxSize"`
	LogMaxAge   int           `json:"logMaxAge"`
	LogMaxFiles int           `json:"logMaxFiles"`
	LogCompress bool          `json:"logCompress"`

	TraceConfig trace.Config `json:"traceConfig"`

	DatabasePath string `json:"databasePath"` // empty runs on an in-memory database
	GenesisPath  string `json:"genesisPath"`  // empty commits the default genesis

	// RequestExpiryWindow caps how far in the future a signed
	// request's expiry may sit. Envelopes beyond the window are
	// refused to bound replay exposure.
	RequestExpiryWindow time.Duration `json:"requestExpiryWindow"`

	// StreamingBacklogSize is the per-subscriber buffer of the
	// websocket event stream. Slow consumers drop events beyond it.
	StreamingBacklogSize int `json:"streamingBacklogSize"`
}

func Default() Config {
	return Config{
		HTTPHost:        defaultHTTPHost,
		HTTPPort:        defaultHTTPPort,
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"*"},
		ShutdownTimeout: defaultShutdownTimeout,
		HTTPConfig: server.HTTPConfig{
			ReadTimeout:       defaultReadTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
		},
		LogLevel:    logging.Info,
		LogMaxSize:  defaultLogMaxSize,
		LogMaxAge:   defaultLogMaxAge,
		LogMaxFiles: defaultLogMaxFiles,
		TraceConfig: trace.Config{
			Enabled: false,
			AppName: consts.Name,
			Version: consts.Version.String(),
		},
		RequestExpiryWindow:  defaultRequestExpiryWindow,
		StreamingBacklogSize: defaultStreamingBacklog,
	}
}

// New overlays the JSON in [b] on the defaults.
func New(b []byte) (Config, error) {
	c := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	return c, nil
}

// Load reads a config file from disk. An empty path returns the
// defaults so the daemon can start with no config at all.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return New(b)
}

// LogConfig assembles the avalanchego logging configuration the
// daemon's log factory consumes. Rotation settings live on an
// embedded struct, so they are assigned rather than constructed.
func (c Config) LogConfig() logging.Config {
	cfg := logging.Config{
		LogLevel:     c.LogLevel,
		DisplayLevel: c.LogLevel,
		LogFormat:    logging.Plain,
		LoggerName:   consts.Name,
	}
	cfg.Directory = c.LogDir
	cfg.MaxSize = c.LogMaxSize
	cfg.MaxAge = c.LogMaxAge
	cfg.MaxFiles = c.LogMaxFiles
	cfg.Compress = c.LogCompress
	return cfg
}

// Address returns the host:port the HTTP listener binds.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

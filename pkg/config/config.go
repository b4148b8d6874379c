/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration structures and helpers for ApkScope. All runtime settings
(bind address, staging directory, upload ceiling, logging) live in an explicit Config
struct passed into constructors - no module-level state. Loadable from CLI flags,
config files, or environment variables via viper.
*/

package config

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultMaxUploadSize is the upload ceiling applied when none is configured.
const DefaultMaxUploadSize = 500 * 1024 * 1024 // 500MB

// Config holds all runtime configuration for the ApkScope service
type Config struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	StagingDir    string `json:"staging_dir"`
	MaxUploadSize int64  `json:"max_upload_size"` // in bytes
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	LogDir        string `json:"log_dir"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:          "0.0.0.0",
		Port:          5000,
		StagingDir:    "./uploads",
		MaxUploadSize: DefaultMaxUploadSize,
		LogLevel:      "info",
		LogFormat:     "text",
		LogDir:        "./logs",
	}
}

// Validate checks the Config for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *Config) Validate() error {
	if c.StagingDir == "" {
		return fmt.Errorf("staging_dir must not be empty")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 1-65535, got %d", c.Port)
	}
	switch c.LogFormat {
	case "text", "json":
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.LogFormat)
	}
	return nil
}

// Address returns the host:port string the HTTP server binds to
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

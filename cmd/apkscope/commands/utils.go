/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the ApkScope commands. Provides configuration
loading from viper (flags, config files, environment) and logger construction
used across all command implementations.
*/

package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kleascm/apkscope/pkg/config"
	"github.com/kleascm/apkscope/pkg/logging"
)

// LoadConfig loads configuration from files and environment and returns the
// resolved Config
func LoadConfig() (*config.Config, error) {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("APKSCOPE")
	viper.AutomaticEnv()

	cfg := &config.Config{
		Host:          viper.GetString("host"),
		Port:          viper.GetInt("port"),
		StagingDir:    viper.GetString("staging_dir"),
		MaxUploadSize: viper.GetInt64("max_upload_size"),
		LogLevel:      viper.GetString("log_level"),
		LogFormat:     viper.GetString("log_format"),
		LogDir:        viper.GetString("log_dir"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SetupLogging constructs the service logger from the resolved config
func SetupLogging(cfg *config.Config) (*logging.Logger, error) {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     cfg.LogLevel,
		Format:    logging.LogFormat(cfg.LogFormat),
		OutputDir: cfg.LogDir,
		Colors:    true,
	})
}

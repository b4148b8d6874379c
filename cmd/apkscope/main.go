/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for ApkScope. Provides the serve, inspect,
and check commands with configuration management via flags, environment variables,
and optional config files.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/apkscope/cmd/apkscope/commands"
	"github.com/kleascm/apkscope/pkg/config"
)

var (
	configFile    string
	host          string
	port          int
	stagingDir    string
	maxUploadSize int64
	logLevel      string
	logFormat     string
	logDir        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apkscope",
		Short: "ApkScope - APK permission risk analysis service",
		Long: `ApkScope is a static analysis service for Android application packages.
It accepts uploaded APKs, extracts the declared permission set from the manifest,
and maps permissions to human-readable risk mitigation advice. Runs as an HTTP
service or as a one-shot CLI inspector.`,
		Version: "1.0.0",
	}

	defaults := config.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&host, "host", defaults.Host, "Bind host for the HTTP server")
	rootCmd.PersistentFlags().IntVar(&port, "port", defaults.Port, "Bind port for the HTTP server")
	rootCmd.PersistentFlags().StringVar(&stagingDir, "staging-dir", defaults.StagingDir, "Directory for uploaded packages awaiting analysis")
	rootCmd.PersistentFlags().Int64Var(&maxUploadSize, "max-upload-size", defaults.MaxUploadSize, "Maximum upload size in bytes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaults.LogFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", defaults.LogDir, "Log output directory (empty disables file logging)")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("staging_dir", rootCmd.PersistentFlags().Lookup("staging-dir"))
	viper.BindPFlag("max_upload_size", rootCmd.PersistentFlags().Lookup("max-upload-size"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.CheckCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Structured logging system for ApkScope. Provides logrus-based logging
with timestamped log files, JSON and text formats, and service-specific helper
methods for upload, analysis, and cleanup events.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     string    `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"` // empty disables file output
	Colors    bool      `json:"colors"`
}

// Validate checks the LoggerConfig for invalid or missing values
func (c *LoggerConfig) Validate() error {
	switch c.Format {
	case LogFormatJSON, LogFormatText:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides structured logging for the ApkScope service
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	startTime  time.Time
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = &LoggerConfig{
			Level:     "info",
			Format:    LogFormatText,
			OutputDir: "./logs",
			Colors:    true,
		}
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(l.config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			ForceColors:     l.config.Colors,
			DisableColors:   !l.config.Colors,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return l.setupFileOutput()
}

// setupFileOutput configures file-based logging alongside stdout
func (l *Logger) setupFileOutput() error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("apkscope_%s.log", timestamp)
	path := filepath.Join(l.config.OutputDir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileHandle = file
	l.logger.SetOutput(io.MultiWriter(os.Stdout, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   path,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Info("ApkScope logging system initialized")

	return nil
}

// Service-specific logging methods

// LogUpload logs a completed upload
func (l *Logger) LogUpload(filename string, size int64, duration time.Duration) {
	l.logger.WithFields(logrus.Fields{
		"filename": filename,
		"size":     size,
		"duration": duration,
	}).Info("Package uploaded")
}

// LogAnalysis logs a completed analysis
func (l *Logger) LogAnalysis(filename string, packageName string, permissions int, duration time.Duration) {
	l.logger.WithFields(logrus.Fields{
		"filename":    filename,
		"package":     packageName,
		"permissions": permissions,
		"duration":    duration,
	}).Info("Package analyzed")
}

// LogCleanupFailure logs a failed staged-file deletion. Cleanup failures are
// never escalated to callers, only recorded here.
func (l *Logger) LogCleanupFailure(path string, err error) {
	l.logger.WithFields(logrus.Fields{
		"path":  path,
		"error": err,
	}).Warning("Failed to remove staged file")
}

// LogRequest logs a handled HTTP request
func (l *Logger) LogRequest(requestID string, method string, path string, status int, duration time.Duration) {
	l.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     status,
		"duration":   duration,
	}).Info("Request handled")
}

// Close closes the logger and its log file
func (l *Logger) Close() error {
	if l.fileHandle != nil {
		return l.fileHandle.Close()
	}
	return nil
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warning(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}

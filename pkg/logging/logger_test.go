/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Tests logger creation, config
validation, file output, and the service-specific helper methods.
*/

package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/apkscope/pkg/logging"
)

// TestLoggerCreation tests logger creation with default and custom configs
func TestLoggerCreation(t *testing.T) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     "debug",
		Format:    logging.LogFormatJSON,
		OutputDir: "",
	})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	defer logger.Close()
}

// TestLoggerConfigValidation tests LoggerConfig.Validate
func TestLoggerConfigValidation(t *testing.T) {
	valid := &logging.LoggerConfig{Level: "info", Format: logging.LogFormatText}
	assert.NoError(t, valid.Validate())

	badFormat := &logging.LoggerConfig{Level: "info", Format: "xml"}
	assert.Error(t, badFormat.Validate())

	badLevel := &logging.LoggerConfig{Level: "loud", Format: logging.LogFormatText}
	assert.Error(t, badLevel.Validate())
}

// TestFileOutput tests that a log file is created under the output dir
func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     "info",
		Format:    logging.LogFormatText,
		OutputDir: dir,
	})
	require.NoError(t, err)
	defer logger.Close()

	logger.LogUpload("sample.apk", 1024, 5*time.Millisecond)
	logger.LogAnalysis("sample.apk", "com.example.sample", 3, 10*time.Millisecond)
	logger.LogCleanupFailure(filepath.Join(dir, "gone.apk"), os.ErrPermission)
	logger.LogRequest("req-1", "POST", "/api/upload", 200, time.Millisecond)

	files, err := filepath.Glob(filepath.Join(dir, "apkscope_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Package uploaded")
	assert.Contains(t, string(content), "com.example.sample")
	assert.Contains(t, string(content), "Failed to remove staged file")
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command for ApkScope. Validates configuration, staging
directory writability, and log directory writability before the service is
started. Useful for CI/CD and deployment validation.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kleascm/apkscope/pkg/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Perform built-in self-checks for system validation",
	Long: `Perform system checks to validate configuration sanity, staging directory
writability, and log directory writability before serving. Very useful for
CI/CD integration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("🔍 ApkScope - System Self-Check")
		fmt.Println("===============================")
		fmt.Println()

		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		checks := []struct {
			name     string
			function func(*config.Config) error
		}{
			{"Configuration Validation", checkConfiguration},
			{"Staging Directory", checkStagingDir},
			{"Log Directory", checkLogDir},
		}

		passed := 0
		total := len(checks)

		for _, check := range checks {
			fmt.Printf("🔍 %s... ", check.name)
			if err := check.function(cfg); err != nil {
				fmt.Printf("❌ FAILED: %v\n", err)
			} else {
				fmt.Println("✅ PASSED")
				passed++
			}
		}

		fmt.Println()
		fmt.Printf("📊 Results: %d/%d checks passed\n", passed, total)

		if passed == total {
			fmt.Println("✨ All checks passed! Service is ready to serve.")
			return nil
		}
		return fmt.Errorf("%d/%d checks failed", total-passed, total)
	},
}

func checkConfiguration(cfg *config.Config) error {
	return cfg.Validate()
}

func checkStagingDir(cfg *config.Config) error {
	return checkWritableDir(cfg.StagingDir)
}

func checkLogDir(cfg *config.Config) error {
	if cfg.LogDir == "" {
		return nil // file logging disabled
	}
	return checkWritableDir(cfg.LogDir)
}

// checkWritableDir verifies the directory exists (creating it if needed) and
// accepts a test file
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	probe := filepath.Join(dir, ".apkscope_check")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	return os.Remove(probe)
}

// Export CheckCmd for registration in main.go
var CheckCmd = checkCmd

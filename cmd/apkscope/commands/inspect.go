/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inspect.go
Description: CLI command for one-shot offline analysis of a local APK file.
Runs the same inspector and mitigation rule engine as the HTTP flow and prints
the result as JSON, without staging or deleting anything.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kleascm/apkscope/pkg/inspector"
	"github.com/kleascm/apkscope/pkg/mitigation"
)

var inspectAPK string

func init() {
	inspectCmd.Flags().StringVar(&inspectAPK, "apk", "", "Path to APK file (required)")
	inspectCmd.MarkFlagRequired("apk")
}

// inspectOutput mirrors the HTTP analyze response for local runs
type inspectOutput struct {
	AppName         string   `json:"app_name"`
	PackageName     string   `json:"package_name"`
	Permissions     []string `json:"permissions"`
	VersionName     string   `json:"version_name,omitempty"`
	VersionCode     int32    `json:"version_code,omitempty"`
	MinSDK          int32    `json:"min_sdk,omitempty"`
	TargetSDK       int32    `json:"target_sdk,omitempty"`
	SHA256          string   `json:"sha256,omitempty"`
	CertFingerprint string   `json:"certificate_sha256,omitempty"`
	Mitigations     []string `json:"mitigations"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Analyze a local APK file and print the permission risk summary",
	Long: `Analyze a local APK file without going through the HTTP service. Extracts the
manifest metadata and declared permissions, derives mitigation advisories, and
prints the result as JSON. The file is left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(inspectAPK); err != nil {
			return fmt.Errorf("cannot read APK: %w", err)
		}

		insp := inspector.NewAndroidBinaryInspector()
		report, err := insp.Inspect(inspectAPK)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		out := inspectOutput{
			AppName:         report.AppName,
			PackageName:     report.PackageName,
			Permissions:     report.Permissions,
			VersionName:     report.VersionName,
			VersionCode:     report.VersionCode,
			MinSDK:          report.MinSDK,
			TargetSDK:       report.TargetSDK,
			SHA256:          report.SHA256,
			CertFingerprint: report.CertFingerprint,
			Mitigations:     mitigation.For(report.Permissions),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// Export InspectCmd for registration in main.go
var InspectCmd = inspectCmd

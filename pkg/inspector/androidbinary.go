/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: androidbinary.go
Description: AndroidBinaryInspector. Implements the Inspector interface by wrapping
the shogo82148/androidbinary APK parser for manifest, label, and permission
extraction, with avast/apkverifier signature fingerprinting as enrichment.
*/

package inspector

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/avast/apkverifier"
	"github.com/shogo82148/androidbinary/apk"

	"github.com/kleascm/apkscope/pkg/interfaces"
)

// AndroidBinaryInspector implements interfaces.Inspector using the pure-Go
// androidbinary parser. No external tools (aapt, adb) are required.
type AndroidBinaryInspector struct {
	verifySignature bool
}

// NewAndroidBinaryInspector creates an inspector with signature
// fingerprinting enabled.
func NewAndroidBinaryInspector() *AndroidBinaryInspector {
	return &AndroidBinaryInspector{verifySignature: true}
}

// Inspect parses the package at path and returns its manifest-level
// metadata. Any parser failure, including panics on malformed binary
// resources, is reported as an AnalysisError.
func (i *AndroidBinaryInspector) Inspect(path string) (report *interfaces.Report, err error) {
	// The binary XML and resource-table decoders can panic on corrupt
	// input; a corrupt upload must surface as an analysis failure, not
	// kill the worker.
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = interfaces.NewAnalysisError("Failed to analyze package", fmt.Errorf("parser panic: %v", r))
		}
	}()

	digest, err := hashFile(path)
	if err != nil {
		return nil, interfaces.NewStorageError("Failed to read staged file", err)
	}

	pkg, err := apk.OpenFile(path)
	if err != nil {
		return nil, interfaces.NewAnalysisError("Failed to analyze package", err)
	}
	defer pkg.Close()

	manifest := pkg.Manifest()

	report = &interfaces.Report{
		PackageName: manifest.Package.MustString(),
		Permissions: []string{},
		SHA256:      digest,
	}

	for _, p := range manifest.UsesPermissions {
		if name, perr := p.Name.String(); perr == nil && name != "" {
			report.Permissions = append(report.Permissions, name)
		}
	}

	// Label resolution can fail on resource-only references; the app name
	// is allowed to be empty in that case.
	if label, lerr := pkg.Label(nil); lerr == nil {
		report.AppName = label
	}

	if v, verr := manifest.VersionName.String(); verr == nil {
		report.VersionName = v
	}
	if v, verr := manifest.VersionCode.Int32(); verr == nil {
		report.VersionCode = v
	}
	if v, verr := manifest.SDK.Min.Int32(); verr == nil {
		report.MinSDK = v
	}
	if v, verr := manifest.SDK.Target.Int32(); verr == nil {
		report.TargetSDK = v
	}

	if i.verifySignature {
		// Unsigned or oddly signed packages still get a report
		report.CertFingerprint = certFingerprint(path)
	}

	return report, nil
}

func (i *AndroidBinaryInspector) Name() string { return "AndroidBinaryInspector" }
func (i *AndroidBinaryInspector) Description() string {
	return "Extracts manifest metadata, permissions, and signing info from APK files"
}

// hashFile calculates the SHA256 digest of a file
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// certFingerprint returns the SHA256 fingerprint of the best signing
// certificate, or "" when verification fails.
func certFingerprint(path string) string {
	res, err := apkverifier.Verify(path, nil)
	if err != nil {
		return ""
	}
	_, cert := apkverifier.PickBestApkCert(res.SignerCerts)
	if cert == nil {
		return ""
	}
	sum := sha256.Sum256(cert.Raw)
	return hex.EncodeToString(sum[:])
}

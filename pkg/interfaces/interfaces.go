/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces and types for ApkScope. Defines the core data model
(staged files, inspection reports, analysis results) and the Inspector capability
interface used across all packages to break import cycles.
*/

package interfaces

import (
	"time"
)

// StagedFile identifies an uploaded package persisted in the staging
// directory and awaiting analysis. Staged files are transient: they do not
// survive process restarts and are deleted once analyzed.
type StagedFile struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// Report holds the metadata extracted from a package by an Inspector.
// AppName, PackageName, and Permissions are always populated on success;
// the remaining fields are enrichment and may be zero-valued when the
// inspector cannot determine them.
type Report struct {
	AppName         string
	PackageName     string
	Permissions     []string
	VersionName     string
	VersionCode     int32
	MinSDK          int32
	TargetSDK       int32
	SHA256          string
	CertFingerprint string
}

// Result represents the full outcome of analyzing a staged package:
// the inspector report plus the mitigation advisories derived from the
// declared permission set. Results are transient and never persisted.
type Result struct {
	Report      Report
	Mitigations []string
}

// Inspector is the capability interface toward the external static-analysis
// collaborator. Implementations parse the package at the given path and
// return its manifest-level metadata. Inspector internals (APK/DEX parsing)
// are opaque to the rest of the system.
type Inspector interface {
	Inspect(path string) (*Report, error)
	Name() string
	Description() string
}

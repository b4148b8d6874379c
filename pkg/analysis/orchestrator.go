/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: orchestrator.go
Description: Analysis orchestrator for ApkScope. Coordinates the single linear
analysis flow: resolve staged file, invoke the inspector, run the mitigation rule
engine, and delete the staged file on every exit path once its path is known.
*/

package analysis

import (
	"time"

	"github.com/kleascm/apkscope/pkg/interfaces"
	"github.com/kleascm/apkscope/pkg/logging"
	"github.com/kleascm/apkscope/pkg/mitigation"
	"github.com/kleascm/apkscope/pkg/storage"
)

// Orchestrator runs the analysis flow for staged packages. It owns the
// staged file's lifetime from resolution to deletion.
type Orchestrator struct {
	staging   *storage.Staging
	inspector interfaces.Inspector
	logger    *logging.Logger
}

// NewOrchestrator creates an orchestrator over the given staging area and
// inspector
func NewOrchestrator(staging *storage.Staging, inspector interfaces.Inspector, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		staging:   staging,
		inspector: inspector,
		logger:    logger,
	}
}

// Analyze resolves the staged file named by the caller, inspects it, and
// derives mitigation advisories from its permission set. The staged file is
// deleted exactly once per call, on success and on failure alike - but only
// after the path has actually been resolved, so a validation or not-found
// failure never triggers a cleanup of an unknown path. Cleanup failures are
// logged and never mask the primary result.
func (o *Orchestrator) Analyze(stagedName string) (*interfaces.Result, error) {
	start := time.Now()

	path, err := o.staging.Resolve(stagedName)
	if err != nil {
		return nil, err
	}
	// From here the staged file exists and must be released on every
	// exit path.
	defer o.cleanup(path)

	report, err := o.inspector.Inspect(path)
	if err != nil {
		if _, tagged := interfaces.KindOf(err); tagged {
			return nil, err
		}
		return nil, interfaces.NewAnalysisError("Failed to analyze package", err)
	}

	result := &interfaces.Result{
		Report:      *report,
		Mitigations: mitigation.For(report.Permissions),
	}

	if o.logger != nil {
		o.logger.LogAnalysis(stagedName, report.PackageName, len(report.Permissions), time.Since(start))
	}
	return result, nil
}

// cleanup deletes the staged file. Failure is logged, never escalated.
func (o *Orchestrator) cleanup(path string) {
	if err := o.staging.Remove(path); err != nil {
		if o.logger != nil {
			o.logger.LogCleanupFailure(path, err)
		}
	}
}

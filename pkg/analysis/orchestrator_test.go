/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: orchestrator_test.go
Description: Tests for the analysis orchestrator. Covers the success flow, the
not-found path, analysis failures, and the staged-file cleanup guarantee on both
success and failure paths.
*/

package analysis_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/apkscope/pkg/analysis"
	"github.com/kleascm/apkscope/pkg/interfaces"
	"github.com/kleascm/apkscope/pkg/mitigation"
	"github.com/kleascm/apkscope/pkg/storage"
)

// stubInspector implements interfaces.Inspector for orchestrator tests
type stubInspector struct {
	report *interfaces.Report
	err    error
	calls  int
}

func (s *stubInspector) Inspect(path string) (*interfaces.Report, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubInspector) Name() string        { return "StubInspector" }
func (s *stubInspector) Description() string { return "Canned reports for tests" }

func stageFile(t *testing.T, staging *storage.Staging, name string) string {
	t.Helper()
	_, err := staging.Save(bytes.NewReader([]byte("not a real apk")), name)
	require.NoError(t, err)
	path, err := staging.Resolve(name)
	require.NoError(t, err)
	return path
}

// TestAnalyzeSuccess tests the full success flow including cleanup
func TestAnalyzeSuccess(t *testing.T) {
	staging, err := storage.NewStaging(t.TempDir(), 1024)
	require.NoError(t, err)
	path := stageFile(t, staging, "sample.apk")

	insp := &stubInspector{report: &interfaces.Report{
		AppName:     "Sample",
		PackageName: "com.example.sample",
		Permissions: []string{"android.permission.INTERNET"},
	}}
	orch := analysis.NewOrchestrator(staging, insp, nil)

	result, err := orch.Analyze("sample.apk")
	require.NoError(t, err)
	assert.Equal(t, "com.example.sample", result.Report.PackageName)
	assert.Equal(t, []string{"Ensure secure transmission with HTTPS."}, result.Mitigations)
	assert.Equal(t, 1, insp.calls)

	// Staged file is deleted after a successful analysis
	assert.NoFileExists(t, path)
}

// TestAnalyzeFailureStillCleansUp tests that a failed analysis deletes the
// staged file and surfaces an AnalysisError
func TestAnalyzeFailureStillCleansUp(t *testing.T) {
	staging, err := storage.NewStaging(t.TempDir(), 1024)
	require.NoError(t, err)
	path := stageFile(t, staging, "corrupt.apk")

	insp := &stubInspector{err: errors.New("zip: not a valid zip file")}
	orch := analysis.NewOrchestrator(staging, insp, nil)

	_, err = orch.Analyze("corrupt.apk")
	require.Error(t, err)
	kind, ok := interfaces.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, interfaces.KindAnalysis, kind)

	assert.NoFileExists(t, path)
}

// TestAnalyzeTaggedInspectorError tests that taxonomy errors from the
// inspector pass through without re-wrapping
func TestAnalyzeTaggedInspectorError(t *testing.T) {
	staging, err := storage.NewStaging(t.TempDir(), 1024)
	require.NoError(t, err)
	stageFile(t, staging, "tagged.apk")

	tagged := interfaces.NewAnalysisError("Failed to analyze package", errors.New("bad manifest"))
	insp := &stubInspector{err: tagged}
	orch := analysis.NewOrchestrator(staging, insp, nil)

	_, err = orch.Analyze("tagged.apk")
	require.Error(t, err)
	assert.Equal(t, "Failed to analyze package", interfaces.PublicMessage(err))
}

// TestAnalyzeNotFound tests that a missing staged file fails cleanly before
// any cleanup or inspection
func TestAnalyzeNotFound(t *testing.T) {
	staging, err := storage.NewStaging(t.TempDir(), 1024)
	require.NoError(t, err)

	insp := &stubInspector{}
	orch := analysis.NewOrchestrator(staging, insp, nil)

	_, err = orch.Analyze("missing.apk")
	require.Error(t, err)
	kind, ok := interfaces.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, interfaces.KindNotFound, kind)
	assert.Equal(t, 0, insp.calls, "inspector must not run when resolution fails")
}

// TestAnalyzeEmptyPermissions tests that a permissionless package yields the
// default advisory
func TestAnalyzeEmptyPermissions(t *testing.T) {
	staging, err := storage.NewStaging(t.TempDir(), 1024)
	require.NoError(t, err)
	stageFile(t, staging, "bare.apk")

	insp := &stubInspector{report: &interfaces.Report{
		PackageName: "com.example.bare",
		Permissions: []string{},
	}}
	orch := analysis.NewOrchestrator(staging, insp, nil)

	result, err := orch.Analyze("bare.apk")
	require.NoError(t, err)
	assert.Equal(t, []string{mitigation.DefaultAdvisory}, result.Mitigations)
}

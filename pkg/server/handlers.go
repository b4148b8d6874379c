/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: handlers.go
Description: HTTP handlers for ApkScope. Implements the upload and analyze
endpoints, converting taxonomy errors to JSON error bodies with the right status
codes. Uploads stream straight from the multipart reader into the staging area.
*/

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/kleascm/apkscope/pkg/interfaces"
)

// filePartName is the multipart form field carrying the package
const filePartName = "apk_file"

// uploadResponse is the success body for /api/upload
type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// analyzeRequest is the JSON body for /api/analyze
type analyzeRequest struct {
	Filename string `json:"filename"`
}

// analysisPayload is the "analysis" object in the analyze response.
// AppName, PackageName, and Permissions follow the upstream contract; the
// remaining fields are enrichment from the inspector.
type analysisPayload struct {
	AppName         string   `json:"app_name"`
	PackageName     string   `json:"package_name"`
	Permissions     []string `json:"permissions"`
	VersionName     string   `json:"version_name,omitempty"`
	VersionCode     int32    `json:"version_code,omitempty"`
	MinSDK          int32    `json:"min_sdk,omitempty"`
	TargetSDK       int32    `json:"target_sdk,omitempty"`
	SHA256          string   `json:"sha256,omitempty"`
	CertFingerprint string   `json:"certificate_sha256,omitempty"`
}

// analyzeResponse is the success body for /api/analyze
type analyzeResponse struct {
	Analysis    analysisPayload `json:"analysis"`
	Permissions []string        `json:"permissions"`
	Mitigations []string        `json:"mitigations"`
}

// handleUpload accepts a multipart form with an apk_file part and streams it
// into the staging area
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mr, err := r.MultipartReader()
	if err != nil {
		s.writeError(w, interfaces.NewValidationError("No file provided"))
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.writeError(w, interfaces.NewValidationError("Malformed multipart request"))
			return
		}
		if part.FormName() != filePartName {
			part.Close()
			continue
		}

		staged, err := s.staging.Save(part, part.FileName())
		part.Close()
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.logger.LogUpload(staged.Name, staged.Size, time.Since(start))
		s.writeJSON(w, http.StatusOK, uploadResponse{
			Message:  "File uploaded successfully",
			Filename: staged.Name,
		})
		return
	}

	s.writeError(w, interfaces.NewValidationError("No file provided"))
}

// handleAnalyze runs the analysis flow for a previously uploaded file
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		s.writeError(w, interfaces.NewValidationError("No filename provided"))
		return
	}

	result, err := s.orchestrator.Analyze(req.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	permissions := result.Report.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	s.writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis: analysisPayload{
			AppName:         result.Report.AppName,
			PackageName:     result.Report.PackageName,
			Permissions:     permissions,
			VersionName:     result.Report.VersionName,
			VersionCode:     result.Report.VersionCode,
			MinSDK:          result.Report.MinSDK,
			TargetSDK:       result.Report.TargetSDK,
			SHA256:          result.Report.SHA256,
			CertFingerprint: result.Report.CertFingerprint,
		},
		Permissions: permissions,
		Mitigations: result.Mitigations,
	})
}

// handleHealth reports process liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", map[string]interface{}{"error": err})
	}
}

// writeError maps a taxonomy error to its HTTP status and JSON error body
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if kind, ok := interfaces.KindOf(err); ok {
		status = statusFor(kind)
	}
	s.writeJSON(w, status, map[string]string{"error": interfaces.PublicMessage(err)})
}

// statusFor maps error kinds to HTTP status codes
func statusFor(kind interfaces.ErrorKind) int {
	switch kind {
	case interfaces.KindValidation:
		return http.StatusBadRequest
	case interfaces.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case interfaces.KindNotFound:
		return http.StatusNotFound
	case interfaces.KindStorage, interfaces.KindAnalysis:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

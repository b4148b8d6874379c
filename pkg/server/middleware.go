/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: middleware.go
Description: HTTP middleware for ApkScope. Attaches a request ID to every request
and logs method, path, status, and duration once the handler completes.
*/

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the generated request ID back to the caller
const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging wraps a handler with request ID generation and access
// logging
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.LogRequest(requestID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

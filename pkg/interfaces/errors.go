/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Tagged error taxonomy for ApkScope. Every failure surfaced to a caller
carries an ErrorKind so the request boundary can map it to the right HTTP status
without string matching. Supports errors.As and %w wrapping.
*/

package interfaces

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure
type ErrorKind int

const (
	// KindValidation indicates bad or missing caller input (400)
	KindValidation ErrorKind = iota
	// KindTooLarge indicates the upload exceeded the configured ceiling (413)
	KindTooLarge
	// KindNotFound indicates no staged file exists under the given name (404)
	KindNotFound
	// KindStorage indicates a filesystem failure writing or deleting (500)
	KindStorage
	// KindAnalysis indicates the inspector failed to parse the package (500)
	KindAnalysis
)

// String returns a human-readable name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTooLarge:
		return "too_large"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindAnalysis:
		return "analysis"
	default:
		return "unknown"
	}
}

// ServiceError is the tagged error type used across ApkScope. Message is
// safe to return to the caller; Err carries the underlying cause, if any.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

// NewTooLargeError creates a PayloadTooLarge error for the given ceiling
func NewTooLargeError(limit int64) *ServiceError {
	return &ServiceError{Kind: KindTooLarge, Message: fmt.Sprintf("file exceeds maximum upload size of %d bytes", limit)}
}

// NewNotFoundError creates a NotFound error
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

// NewStorageError creates a StorageError wrapping the filesystem cause
func NewStorageError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: message, Err: err}
}

// NewAnalysisError creates an AnalysisError wrapping the inspector cause
func NewAnalysisError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindAnalysis, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from an error chain. The second return is
// false when the error is not a ServiceError anywhere in its chain.
func KindOf(err error) (ErrorKind, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// PublicMessage returns the caller-safe message from an error chain, or the
// plain Error() string when the error carries no taxonomy.
func PublicMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

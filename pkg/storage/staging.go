/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: staging.go
Description: Staging area for uploaded packages. Validates declared filenames,
sanitizes them against path traversal, and streams upload bodies to disk in fixed
8KB chunks so peak memory stays bounded regardless of file size.
*/

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kleascm/apkscope/pkg/interfaces"
)

const (
	// chunkSize is the fixed buffer used when streaming uploads to disk
	chunkSize = 8192 // 8KB

	// PackageExtension is the only accepted upload extension
	PackageExtension = ".apk"
)

// Staging manages the transient directory holding uploaded packages between
// upload and analysis. Concurrent saves under distinct sanitized names do not
// conflict; identical names are last-write-wins.
type Staging struct {
	dir     string
	maxSize int64
}

// NewStaging creates a staging area rooted at dir, creating the directory
// if needed. maxSize is the upload ceiling in bytes.
func NewStaging(dir string, maxSize int64) (*Staging, error) {
	if dir == "" {
		return nil, fmt.Errorf("staging directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Staging{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the staging directory path
func (s *Staging) Dir() string {
	return s.dir
}

// SanitizeName reduces a client-supplied filename to a safe on-disk name.
// Directory components are stripped, and every character outside
// [A-Za-z0-9._-] is replaced with an underscore. Returns "" when nothing
// safe remains (empty input, bare dots, absolute paths with no basename).
func SanitizeName(name string) string {
	// Windows clients send backslash separators
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	// A name of nothing but dots would still resolve oddly on some
	// filesystems; treat it as empty.
	if strings.Trim(out, ".") == "" {
		return ""
	}
	return out
}

// Save validates the declared name and streams r into the staging directory
// under the sanitized name. An existing file with the same sanitized name is
// overwritten. Errors carry the service taxonomy: validation failures for bad
// names, KindTooLarge past the ceiling, KindStorage for filesystem failures.
func (s *Staging) Save(r io.Reader, declaredName string) (*interfaces.StagedFile, error) {
	if declaredName == "" {
		return nil, interfaces.NewValidationError("No file selected")
	}
	if !strings.HasSuffix(declaredName, PackageExtension) {
		return nil, interfaces.NewValidationError("Invalid file type. Please upload an APK file")
	}

	name := SanitizeName(declaredName)
	if name == "" {
		return nil, interfaces.NewValidationError("Invalid filename")
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, interfaces.NewStorageError("Failed to create staged file", err)
	}

	written, err := s.copyBounded(f, r)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = interfaces.NewStorageError("Failed to finalize staged file", cerr)
	}
	if err != nil {
		// Best-effort removal of the partial file
		os.Remove(path)
		return nil, err
	}

	return &interfaces.StagedFile{
		Name:      name,
		Size:      written,
		CreatedAt: time.Now(),
	}, nil
}

// copyBounded copies r into w in fixed-size chunks, failing once the total
// exceeds the configured ceiling.
func (s *Staging) copyBounded(w io.Writer, r io.Reader) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if s.maxSize > 0 && total > s.maxSize {
				return total, interfaces.NewTooLargeError(s.maxSize)
			}
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, interfaces.NewStorageError("Failed to write staged file", werr)
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, interfaces.NewStorageError("Failed to read upload stream", rerr)
		}
	}
}

// Resolve re-sanitizes a client-supplied name and returns the absolute path
// of the staged file, or KindNotFound when no such file exists. Names are
// never trusted as path components without re-sanitizing here.
func (s *Staging) Resolve(name string) (string, error) {
	clean := SanitizeName(name)
	if clean == "" {
		return "", interfaces.NewValidationError("Invalid filename")
	}
	path := filepath.Join(s.dir, clean)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", interfaces.NewNotFoundError("File not found")
		}
		return "", interfaces.NewStorageError("Failed to stat staged file", err)
	}
	if info.IsDir() {
		return "", interfaces.NewNotFoundError("File not found")
	}
	return path, nil
}

// Remove deletes a staged file by resolved path. A missing file is a no-op
// so double-deletes on retry are tolerated.
func (s *Staging) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return interfaces.NewStorageError("Failed to remove staged file", err)
	}
	return nil
}

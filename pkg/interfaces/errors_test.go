/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors_test.go
Description: Tests for the tagged error taxonomy. Covers kind extraction through
wrapped chains and caller-safe message selection.
*/

package interfaces_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/apkscope/pkg/interfaces"
)

// TestKindOf tests kind extraction, including through %w wrapping
func TestKindOf(t *testing.T) {
	err := interfaces.NewNotFoundError("File not found")
	kind, ok := interfaces.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, interfaces.KindNotFound, kind)

	wrapped := fmt.Errorf("analyze failed: %w", err)
	kind, ok = interfaces.KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, interfaces.KindNotFound, kind)

	_, ok = interfaces.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

// TestPublicMessage tests that callers see the safe message, not the cause
func TestPublicMessage(t *testing.T) {
	cause := errors.New("open /secret/path: permission denied")
	err := interfaces.NewStorageError("Failed to create staged file", cause)

	assert.Equal(t, "Failed to create staged file", interfaces.PublicMessage(err))
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
}

// TestKindStrings tests the human-readable kind names
func TestKindStrings(t *testing.T) {
	assert.Equal(t, "validation", interfaces.KindValidation.String())
	assert.Equal(t, "too_large", interfaces.KindTooLarge.String())
	assert.Equal(t, "not_found", interfaces.KindNotFound.String())
	assert.Equal(t, "storage", interfaces.KindStorage.String())
	assert.Equal(t, "analysis", interfaces.KindAnalysis.String())
}

package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTesseract_MissingBinary(t *testing.T) {
	_, err := NewTesseract(filepath.Join(t.TempDir(), "no-such-binary"))
	require.Error(t, err)
}

func TestTesseract_UsesConfiguredCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-ocr")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'electricity invoice'\n"), 0o755))

	rec, err := NewTesseract(script)
	require.NoError(t, err)

	text, err := rec.Recognize(context.Background(), "any.jpg")
	require.NoError(t, err)
	assert.Equal(t, "electricity invoice", text)
}

func TestDisabled_ReturnsNothing(t *testing.T) {
	text, err := Disabled{}.Recognize(context.Background(), "any.jpg")
	require.NoError(t, err)
	assert.Empty(t, text)
}

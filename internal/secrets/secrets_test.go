// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestLoad_ReadsKnownKeyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyClientID), []byte("my-id\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyClientSecret), []byte("  my-secret  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyGeminiAPIKey), []byte("gk-123"), 0o600))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		KeyClientID:     "my-id",
		KeyClientSecret: "my-secret",
		KeyGeminiAPIKey: "gk-123",
	}, secrets)
}

func TestLoad_PartialKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyClientID), []byte("my-id"), 0o600))

	secrets, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyClientID: "my-id"}, secrets)
}

func TestLoad_IgnoresUnknownAndEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "random-note"), []byte("not a secret"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyGeminiAPIKey), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyClientID), []byte("my-id"), 0o600))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{KeyClientID: "my-id"}, secrets)
}

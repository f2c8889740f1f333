// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the proxy's credentials from a directory of
// plain-text files, one secret per file. Only the known key files are
// read; anything else in the directory is ignored. Environment variables
// take precedence over secret files.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key files recognized in the secrets directory.
const (
	KeyClientID     = "piste-client-id"
	KeyClientSecret = "piste-client-secret"
	KeyGeminiAPIKey = "gemini-api-key"
)

var knownKeys = []string{KeyClientID, KeyClientSecret, KeyGeminiAPIKey}

// Load reads the known key files from dir and returns a map of key name to
// trimmed contents. A missing directory or missing key files are not
// errors; Load returns whatever was found. An unreadable key file produces
// a warning on stderr but does not abort.
func Load(dir string) (map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, key := range knownKeys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", key, err)
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[key] = value
		}
	}

	return secrets, nil
}

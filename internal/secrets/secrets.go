// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the Anthropic API key from a plain-text file in the
// secrets directory.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// keyFile is the only secret this tool reads.
const keyFile = "anthropic-api-key"

// AnthropicKey reads the key file in dir and returns its trimmed contents.
// A missing directory or file is not an error: the empty string means no
// credentials are configured, and the conversion then uses the fallback
// frontmatter instead of calling the API.
func AnthropicKey(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, keyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", keyFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

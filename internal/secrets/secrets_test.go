// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicKey(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  string
	}{
		{
			name: "reads the key file and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeKey(t, dir, "  sk-ant-abc123  \n")
				return dir
			},
			want: "sk-ant-abc123",
		},
		{
			name: "returns empty for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: "",
		},
		{
			name: "returns empty when the key file is absent",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: "",
		},
		{
			name: "returns empty for a whitespace-only file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeKey(t, dir, "   \n\t  ")
				return dir
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := AnthropicKey(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnthropicKeyUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "anthropic-api-key")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(path, 0o644) })

	_, err := AnthropicKey(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic-api-key")
}

func writeKey(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anthropic-api-key"), []byte(content), 0o644))
}

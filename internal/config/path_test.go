package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("KYOTEI_TEST_DIR", "/var/data")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "empty path",
			path:     "",
			expected: "",
		},
		{
			name:     "tilde prefix",
			path:     "~/races/history.db",
			expected: filepath.Join(home, "races/history.db"),
		},
		{
			name:     "bare tilde",
			path:     "~",
			expected: home,
		},
		{
			name:     "environment variable",
			path:     "$KYOTEI_TEST_DIR/history.db",
			expected: "/var/data/history.db",
		},
		{
			name:     "absolute path unchanged",
			path:     "/tmp/history.db",
			expected: "/tmp/history.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.path))
		})
	}
}

func TestDefaultHistoryPath(t *testing.T) {
	path := DefaultHistoryPath()

	assert.True(t, strings.HasSuffix(path, filepath.Join("kyotei", "history.db")))
	assert.False(t, strings.HasPrefix(path, "~"))
}

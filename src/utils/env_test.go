package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnvironmentVariables(t *testing.T) {
	t.Run("loads the file for the go env", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("PRICER_TEST_VALUE=from-file\n"), 0o600))
		t.Setenv("PRICER_TEST_VALUE", "")
		os.Unsetenv("PRICER_TEST_VALUE")

		require.NoError(t, InitEnvironmentVariables(dir, "test"))

		value, err := GetEnv("PRICER_TEST_VALUE")
		require.NoError(t, err)
		assert.Equal(t, "from-file", value)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, InitEnvironmentVariables(t.TempDir(), "production"))
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PRICER_PRESENT", "yes")

	value, err := GetEnv("PRICER_PRESENT")
	require.NoError(t, err)
	assert.Equal(t, "yes", value)

	_, err = GetEnv("PRICER_DEFINITELY_MISSING")
	assert.Error(t, err)

	assert.Equal(t, "fallback", GetEnvOrDefault("PRICER_DEFINITELY_MISSING", "fallback"))
}

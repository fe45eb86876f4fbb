package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZ_TEST_FROM_FILE=file\nQUIZ_TEST_PRESET=file\n"), 0o600))

	t.Setenv("QUIZ_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("QUIZ_TEST_FROM_FILE") })

	require.NoError(t, loadEnv(path))
	assert.Equal(t, "file", os.Getenv("QUIZ_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("QUIZ_TEST_PRESET"), "existing variables win")
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, loadEnv(filepath.Join(t.TempDir(), "nope.env")))
	assert.NoError(t, loadEnv(""))
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg"))

	newCmd := func(flag string) *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("db", flag, "")
		return c
	}

	got, err := resolveDBPath(newCmd(""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "xdg", "quizmaster", "quizmaster.db"), got)
	assert.DirExists(t, filepath.Dir(got))

	t.Setenv("QUIZ_DB", filepath.Join(dir, "env", "q.db"))
	got, err = resolveDBPath(newCmd(""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "q.db"), got)

	got, err = resolveDBPath(newCmd(filepath.Join(dir, "flag", "q.db")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flag", "q.db"), got, "--db wins over QUIZ_DB")
	assert.DirExists(t, filepath.Join(dir, "flag"))
}

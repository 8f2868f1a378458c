package clientconfig_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicore-io/minicore/pkg/clientconfig"
	"github.com/minicore-io/minicore/pkg/coreerrors"
)

func writeConfig(t *testing.T, dir, contents string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, clientconfig.DefaultFileName)
	err := os.WriteFile(path, []byte(contents), perm)
	require.NoError(t, err)

	return path
}

func TestParse(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `
common:
  log_level: debug
  log_format: json
  disable_loader: true
  lib_dirs:
    - /opt/minicore/lib
`, 0o600)

	cfg, err := clientconfig.Parse(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Common)

	assert.Equal(t, "debug", cfg.Common.LogLevel)
	assert.Equal(t, "json", cfg.Common.LogFormat)
	assert.True(t, cfg.Common.DisableLoader)
	assert.Equal(t, []string{"/opt/minicore/lib"}, cfg.Common.LibDirs)
}

func TestParseEmptyCommon(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "{}\n", 0o600)

	cfg, err := clientconfig.Parse(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Common)
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := clientconfig.Parse(filepath.Join(t.TempDir(), clientconfig.DefaultFileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerrors.ErrFileNotFound)
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "common: [\n", 0o600)

	_, err := clientconfig.Parse(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerrors.ErrYAMLUnmarshal)
}

func TestParseRejectsOpenPermissions(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	path := writeConfig(t, t.TempDir(), "common: {}\n", 0o666)

	_, err := clientconfig.Parse(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerrors.ErrFilePermissions)
}

func TestGetExplicitPath(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "common:\n  log_level: warn\n", 0o600)

	cfg, gotPath, err := clientconfig.Get(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, "warn", cfg.Common.LogLevel)
}

func TestGetEnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "common:\n  log_format: text\n", 0o600)
	t.Setenv(clientconfig.EnvConfigFile, path)

	cfg, gotPath, err := clientconfig.Get("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, "text", cfg.Common.LogFormat)
}

func TestGetMissingFileIsNil(t *testing.T) {
	t.Setenv(clientconfig.EnvConfigFile, "")
	t.Chdir(t.TempDir())

	cfg, gotPath, err := clientconfig.Get("")
	require.NoError(t, err)

	assert.Nil(t, cfg)
	assert.Empty(t, gotPath)
}

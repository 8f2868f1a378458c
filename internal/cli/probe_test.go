package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicore-io/minicore/internal/cli"
	"github.com/minicore-io/minicore/pkg/coreerrors"
)

func TestProbeCmdMissingLibrary(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	tc := cli.NewRootCmd("test_probe", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"probe"})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe")
}

func TestProbeCmdDisabledByConfig(t *testing.T) {
	dir := t.TempDir()

	libPath := filepath.Join(dir, "libminicore.so")
	err := os.WriteFile(libPath, []byte("bogus"), 0o600)
	require.NoError(t, err)

	t.Setenv("MINICORE_LIB_PATH", libPath)

	cfgPath := filepath.Join(dir, "minicore_config.yml")
	err = os.WriteFile(cfgPath, []byte("common:\n  disable_loader: true\n"), 0o600)
	require.NoError(t, err)

	tc := cli.NewRootCmd("test_probe", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"--config", cfgPath, "probe"})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err = tc.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerrors.ErrLoaderDisabled, "disable_loader must win over a resolvable library")
	assert.Empty(t, stdout.String())
}

func TestProbeCmdZeroConcurrency(t *testing.T) {
	dir := t.TempDir()

	done := make(chan error, 1)

	go func() {
		tc := cli.NewRootCmd("test_probe", "", "")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		tc.SetArgs([]string{"probe", "--concurrency", "0", filepath.Join(dir, "missing.so")})
		tc.SetOut(stdout)
		tc.SetErr(stderr)

		done <- tc.Execute()
	}()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("probe must not hang when concurrency is zero")
	}
}

func TestProbeCmdInvalidPaths(t *testing.T) {
	dir := t.TempDir()

	libPath := filepath.Join(dir, "libminicore.so")
	err := os.WriteFile(libPath, []byte("bogus"), 0o600)
	require.NoError(t, err)

	tc := cli.NewRootCmd("test_probe", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"probe", libPath, filepath.Join(dir, "missing.so")})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err = tc.Execute()
	require.Error(t, err)
	assert.Empty(t, stdout.String())
}

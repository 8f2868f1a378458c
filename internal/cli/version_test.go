package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicore-io/minicore/internal/cli"
)

func TestVersionCmd(t *testing.T) {
	tc := cli.NewRootCmd("test_version", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"version"})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", strings.TrimSpace(stdout.String()))
	assert.Empty(t, stderr.String())
}

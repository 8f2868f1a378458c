package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/minicore-io/minicore/internal/cli"
)

const (
	cmdName = "minicore"

	shortDesc = "The minicore Command Line Interface (CLI)."
	longDesc  = `The minicore Command Line Interface (CLI).

Minicore is a tiny native core that exposes its build version over a stable
C ABI. This CLI reports the version built into the binary, probes core
shared libraries on disk for the version they report, and shows the
resolved client configuration.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}

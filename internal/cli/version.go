package cli

import (
	"github.com/spf13/cobra"

	"github.com/minicore-io/minicore/pkg/version"
)

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the full version of the core",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(version.FullVersion())
		},
	}
}

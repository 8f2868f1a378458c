package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

// NewConfigCmd returns the config command, which prints the resolved
// client configuration.
func NewConfigCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved client configuration",
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg := args.GetConfig()
			if cfg == nil {
				cc.Println("no client configuration file found")

				return nil
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("%w: %w", coreerrors.ErrYAMLMarshal, err)
			}

			cc.Print(string(out))

			return nil
		},
	}
}

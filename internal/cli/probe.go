package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/minicore-io/minicore/pkg/loader"
)

// NewProbeCmd returns the probe command, which loads one or more core
// libraries and prints the version each one reports.
func NewProbeCmd(args *RootArgs) *cobra.Command {
	probeArgs := struct {
		concurrency int
	}{}

	cmd := &cobra.Command{
		Use:   "probe [path]...",
		Short: "Load core libraries and print their reported versions",
		Long: `Load one or more core shared libraries (or compressed artifacts) and print
the full version each one reports. With no arguments, the library is
discovered from MINICORE_LIB_PATH and the platform search directories.`,
		RunE: func(cc *cobra.Command, paths []string) error {
			var (
				extraDirs []string
				disabled  bool
			)

			if cfg := args.GetConfig(); cfg != nil && cfg.Common != nil {
				extraDirs = cfg.Common.LibDirs
				disabled = cfg.Common.DisableLoader
			}

			l := loader.New(loader.WithExtraDirs(extraDirs...), loader.WithDisabled(disabled))

			if len(paths) == 0 {
				v, err := l.Load(cc.Context()).FullVersion()
				if err != nil {
					return fmt.Errorf("probe: %w", err)
				}

				cc.Println(v)

				return nil
			}

			versions := make([]string, len(paths))

			g, ctx := errgroup.WithContext(cc.Context())

			// SetLimit(0) would admit no goroutines at all; values < 1 mean
			// unlimited instead.
			if probeArgs.concurrency > 0 {
				g.SetLimit(probeArgs.concurrency)
			}

			for i, path := range paths {
				g.Go(func() error {
					v, err := l.LoadPath(ctx, path).FullVersion()
					if err != nil {
						return fmt.Errorf("probe %s: %w", path, err)
					}

					versions[i] = v

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			for i, path := range paths {
				cc.Printf("%s: %s\n", path, versions[i])
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&probeArgs.concurrency, "concurrency", 4, "Maximum number of libraries probed concurrently")

	return cmd
}

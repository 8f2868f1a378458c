package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/minicore-io/minicore/pkg/clientconfig"
	"github.com/minicore-io/minicore/pkg/log"
	"github.com/minicore-io/minicore/pkg/version"
)

// ErrLogHandlerFailed indicates the log handler could not be constructed
// from the provided flags or client configuration.
var ErrLogHandlerFailed = errors.New("log handler failed")

// NewRootCmd returns the root command with logging and client
// configuration wired into every subcommand.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.FullVersion(),
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "", "Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().StringVar(args.configFile, "config", "", "Path to the client configuration file")

	err := cmd.MarkPersistentFlagFilename("config", "yml", "yaml")
	if err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		configFile, err := flags.GetString("config")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		cfg, cfgPath, err := clientconfig.Get(configFile)
		if err != nil {
			return fmt.Errorf("client config %s: %w", cfgPath, err)
		}

		args.config = cfg

		// Flags win over the client configuration.
		if cfg != nil && cfg.Common != nil {
			if logLevel == "" {
				logLevel = cfg.Common.LogLevel
			}

			if logFormat == "" {
				logFormat = cfg.Common.LogFormat
			}
		}

		if logLevel == "" {
			logLevel = "warn"
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go")

		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewProbeCmd(args))
	cmd.AddCommand(NewConfigCmd(args))

	return cmd
}

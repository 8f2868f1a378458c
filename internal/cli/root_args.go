package cli

import (
	"github.com/minicore-io/minicore/pkg/clientconfig"
)

// RootArgs holds flag targets and state shared across subcommands.
type RootArgs struct {
	config     *clientconfig.Config
	logLevel   *string
	logFormat  *string
	configFile *string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:   new(string),
		logFormat:  new(string),
		configFile: new(string),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfigFile() string {
	return *a.configFile
}

// GetConfig returns the client configuration resolved during
// PersistentPreRunE, or nil when no configuration file exists.
func (a *RootArgs) GetConfig() *clientconfig.Config {
	return a.config
}

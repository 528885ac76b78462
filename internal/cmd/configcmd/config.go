// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// envVars lists the environment variables that override the config file.
var envVars = []string{"WMX_MAX_DEPTH", "WMX_SYNTAX", "WMX_FORMAT", "WMX_LOG_LEVEL", "WMX_DISABLED_MACROS"}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage wmx configuration",
		Long:  `Commands for viewing, checking, and clearing wmx configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

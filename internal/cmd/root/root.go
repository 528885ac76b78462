// Package root provides the root command for the wmx CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/cmd/completion"
	"github.com/open-cli-collective/wikimacro/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/wikimacro/internal/cmd/init"
	"github.com/open-cli-collective/wikimacro/internal/cmd/macrocmd"
	"github.com/open-cli-collective/wikimacro/internal/cmd/rendercmd"
	"github.com/open-cli-collective/wikimacro/internal/version"
)

// NewCmdRoot creates the root command for wmx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wmx",
		Short: "Expand wiki macros and render the result",
		Long: `wmx parses wiki documents, executes the macros they contain until
none is left, and renders the expanded document.

Macros are written {{name param=value/}} or {{name}}content{{/name}}.
Macro output may contain further macros; expansion stops at a
configurable depth so recursive macros always terminate.

Get started by running: wmx render page.wiki`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/wmx/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "listing format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default from config)")

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(rendercmd.NewCmdRender())
	cmd.AddCommand(macrocmd.NewCmdMacro())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

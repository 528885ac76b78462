// Package macrocmd provides commands for inspecting the available macros.
package macrocmd

import (
	"github.com/spf13/cobra"
)

// NewCmdMacro creates the macro command.
func NewCmdMacro() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "macro",
		Aliases: []string{"macros"},
		Short:   "Inspect the available macros",
	}

	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdShow())

	return cmd
}

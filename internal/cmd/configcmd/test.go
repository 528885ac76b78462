package configcmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
	"github.com/open-cli-collective/wikimacro/pkg/macros"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration",
		Long: `Check that the configuration file and environment variables hold
valid values and that every disabled macro exists.`,
		Example: `  # Check configuration
  wmx config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.OutOrStdout(), config.ResolvePath(path), noColor)
		},
	}

	return cmd
}

func runTest(out io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Fprintf(out, "Checking %s...\n", configPath)

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		_, _ = red.Fprintln(out, "✗ Failed to load configuration:", err)
		return fmt.Errorf("failed to load config: %w (run 'wmx init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(out, "✗ Invalid configuration:", err)
		return fmt.Errorf("invalid config: %w (run 'wmx init' to configure)", err)
	}
	_, _ = green.Fprintln(out, "✓ Configuration is valid")

	var known []string
	for _, d := range macros.Builtins() {
		known = append(known, d.ID)
	}
	for _, id := range cfg.DisabledMacros {
		if !slices.Contains(known, id) {
			_, _ = yellow.Fprintf(out, "! Disabled macro %q does not exist\n", id)
		}
	}

	registry, err := macros.NewRegistry(cfg.DisabledMacros...)
	if err != nil {
		return err
	}
	_, _ = green.Fprintf(out, "✓ %d macros available\n", len(registry.Descriptors()))

	return nil
}

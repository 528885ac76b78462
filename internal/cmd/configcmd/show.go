package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective wmx configuration and where each value comes from.`,
		Example: `  # Show current config
  wmx config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), config.ResolvePath(path), noColor)
		},
	}

	return cmd
}

func runShow(out io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides, then defaults
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyDefaults()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(out, "%-16s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}
		fmt.Fprint(out, value)

		source := "default"
		switch {
		case os.Getenv(envVar) != "":
			source = envVar
		case fileValue != "":
			source = "config"
		}
		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	fileDepth := ""
	if fileCfg.MaxDepth != 0 {
		fileDepth = strconv.Itoa(fileCfg.MaxDepth)
	}
	printField("Max depth", strconv.Itoa(cfg.MaxDepth), fileDepth, "WMX_MAX_DEPTH")
	printField("Syntax", cfg.Syntax, fileCfg.Syntax, "WMX_SYNTAX")
	printField("Output format", cfg.OutputFormat, fileCfg.OutputFormat, "WMX_FORMAT")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, "WMX_LOG_LEVEL")
	printField("Disabled macros", strings.Join(cfg.DisabledMacros, ", "), strings.Join(fileCfg.DisabledMacros, ", "), "WMX_DISABLED_MACROS")

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}

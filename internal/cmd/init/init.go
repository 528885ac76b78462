// Package init provides the init command for wmx.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
	"github.com/open-cli-collective/wikimacro/internal/logging"
	"github.com/open-cli-collective/wikimacro/internal/view"
	"github.com/open-cli-collective/wikimacro/pkg/render"
)

// answers holds the raw form values before they become a config.
type answers struct {
	overwrite bool
	format    string
	maxDepth  string
	logLevel  string
	disabled  string
}

type initOptions struct {
	configPath string
	useDefault bool
	out        io.Writer

	// confirm and prompt fill answers; tests replace them.
	confirm func(path string, a *answers) error
	prompt  func(a *answers) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{
		confirm: confirmOverwrite,
		prompt:  runForm,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize wmx configuration",
		Long: `Initialize wmx with your preferred defaults.

This command will guide you through choosing the output format, the
maximum macro nesting depth, the log level, and macros to disable.
The configuration will be saved to ~/.config/wmx/config.yml.`,
		Example: `  # Interactive setup
  wmx init

  # Write the built-in defaults without prompting
  wmx init --defaults`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			opts.configPath = config.ResolvePath(path)
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.useDefault, "defaults", false, "Write default values without prompting")

	return cmd
}

func runInit(opts *initOptions) error {
	a := &answers{
		overwrite: true,
		format:    config.DefaultOutputFormat,
		logLevel:  config.DefaultLogLevel,
	}

	// Check if config already exists
	if _, err := os.Stat(opts.configPath); err == nil && !opts.useDefault {
		if err := opts.confirm(opts.configPath, a); err != nil {
			return err
		}
		if !a.overwrite {
			fmt.Fprintln(opts.out, "Initialization cancelled.")
			return nil
		}
	}

	if !opts.useDefault {
		if err := opts.prompt(a); err != nil {
			return err
		}
	}

	cfg, err := buildConfig(a)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	v := view.NewRenderer(view.FormatTable, false)
	v.SetWriter(opts.out)
	v.Success("Configuration saved to " + opts.configPath)
	fmt.Fprintln(opts.out, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.out, "  wmx macro list")
	fmt.Fprintln(opts.out, "  wmx render page.wiki")

	return nil
}

// buildConfig converts form answers into a validated config.
func buildConfig(a *answers) (*config.Config, error) {
	depth, err := parseDepth(a.maxDepth)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		MaxDepth:       depth,
		OutputFormat:   a.format,
		LogLevel:       a.logLevel,
		DisabledMacros: config.SplitList(a.disabled),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDepth accepts an empty string, meaning the built-in default.
func parseDepth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("max depth must be a positive number, got %q", s)
	}
	return n, nil
}

func validateDepth(s string) error {
	_, err := parseDepth(s)
	return err
}

func confirmOverwrite(path string, a *answers) error {
	return huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&a.overwrite).
		Run()
}

func runForm(a *answers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Format used by 'wmx render' when --format is not given").
				Options(huh.NewOptions(render.Formats()...)...).
				Value(&a.format),

			huh.NewInput().
				Title("Maximum depth (optional)").
				Description("How deeply macros may expand inside macro output").
				Placeholder("1000").
				Value(&a.maxDepth).
				Validate(validateDepth),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions(logging.Levels...)...).
				Value(&a.logLevel),

			huh.NewInput().
				Title("Disabled macros (optional)").
				Description("Comma separated macro ids, see 'wmx macro list'").
				Placeholder("html, markdown").
				Value(&a.disabled),
		),
	)

	return form.Run()
}

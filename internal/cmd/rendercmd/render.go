// Package rendercmd provides the render command.
package rendercmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
	"github.com/open-cli-collective/wikimacro/internal/logging"
	"github.com/open-cli-collective/wikimacro/internal/view"
	"github.com/open-cli-collective/wikimacro/pkg/macros"
	"github.com/open-cli-collective/wikimacro/pkg/render"
	"github.com/open-cli-collective/wikimacro/pkg/syntax"
	"github.com/open-cli-collective/wikimacro/pkg/transform"
	"github.com/open-cli-collective/wikimacro/pkg/wiki"
)

type renderOptions struct {
	configPath     string
	format         string
	syntax         string
	maxDepth       int
	preserveMacros bool
	strict         bool
	logLevel       string
	noColor        bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Expand the macros of a document and render it",
		Long: `Parse a wiki document, execute every macro it contains and write the
result in the requested format. The document is read from the given file,
or from stdin when no file (or "-") is given.

Macros that cannot be executed stay in the output as macro calls and are
listed on stderr. Use --strict to fail when that happens. Macros left at
the --max-depth limit are not failures: they stay in the output, are
logged at info level, and never fail --strict.`,
		Example: `  # Render a page as XHTML
  wmx render page.wiki

  # Show the event stream of the expanded document
  wmx render page.wiki --format event

  # Render back to wiki syntax, keeping the macro calls
  cat page.wiki | wmx render --format wiki --preserve-macros`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.logLevel, _ = cmd.Flags().GetString("log-level")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runRender(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: event, xhtml, wiki, markdown (default from config)")
	cmd.Flags().StringVar(&opts.syntax, "syntax", "", "syntax identifier handed to macros, e.g. xwiki/2.0")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum macro expansion depth (default from config)")
	cmd.Flags().BoolVar(&opts.preserveMacros, "preserve-macros", false, "write executed macros as macro calls (wiki format only)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when a macro could not be executed (depth limit excluded)")

	return cmd
}

// settings merges the configuration with the command line flags.
func (opts *renderOptions) settings() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.format != "" {
		cfg.OutputFormat = opts.format
	}
	if opts.syntax != "" {
		cfg.Syntax = opts.syntax
	}
	if opts.maxDepth != 0 {
		cfg.MaxDepth = opts.maxDepth
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func runRender(opts *renderOptions, args []string) error {
	cfg, err := opts.settings()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	syn, err := syntax.Parse(cfg.Syntax)
	if err != nil {
		return err
	}

	input, err := readInput(opts.stdin, args)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, "text", opts.stderr)

	registry, err := macros.NewRegistry(cfg.DisabledMacros...)
	if err != nil {
		return err
	}

	parsed := wiki.Parse(input)
	for _, w := range parsed.Warnings {
		logger.Warn("parse warning", "warning", w)
	}

	engine := transform.New(registry,
		transform.WithMaxDepth(cfg.MaxDepth),
		transform.WithLogger(logger))
	report, err := engine.Transform(parsed.Document, syn)
	if err != nil {
		return fmt.Errorf("failed to transform document: %w", err)
	}

	if err := render.Render(opts.stdout, format, parsed.Document, render.Options{PreserveMacros: opts.preserveMacros}); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	fmt.Fprintln(opts.stdout)

	for _, f := range report.Failures {
		if !f.IsError() {
			logger.Info("macro left unexpanded", "macro", f.MacroID, "reason", f.Kind.String(), "depth", f.Depth)
		}
	}

	if errs := report.Errors(); len(errs) > 0 {
		v := view.NewRenderer(view.FormatTable, opts.noColor)
		v.SetWriter(opts.stderr)
		for _, f := range errs {
			v.Warning(fmt.Sprintf("%s (%s): %v", f.MacroID, f.Kind, f.Err))
		}
		if opts.strict {
			return fmt.Errorf("%d macro(s) could not be executed", len(errs))
		}
	}

	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

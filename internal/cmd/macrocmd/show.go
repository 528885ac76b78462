package macrocmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
	"github.com/open-cli-collective/wikimacro/internal/view"
	"github.com/open-cli-collective/wikimacro/pkg/macros"
)

type showOptions struct {
	configPath string
	output     string
	noColor    bool
	out        io.Writer
}

type macroInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Inline      bool   `json:"inline"`
	Enabled     bool   `json:"enabled"`
}

// NewCmdShow creates the macro show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details of a macro",
		Example: `  # Show the toc macro
  wmx macro show toc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runShow(opts, args[0])
		},
	}

	return cmd
}

func runShow(opts *showOptions, id string) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Disabled macros are still described, so resolve against every builtin.
	registry, err := macros.NewRegistry()
	if err != nil {
		return err
	}
	d, err := registry.Resolve(id)
	if err != nil {
		return err
	}

	info := macroInfo{
		ID:          d.ID,
		Description: d.Description,
		Priority:    d.Priority,
		Inline:      d.SupportsInline,
		Enabled:     !slices.Contains(cfg.DisabledMacros, d.ID),
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out)

	if opts.output == string(view.FormatJSON) {
		return renderer.RenderJSON(info)
	}

	renderer.RenderKeyValue("ID", info.ID)
	renderer.RenderKeyValue("Description", info.Description)
	renderer.RenderKeyValue("Priority", strconv.Itoa(info.Priority))
	renderer.RenderKeyValue("Inline", yesNo(info.Inline))
	if !info.Enabled {
		renderer.Warning("disabled in configuration")
	}
	return nil
}

package macrocmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikimacro/internal/config"
	"github.com/open-cli-collective/wikimacro/internal/view"
	"github.com/open-cli-collective/wikimacro/pkg/macros"
)

// maxDescription bounds the description column of the table output.
const maxDescription = 50

type listOptions struct {
	configPath string
	output     string
	noColor    bool
	all        bool
	out        io.Writer
}

// NewCmdList creates the macro list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the builtin macros",
		Long: `List the builtin macros with their priority and whether they may be
used inside a paragraph. Macros disabled in the configuration are hidden
unless --all is given.`,
		Example: `  # List enabled macros
  wmx macro list

  # Include disabled macros, as JSON
  wmx macro list --all -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runList(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include disabled macros")

	return cmd
}

func runList(opts *listOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out)

	headers := []string{"ID", "PRIORITY", "INLINE", "STATUS", "DESCRIPTION"}
	var rows [][]string
	for _, d := range macros.Builtins() {
		description := d.Description
		if opts.output == "" || opts.output == string(view.FormatTable) {
			description = view.Truncate(description, maxDescription)
		}

		status := "enabled"
		if slices.Contains(cfg.DisabledMacros, d.ID) {
			if !opts.all {
				continue
			}
			status = "disabled"
		}
		rows = append(rows, []string{d.ID, strconv.Itoa(d.Priority), yesNo(d.SupportsInline), status, description})
	}
	slices.SortFunc(rows, func(a, b []string) int { return strings.Compare(a[0], b[0]) })

	renderer.RenderTable(headers, rows)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

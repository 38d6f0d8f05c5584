package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPlaceholderCmd creates the placeholder command, which expands a
// template the way field defaults are expanded.
func NewPlaceholderCmd(runner PlaceholderRunner) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:          "placeholder <template>",
		Short:        "Expand {{title}}, {{slug}}, date, and custom placeholders",
		Example:      `  fmx placeholder "{{year}}/{{slug}}" --title "Hello World"`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			out, err := runner.ResolvePlaceholder(cmd.Context(), args[0], title)
			if err != nil {
				return &ContextError{Op: "placeholder", Err: err}
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), map[string]string{"template": args[0], "value": out})
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title used for {{title}} and {{slug}}")

	return cmd
}

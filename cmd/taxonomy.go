package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTaxonomyCmd creates the taxonomy command. Without --set it lists the
// values that can be picked, current ones first.
func NewTaxonomyCmd(runner TaxonomyRunner) *cobra.Command {
	var values []string
	var remember bool

	cmd := &cobra.Command{
		Use:   "taxonomy <kind> <file>",
		Short: "List or set the tags, categories, or a custom taxonomy of a document",
		Example: `  fmx taxonomy tags content/post.md
  fmx taxonomy categories content/post.md --set news,go
  fmx taxonomy tags content/post.md --set draft-notes --remember`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			kind, path := args[0], args[1]

			if !cmd.Flags().Changed("set") {
				opts, err := runner.TaxonomyOptions(cmd.Context(), path, kind)
				if err != nil {
					return &ContextError{Op: "taxonomy", Path: path, Err: err}
				}
				if GetJSON() {
					writeJSON(cmd.OutOrStdout(), opts)
					return nil
				}
				for _, o := range opts {
					mark := " "
					if o.Picked {
						mark = "x"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", mark, o.Value)
				}
				return nil
			}

			result, err := runner.SetTaxonomy(cmd.Context(), path, kind, values, remember, !GetDryRun())
			if err != nil {
				return &ContextError{Op: "taxonomy", Path: path, Err: err}
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), result)
			} else {
				writeDocument(cmd.OutOrStdout(), "set "+kind+" in", &result.DocumentResult)
				for _, v := range result.Added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", v, kind)
				}
			}
			return noticeError(result.Notices)
		},
	}

	cmd.Flags().StringSliceVar(&values, "set", nil, "Replace the values with this comma-separated list")
	cmd.Flags().BoolVar(&remember, "remember", false, "Save values missing from the config to its vocabulary")

	return cmd
}

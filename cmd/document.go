package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNoSlug is returned when a path yields no slug.
var ErrNoSlug = errors.New("no slug can be derived from this path")

// printDocument writes r in the selected format and converts error
// notices into the command's error.
func printDocument(cmd *cobra.Command, verb string, r *DocumentResult) error {
	if GetJSON() {
		writeJSON(cmd.OutOrStdout(), r)
	} else {
		writeDocument(cmd.OutOrStdout(), verb, r)
	}
	return noticeError(r.Notices)
}

// NewDraftCmd creates the draft command.
func NewDraftCmd(runner DraftRunner) *cobra.Command {
	return &cobra.Command{
		Use:          "draft <file>",
		Short:        "Toggle the draft flag of a document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			result, err := runner.ToggleDraft(cmd.Context(), args[0], !GetDryRun())
			if err != nil {
				return &ContextError{Op: "draft", Path: args[0], Err: err}
			}
			return printDocument(cmd, "toggle draft in", result)
		},
	}
}

// NewDateCmd creates the date command. Without --field it sets every
// publish date field of the document's content type.
func NewDateCmd(runner DateRunner) *cobra.Command {
	var field string
	var force bool

	cmd := &cobra.Command{
		Use:          "date <file>",
		Short:        "Set the publish date of a document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}

			var result *DocumentResult
			var err error
			if field == "" {
				result, err = runner.SetDate(cmd.Context(), args[0], !GetDryRun())
			} else {
				result, err = runner.UpdateDate(cmd.Context(), args[0], field, force, !GetDryRun())
			}
			if err != nil {
				return &ContextError{Op: "date", Path: args[0], Err: err}
			}
			return printDocument(cmd, "set date in", result)
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "Date field to update instead of the publish date fields")
	cmd.Flags().BoolVar(&force, "force", false, "Add --field when the document lacks it")

	return cmd
}

// NewLastModCmd creates the lastmod command.
func NewLastModCmd(runner DateRunner) *cobra.Command {
	return &cobra.Command{
		Use:          "lastmod <file>",
		Short:        "Set the last modified date of a document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			result, err := runner.SetLastModified(cmd.Context(), args[0], !GetDryRun())
			if err != nil {
				return &ContextError{Op: "lastmod", Path: args[0], Err: err}
			}
			return printDocument(cmd, "set modified date in", result)
		},
	}
}

// NewPresaveCmd creates the presave command, the hook editors run before
// saving a document.
func NewPresaveCmd(runner PresaveRunner) *cobra.Command {
	return &cobra.Command{
		Use:          "presave <file>",
		Short:        "Run the pre-save hook on a document",
		Long:         "Refreshes the modified date of documents inside a content folder when auto_update_date is enabled.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			result, err := runner.WillSave(cmd.Context(), args[0], !GetDryRun())
			if err != nil {
				return &ContextError{Op: "presave", Path: args[0], Err: err}
			}
			return printDocument(cmd, "update", result)
		},
	}
}

// NewSlugCmd creates the slug command.
func NewSlugCmd(runner SlugRunner) *cobra.Command {
	var fromPath bool

	cmd := &cobra.Command{
		Use:          "slug <file>",
		Short:        "Derive the slug of a document from its title",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}

			if fromPath {
				s, ok, err := runner.SlugFromPath(cmd.Context(), args[0])
				if err != nil {
					return &ContextError{Op: "slug", Path: args[0], Err: err}
				}
				if !ok {
					return &ContextError{Op: "slug", Path: args[0], Err: ErrNoSlug}
				}
				if GetJSON() {
					writeJSON(cmd.OutOrStdout(), map[string]string{"path": args[0], "slug": s})
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			}

			result, err := runner.UpdateSlug(cmd.Context(), args[0], !GetDryRun())
			if err != nil {
				return &ContextError{Op: "slug", Path: args[0], Err: err}
			}

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), result)
			} else {
				writeDocument(cmd.OutOrStdout(), "set slug in", &result.DocumentResult)
				switch {
				case result.RenamedTo == "":
				case result.Planned:
					fmt.Fprintf(cmd.OutOrStdout(), "Would rename to %s\n", result.RenamedTo)
				case result.RenameError == "":
					fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", result.RenamedTo)
				}
			}

			if result.RenameError != "" {
				return &RenameError{Err: errors.New(result.RenameError)}
			}
			return noticeError(result.Notices)
		},
	}

	cmd.Flags().BoolVar(&fromPath, "from-path", false, "Print the slug derived from the file name instead")

	return cmd
}

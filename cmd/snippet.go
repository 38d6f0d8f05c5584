package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/snippet"
)

// NewSnippetCmd creates the snippet command group.
func NewSnippetCmd(runner SnippetRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "snippet",
		Short:        "Insert, edit, and store snippet blocks",
		SilenceUsage: true,
	}

	cmd.AddCommand(newSnippetListCmd(runner))
	cmd.AddCommand(newSnippetLocateCmd(runner))
	cmd.AddCommand(newSnippetInsertCmd(runner))
	cmd.AddCommand(newSnippetAddCmd(runner))
	cmd.AddCommand(newSnippetReplaceCmd(runner))

	return cmd
}

// cursorFlags binds the --line and --char flags of a cursor position.
func cursorFlags(cmd *cobra.Command, pos *domain.Position) {
	cmd.Flags().IntVarP(&pos.Line, "line", "l", 0, "Zero-based cursor line")
	cmd.Flags().IntVar(&pos.Character, "char", 0, "Zero-based cursor character (UTF-16 units)")
}

func newSnippetListCmd(runner SnippetRunner) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List stored snippets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			defs, err := runner.ListSnippets(cmd.Context())
			if err != nil {
				return err
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), defs)
				return nil
			}
			for _, d := range defs {
				if d.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", d.Title, d.Description)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), d.Title)
				}
			}
			return nil
		},
	}
}

func newSnippetLocateCmd(runner SnippetRunner) *cobra.Command {
	var pos domain.Position

	cmd := &cobra.Command{
		Use:          "locate <file>",
		Short:        "Find the snippet block around a cursor line",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			match, err := runner.LocateSnippet(cmd.Context(), args[0], domain.Range{Start: pos, End: pos})
			if err != nil {
				return &ContextError{Op: "snippet locate", Path: args[0], Err: err}
			}

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), map[string]any{"match": match})
				return nil
			}
			if match == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No snippet at line %d\n", pos.Line)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: lines %d-%d\n",
				snippetID(match), match.Range.Start.Line, match.Range.End.Line)
			return nil
		},
	}

	cursorFlags(cmd, &pos)

	return cmd
}

func snippetID(m *snippet.Match) string {
	if m.Info == nil || m.Info.ID == "" {
		return "(unnamed)"
	}
	return m.Info.ID
}

func newSnippetInsertCmd(runner SnippetRunner) *cobra.Command {
	var pos domain.Position
	var values map[string]string

	cmd := &cobra.Command{
		Use:   "insert <file> [title]",
		Short: "Insert a stored snippet, or re-render the block under the cursor",
		Example: `  fmx snippet insert content/post.md Figure --line 12 --value src=cat.png
  fmx snippet insert content/post.md --line 14 --value alt="A cat"`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			title := ""
			if len(args) == 2 {
				title = args[1]
			}

			result, err := runner.InsertSnippet(cmd.Context(), args[0], title, values,
				domain.Range{Start: pos, End: pos}, !GetDryRun())
			if err != nil {
				return &ContextError{Op: "snippet insert", Path: args[0], Err: err}
			}

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), result)
				return nil
			}
			verb := "insert snippet in"
			if result.Replaced {
				verb = "replace snippet in"
			}
			writeDocument(cmd.OutOrStdout(), verb, &result.DocumentResult)
			return nil
		},
	}

	cursorFlags(cmd, &pos)
	cmd.Flags().StringToStringVar(&values, "value", nil, "Snippet field value as name=value (repeatable)")

	return cmd
}

func newSnippetAddCmd(runner SnippetRunner) *cobra.Command {
	var description, body string
	var fields []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Store a new snippet in the config",
		Long: `Stores a snippet. Fields are referenced in the body as [[name]] and are
declared with --field name or --field name=default. Without --body the
body is read from stdin.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			if !cmd.Flags().Changed("body") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading body: %w", err)
				}
				body = strings.TrimRight(string(data), "\n")
			}

			def := snippet.Definition{Title: args[0], Description: description, Body: []string{body}}
			for _, f := range fields {
				name, dflt, _ := strings.Cut(f, "=")
				def.Fields = append(def.Fields, snippet.Field{Name: name, Default: dflt})
			}

			saved, err := runner.AddSnippet(cmd.Context(), def, !GetDryRun())
			if err != nil {
				return &ContextError{Op: "snippet add", Err: err}
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), saved)
			} else if GetDryRun() {
				fmt.Fprintf(cmd.OutOrStdout(), "Would add snippet %q\n", saved.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added snippet %q\n", saved.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Snippet description")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Snippet body")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Field as name or name=default (repeatable)")

	return cmd
}

func newSnippetReplaceCmd(runner SnippetRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "replace [file]",
		Short: "Replace all stored snippets",
		Long: `Replaces the stored snippets with the YAML list read from file, or from
stdin when no file is given. Entries with a source_path come from external
data files and are not stored.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNotInProject
			}
			in := cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return &ContextError{Op: "snippet replace", Path: args[0], Err: err}
				}
				defer f.Close()
				in, name = f, args[0]
			}

			var defs []snippet.Definition
			if err := yaml.NewDecoder(in).Decode(&defs); err != nil && !errors.Is(err, io.EOF) {
				return &ContextError{Op: "snippet replace", Path: name, Err: fmt.Errorf("parsing snippets: %w", err)}
			}

			kept, err := runner.ReplaceSnippets(cmd.Context(), defs, !GetDryRun())
			if err != nil {
				return &ContextError{Op: "snippet replace", Err: err}
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), kept)
				return nil
			}
			verb := "Stored"
			if GetDryRun() {
				verb = "Would store"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d snippet(s)\n", verb, len(kept))
			return nil
		},
	}
}

// Package cmd contains the CLI commands for the fmx application.
package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eykd/fmx/internal/logging"
)

var rootCmd *cobra.Command

// Global flag state.
var (
	verbose    bool
	jsonOutput bool
	dryRun     bool
)

func init() {
	rootCmd = BuildCommandTree(newWorkspaceAdapter(os.Getwd, os.Stderr))
}

// GetVerbose returns the current verbose flag state.
// This is used by other packages to check if debug logging is enabled.
func GetVerbose() bool {
	return verbose
}

// GetJSON reports whether results should be printed as JSON.
func GetJSON() bool {
	return jsonOutput
}

// GetDryRun reports whether commands should only report planned changes.
func GetDryRun() bool {
	return dryRun
}

// NewRootCmd creates a new root command instance.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmx",
		Short: "Manage front matter in Markdown content",
		Long: `fmx edits the YAML or TOML front matter of Markdown documents: draft
flags, publish and modified dates, slugs, taxonomies, and snippet blocks,
following the content types configured in .fmx/config.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(cmd)
		},
	}

	// Add persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show changes without writing files")

	return cmd
}

// configureLogging installs the global logger for this run.
func configureLogging(cmd *cobra.Command) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}

// BuildCommandTree creates the root command with every subcommand wired to
// ws. A nil ws makes workspace commands fail with ErrNotInProject.
func BuildCommandTree(ws Workspace) *cobra.Command {
	root := NewRootCmd()

	root.AddCommand(NewInitCmd(os.Getwd))
	root.AddCommand(NewDraftCmd(ws))
	root.AddCommand(NewDateCmd(ws))
	root.AddCommand(NewLastModCmd(ws))
	root.AddCommand(NewSlugCmd(ws))
	root.AddCommand(NewTaxonomyCmd(ws))
	root.AddCommand(NewSnippetCmd(ws))
	root.AddCommand(NewPresaveCmd(ws))
	root.AddCommand(NewPlaceholderCmd(ws))
	root.AddCommand(NewServeCmd(ws))

	return root
}

// Root returns the process command tree.
func Root() *cobra.Command {
	return rootCmd
}

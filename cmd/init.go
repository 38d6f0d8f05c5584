package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eykd/fmx/internal/config"
	"github.com/eykd/fmx/internal/lock"
)

// NewInitCmd creates the init command. The getwd function returns the working
// directory where the workspace will be initialized.
func NewInitCmd(getwd func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "init",
		Short:        "Initialize an fmx workspace in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			_, statErr := os.Stat(config.Path(cwd))
			if statErr == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "fmx workspace already initialized")
				return nil
			}
			if !errors.Is(statErr, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", config.Path(cwd), statErr)
			}

			if GetDryRun() {
				fmt.Fprintf(cmd.OutOrStdout(), "Would create %s\n", filepath.Join(config.Dir, config.FileName))
				return nil
			}

			locker, err := lock.ForWorkspace(cwd, config.Dir, config.LockName)
			if err != nil {
				return err
			}
			cfg := config.Default()
			err = locker.Do(cmd.Context(), func() error {
				return config.Save(cwd, &cfg)
			})
			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized fmx workspace")
			return nil
		},
	}
}

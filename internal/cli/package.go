package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spachava753/purpltools/internal/packager"
	"github.com/spf13/cobra"
)

// ErrUsage is returned when the command line is incomplete. The usage line
// has already been printed.
var ErrUsage = errors.New("usage")

const packageUsage = "package <platform> <architecture> <configuration>"

// NewPackageCommand returns the package command. It takes no flags.
func NewPackageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                packageUsage,
		Short:              "Stage a finished build into its package directory",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				fmt.Fprintln(cmd.ErrOrStderr(), packageUsage)
				return ErrUsage
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(NewLogger("info", cmd.ErrOrStderr()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			p, err := packager.New(root)
			if err != nil {
				return err
			}

			res, err := p.Package(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			slog.Info("packaged", "staging_dir", res.StagingDir, "files", len(res.Files))
			return nil
		},
	}

	return cmd
}

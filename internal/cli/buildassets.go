// Package cli defines the command-line front ends of the asset builder and
// the packager.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spachava753/purpltools/internal/assets"
	"github.com/spachava753/purpltools/internal/config"
	"github.com/spachava753/purpltools/internal/models"
	"github.com/spf13/cobra"
)

// NewBuildAssetsCommand returns the build-assets command.
func NewBuildAssetsCommand() *cobra.Command {
	var (
		opts     models.BuildOptions
		logLevel string
		repoRoot string
	)

	cmd := &cobra.Command{
		Use:   "build-assets",
		Short: "Convert raw game assets into engine formats and pack them",
		Long: `build-assets converts models, textures and shaders with the engine's
converter tools, copies fonts and packs the output directory into
assets_dir.pak. Outputs newer than their sources are skipped unless
--rebuild is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(NewLogger(logLevel, cmd.ErrOrStderr()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.ResolveBuildOptions(opts, repoRoot, os.Getenv)
			if err != nil {
				return err
			}

			result, err := assets.Run(cmd.Context(), resolved, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			slog.Info("assets built",
				"built", result.Built,
				"skipped", result.Skipped,
				"duration", fmt.Sprintf("%.2fs", result.DurationSec))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.AssetsDir, "assets-dir", "a", "", "Assets directory (default <repo-root>/../assets)")
	f.StringVarP(&opts.OutputDir, "output-dir", "o", "", "Output directory (default <repo-root>/../assets/out)")
	f.StringVarP(&opts.RepoToolsDir, "repo-tools-dir", "R", "", "Repository tools directory (default <repo-root>/tools)")
	f.StringVarP(&opts.ToolsDir, "tools-dir", "t", "", "Built tools directory (default $"+config.ToolsDirEnv+")")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print the output of every tool")
	f.BoolVarP(&opts.Rebuild, "rebuild", "r", false, "Rebuild all assets regardless of timestamps")
	f.BoolVarP(&opts.Purge, "purge", "p", false, "Delete the output directory before building")
	f.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	f.StringVar(&repoRoot, "repo-root", "", "Repository root the defaults are derived from (default working directory)")

	return cmd
}

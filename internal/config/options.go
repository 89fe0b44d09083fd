package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/util"
)

// ToolsDirEnv names the environment variable that supplies a default tools directory.
const ToolsDirEnv = "PURPL_TOOLS_DIR"

// DefaultBuildOptions returns the directory layout relative to the repository
// root: assets live next to the repository, tools inside it.
func DefaultBuildOptions(repoRoot string) models.BuildOptions {
	assetsDir := filepath.Join(repoRoot, "..", "assets")
	return models.BuildOptions{
		AssetsDir:    assetsDir,
		OutputDir:    filepath.Join(assetsDir, "out"),
		RepoToolsDir: filepath.Join(repoRoot, "tools"),
	}
}

// ResolveBuildOptions fills every directory left empty in opts from the
// defaults, the environment and the guessed native build location, in that
// order. getenv is usually os.Getenv.
func ResolveBuildOptions(opts models.BuildOptions, repoRoot string, getenv func(string) string) (models.BuildOptions, error) {
	if repoRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return opts, fmt.Errorf("getting working directory: %w", err)
		}
		repoRoot = wd
	}

	defaults := DefaultBuildOptions(repoRoot)
	if opts.AssetsDir == "" {
		opts.AssetsDir = defaults.AssetsDir
	}
	if opts.OutputDir == "" {
		opts.OutputDir = defaults.OutputDir
	}
	if opts.RepoToolsDir == "" {
		opts.RepoToolsDir = defaults.RepoToolsDir
	}
	if opts.ToolsDir == "" {
		opts.ToolsDir = findToolsDir(repoRoot, getenv)
	}

	if opts.ToolsDir == "" || opts.RepoToolsDir == "" {
		return opts, &models.BuildError{Type: models.ErrConfiguration, Err: models.ErrToolsDirUndefined}
	}

	for _, dir := range []*string{&opts.AssetsDir, &opts.OutputDir, &opts.ToolsDir, &opts.RepoToolsDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return opts, fmt.Errorf("getting absolute path of %s: %w", *dir, err)
		}
		*dir = abs
	}

	opts.NativeToolsDir = filepath.Join(opts.RepoToolsDir, util.HostOS(), util.HostMachine())
	return opts, nil
}

// findToolsDir returns the tools directory from the environment, or the
// release build directory of the repository if it exists.
func findToolsDir(repoRoot string, getenv func(string) string) string {
	if dir := getenv(ToolsDirEnv); dir != "" && util.Exists(dir) {
		return dir
	}

	guess := filepath.Join(repoRoot, "build", util.HostOS(), util.HostMachine(), "release")
	slog.Info("trying to find tools", "dir", guess)
	if util.Exists(guess) {
		return guess
	}

	return ""
}

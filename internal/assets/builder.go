// Package assets drives the external converters that turn raw game assets
// into engine formats and packs the result into a single archive.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spachava753/purpltools/internal/config"
	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/toolchain"
	"github.com/spachava753/purpltools/internal/util"
)

// Builder runs the asset pipeline for one set of BuildOptions.
type Builder struct {
	opts     models.BuildOptions
	cfg      models.AssetsConfig
	registry *toolchain.Registry
	runner   toolchain.Runner
	out      io.Writer // receives tool output in verbose mode
}

// NewBuilder creates a new asset builder.
func NewBuilder(opts models.BuildOptions, cfg models.AssetsConfig, registry *toolchain.Registry, runner toolchain.Runner, out io.Writer) *Builder {
	return &Builder{
		opts:     opts,
		cfg:      cfg,
		registry: registry,
		runner:   runner,
		out:      out,
	}
}

// walk describes one source subtree and how its files become tasks.
type walk struct {
	dir   string
	tasks func(src string) ([]models.BuildTask, error)
}

// Build walks models, textures and shaders, rebuilding stale outputs, then
// copies fonts and packs the output directory. The first failure stops the run.
func (b *Builder) Build(ctx context.Context) (*models.BuildResult, error) {
	result := &models.BuildResult{StartedAt: time.Now()}
	defer func() {
		result.EndedAt = time.Now()
		result.DurationSec = result.EndedAt.Sub(result.StartedAt).Seconds()
	}()

	verb := "Building"
	if b.opts.Rebuild {
		verb = "Rebuilding"
	}
	slog.Info(verb+" assets",
		"assets_dir", b.opts.AssetsDir,
		"tools_dir", b.opts.ToolsDir,
		"repo_tools_dir", b.opts.RepoToolsDir,
		"native_tools_dir", b.opts.NativeToolsDir)

	if b.opts.Purge {
		slog.Info("purging output directory", "dir", b.opts.OutputDir)
		if err := os.RemoveAll(b.opts.OutputDir); err != nil {
			return result, &models.BuildError{Type: models.ErrFilesystem, Path: b.opts.OutputDir, Err: err}
		}
	}

	walks := []walk{
		{"models", single(b.modelTask)},
		{"textures", single(b.textureTask)},
		{"shaders", func(src string) ([]models.BuildTask, error) {
			if filepath.Ext(src) != ".hlsl" {
				return nil, nil
			}
			return b.shaderTasks(src)
		}},
	}

	for _, w := range walks {
		if err := b.walk(ctx, filepath.Join(b.opts.AssetsDir, w.dir), w.tasks, result); err != nil {
			return result, err
		}
	}

	if err := b.copyFonts(); err != nil {
		return result, err
	}

	if err := b.removeStaleArchives(); err != nil {
		return result, err
	}

	if err := b.runTask(ctx, b.archiveTask(), result); err != nil {
		return result, err
	}

	return result, nil
}

func single(fn func(string) (models.BuildTask, error)) func(string) ([]models.BuildTask, error) {
	return func(src string) ([]models.BuildTask, error) {
		task, err := fn(src)
		if err != nil {
			return nil, err
		}
		return []models.BuildTask{task}, nil
	}
}

// walk runs the tasks of every regular file below root. A missing root is
// not an error.
func (b *Builder) walk(ctx context.Context, root string, tasksFor func(string) ([]models.BuildTask, error), result *models.BuildResult) error {
	if !util.Exists(root) {
		slog.Debug("asset directory not present", "dir", root)
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &models.BuildError{Type: models.ErrFilesystem, Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}

		tasks, err := tasksFor(path)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := b.runTask(ctx, task, result); err != nil {
				return err
			}
		}
		return nil
	})
}

// runTask applies the staleness policy and runs the task's tool when needed.
func (b *Builder) runTask(ctx context.Context, task models.BuildTask, result *models.BuildResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0755); err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: task.Dest, Err: err}
	}

	st, err := util.CheckStaleness(task.Source, task.Dest)
	if err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: task.Source, Err: err}
	}

	if !b.opts.Rebuild && !st.Stale() {
		slog.Info("skipping", "dest", task.Dest, "newer", st.Newer, "dest_exists", st.DestExists)
		result.Skipped++
		return nil
	}

	toolPath, err := b.registry.Path(task.Spec.Tool)
	if err != nil {
		return &models.BuildError{Type: models.ErrConfiguration, Err: err}
	}

	inv := task.Spec.Expand(toolPath, task.Source, task.Dest)
	inv.Env = b.toolEnv()

	slog.Info("building", "kind", task.Kind, "command", inv.String(), "newer", st.Newer, "dest_exists", st.DestExists)

	if err := os.Chmod(toolPath, 0755); err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: toolPath, Err: fmt.Errorf("marking tool executable: %w", err)}
	}

	res, err := b.runner.Run(ctx, inv)
	if b.opts.Verbose && b.out != nil {
		fmt.Fprintf(b.out, "Output:\n%s\n", res.Output)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &models.BuildError{Type: models.ErrToolFailed, Path: task.Source, ExitCode: res.ExitCode, Err: err}
	}

	if res.ExitCode != 0 {
		return &models.BuildError{Type: models.ErrToolFailed, Path: task.Source, ExitCode: res.ExitCode}
	}

	result.Built++
	return nil
}

// toolEnv points the dynamic loader at the native tools directory.
func (b *Builder) toolEnv() map[string]string {
	name := util.LibraryPathVar(runtime.GOOS)
	value := b.opts.NativeToolsDir
	if name == "PATH" {
		value = strings.Join([]string{value, os.Getenv("PATH")}, string(os.PathListSeparator))
	}
	return map[string]string{name: value}
}

// Run loads assets.toml, resolves the tool registry and builds with local
// child processes, writing verbose tool output to out.
func Run(ctx context.Context, opts models.BuildOptions, out io.Writer) (*models.BuildResult, error) {
	cfg, err := config.LoadAssetsConfig(os.DirFS(opts.AssetsDir))
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrConfiguration, Err: err}
	}

	registry, err := toolchain.Resolve(opts.ToolsDir, opts.NativeToolsDir, runtime.GOOS)
	if err != nil {
		return nil, err
	}

	return NewBuilder(opts, cfg, registry, toolchain.NewExecRunner(), out).Build(ctx)
}

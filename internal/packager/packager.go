// Package packager stages the files of a finished build into a package
// directory and optionally compresses it for distribution.
package packager

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/spachava753/purpltools/internal/models"
)

// StagingDirName is the directory inside the build dir that receives the package.
const StagingDirName = "package"

// Packager copies build outputs below Root into per-platform staging dirs.
type Packager struct {
	Root     string
	Manifest *Manifest
}

// Result describes a staged package.
type Result struct {
	BuildDir   string
	StagingDir string
	Files      []string // staged paths, in copy order
}

// New returns a Packager rooted at root using the embedded manifest.
func New(root string) (*Packager, error) {
	m, err := DefaultManifest()
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrConfiguration, Err: err}
	}
	return &Packager{Root: root, Manifest: m}, nil
}

// BuildDir returns build/<platform>/<architecture>/<configuration> below the root.
func (p *Packager) BuildDir(platform, architecture, configuration string) string {
	return filepath.Join(p.Root, "build", platform, architecture, configuration)
}

// Package recreates the staging dir and copies every manifest entry for
// platform into it. Entries are not checked up front; the first failed copy
// stops packaging and leaves the partial staging dir behind.
func (p *Packager) Package(ctx context.Context, platform, architecture, configuration string) (*Result, error) {
	buildDir := p.BuildDir(platform, architecture, configuration)
	res := &Result{
		BuildDir:   buildDir,
		StagingDir: filepath.Join(buildDir, StagingDirName),
	}

	slog.Info("packaging", "platform", platform, "architecture", architecture, "configuration", configuration, "build_dir", buildDir)

	if err := os.RemoveAll(res.StagingDir); err != nil {
		return res, &models.BuildError{Type: models.ErrFilesystem, Path: res.StagingDir, Err: err}
	}

	opts := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
	}

	for _, pattern := range p.Manifest.Patterns(platform) {
		candidates, err := expand(filepath.Join(buildDir, pattern))
		if err != nil {
			return res, &models.BuildError{Type: models.ErrConfiguration, Path: pattern, Err: err}
		}

		for _, src := range candidates {
			if err := ctx.Err(); err != nil {
				return res, err
			}

			if err := os.MkdirAll(res.StagingDir, 0755); err != nil {
				return res, &models.BuildError{Type: models.ErrFilesystem, Path: res.StagingDir, Err: err}
			}

			dest := filepath.Join(res.StagingDir, filepath.Base(src))
			slog.Info("copying", "src", src, "dest", dest)
			if err := copy.Copy(src, dest, opts); err != nil {
				return res, &models.BuildError{Type: models.ErrFilesystem, Path: src, Err: err}
			}
			res.Files = append(res.Files, dest)
		}
	}

	return res, nil
}

// expand globs pattern, falling back to the literal path when nothing matches.
func expand(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []string{pattern}, nil
	}
	return matches, nil
}

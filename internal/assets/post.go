package assets

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/util"
)

// copyFonts copies the fonts directory verbatim into the output tree. An
// existing destination is kept as is.
func (b *Builder) copyFonts() error {
	src := filepath.Join(b.opts.AssetsDir, "fonts")
	if !util.Exists(src) {
		return nil
	}

	dest := filepath.Join(b.opts.OutputDir, "fonts")
	if util.Exists(dest) {
		slog.Debug("fonts already copied", "dest", dest)
		return nil
	}

	slog.Info("copying fonts", "src", src, "dest", dest)
	if err := copy.Copy(src, dest); err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: src, Err: err}
	}
	return nil
}

// removeStaleArchives deletes every .pak in the assets directory once a
// previous archive exists, so the packer starts from a clean slate.
func (b *Builder) removeStaleArchives() error {
	if !util.Exists(filepath.Join(b.opts.AssetsDir, archiveFile)) {
		return nil
	}

	entries, err := os.ReadDir(b.opts.AssetsDir)
	if err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: b.opts.AssetsDir, Err: err}
	}

	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".pak") {
			continue
		}
		path := filepath.Join(b.opts.AssetsDir, e.Name())
		slog.Debug("removing stale archive", "path", path)
		if err := os.Remove(path); err != nil {
			return &models.BuildError{Type: models.ErrFilesystem, Path: path, Err: err}
		}
	}
	return nil
}

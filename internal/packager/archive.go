package packager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mholt/archives"
	"github.com/spachava753/purpltools/internal/models"
)

var zipPlatforms = []string{"windows", "gdk", "gdkx"}

// ArchiveName returns the distribution file name for a build, e.g.
// purpl-linux-x64-release.tar.gz.
func ArchiveName(platform, architecture, configuration string) string {
	ext := ".tar.gz"
	if slices.Contains(zipPlatforms, platform) {
		ext = ".zip"
	}
	return fmt.Sprintf("purpl-%s-%s-%s%s", platform, architecture, configuration, ext)
}

// Archive compresses stagingDir into dest. The format follows the extension
// of dest; the archive holds a single top-level folder named after dest.
func Archive(ctx context.Context, stagingDir, dest string) error {
	base := filepath.Base(dest)

	var format archives.Archiver
	switch {
	case strings.HasSuffix(base, ".zip"):
		format = archives.Zip{}
		base = strings.TrimSuffix(base, ".zip")
	case strings.HasSuffix(base, ".tar.gz"):
		format = archives.CompressedArchive{
			Compression: archives.Gz{},
			Archival:    archives.Tar{},
		}
		base = strings.TrimSuffix(base, ".tar.gz")
	default:
		return &models.BuildError{Type: models.ErrConfiguration, Path: dest, Err: fmt.Errorf("unsupported archive format")}
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{stagingDir: base})
	if err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: stagingDir, Err: fmt.Errorf("collecting files: %w", err)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: dest, Err: err}
	}
	defer out.Close()

	slog.Info("archiving", "src", stagingDir, "dest", dest, "files", len(files))
	if err := format.Archive(ctx, out, files); err != nil {
		return &models.BuildError{Type: models.ErrFilesystem, Path: dest, Err: fmt.Errorf("writing archive: %w", err)}
	}

	return out.Close()
}

package packager_test

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/packager"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func defaultManifest(t *testing.T) *packager.Manifest {
	t.Helper()
	m, err := packager.DefaultManifest()
	if err != nil {
		t.Fatalf("embedded manifest: %v", err)
	}
	return m
}

func newPackager(t *testing.T, root string) *packager.Packager {
	t.Helper()
	p, err := packager.New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestDefaultManifest(t *testing.T) {
	m, err := packager.DefaultManifest()
	if err != nil {
		t.Fatalf("embedded manifest does not parse: %v", err)
	}
	if len(m.Common) == 0 || len(m.Groups) == 0 {
		t.Errorf("embedded manifest is empty: %+v", m)
	}
}

func TestPatterns(t *testing.T) {
	m := defaultManifest(t)

	tests := []struct {
		platform string
		want     []string
	}{
		{"linux", []string{"assets_*.pak", "purpl"}},
		{"windows", []string{"assets_*.pak", "purpl.exe", "purpl.exe.manifest", "*.pdb"}},
		{"gdk", []string{"assets_*.pak", "purpl.exe", "purpl.exe.manifest", "*.sym", "GdkAssets", "MicrosoftGame.Config"}},
		{"gdkx", []string{"assets_*.pak", "purpl.exe", "purpl.exe.manifest", "*.sym", "GdkAssets", "MicrosoftGame.Config"}},
		{"switch", []string{"purpl_0100694203488000.nsp"}},
		{"switchhb", []string{"purpl_0100694203488000.nsp"}},
		{"freebsd", []string{"assets_*.pak"}},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := m.Patterns(tt.platform); !slices.Equal(got, tt.want) {
				t.Errorf("Patterns(%q) = %v, want %v", tt.platform, got, tt.want)
			}
		})
	}
}

func TestPatterns_DoesNotMutateCommon(t *testing.T) {
	m := defaultManifest(t)
	m.Patterns("windows")
	if !slices.Equal(m.Common, []string{"assets_*.pak"}) {
		t.Errorf("common patterns changed: %v", m.Common)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "common: [unterminated"},
		{"no platforms", "groups:\n  - files: [a]\n"},
		{"no files", "groups:\n  - platforms: [linux]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := packager.ParseManifest([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPackage_Linux(t *testing.T) {
	root := t.TempDir()
	p := newPackager(t, root)
	buildDir := p.BuildDir("linux", "x64", "release")

	writeFile(t, filepath.Join(buildDir, "purpl"), "elf")
	writeFile(t, filepath.Join(buildDir, "assets_main.pak"), "pak")
	writeFile(t, filepath.Join(buildDir, "assets_extra.pak"), "pak")
	writeFile(t, filepath.Join(buildDir, "purpl.pdb"), "ignored")
	writeFile(t, filepath.Join(buildDir, "package", "stale.txt"), "old")

	res, err := p.Package(context.Background(), "linux", "x64", "release")
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	if res.StagingDir != filepath.Join(root, "build", "linux", "x64", "release", "package") {
		t.Errorf("unexpected staging dir %s", res.StagingDir)
	}

	entries, err := os.ReadDir(res.StagingDir)
	if err != nil {
		t.Fatalf("reading staging dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	want := []string{"assets_extra.pak", "assets_main.pak", "purpl"}
	if !slices.Equal(names, want) {
		t.Errorf("staged %v, want %v", names, want)
	}

	if len(res.Files) != 3 {
		t.Errorf("expected 3 staged files, got %v", res.Files)
	}
}

func TestPackage_GDKCopiesDirectories(t *testing.T) {
	root := t.TempDir()
	p := newPackager(t, root)
	buildDir := p.BuildDir("gdk", "x64", "debug")

	for _, name := range []string{"purpl.exe", "purpl.exe.manifest", "purpl.sym", "MicrosoftGame.Config", "assets_main.pak"} {
		writeFile(t, filepath.Join(buildDir, name), name)
	}
	writeFile(t, filepath.Join(buildDir, "GdkAssets", "logo", "Square150x150Logo.png"), "png")

	res, err := p.Package(context.Background(), "gdk", "x64", "debug")
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	logo := filepath.Join(res.StagingDir, "GdkAssets", "logo", "Square150x150Logo.png")
	data, err := os.ReadFile(logo)
	if err != nil {
		t.Fatalf("directory not copied: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("unexpected logo contents %q", data)
	}
}

func TestPackage_SwitchOnlyCopiesNSP(t *testing.T) {
	root := t.TempDir()
	p := newPackager(t, root)
	buildDir := p.BuildDir("switch", "arm64", "release")

	writeFile(t, filepath.Join(buildDir, "purpl_0100694203488000.nsp"), "nsp")
	writeFile(t, filepath.Join(buildDir, "assets_main.pak"), "pak")

	res, err := p.Package(context.Background(), "switch", "arm64", "release")
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	want := []string{filepath.Join(res.StagingDir, "purpl_0100694203488000.nsp")}
	if !slices.Equal(res.Files, want) {
		t.Errorf("staged %v, want %v", res.Files, want)
	}
}

func TestPackage_MissingFile(t *testing.T) {
	root := t.TempDir()
	p := newPackager(t, root)
	buildDir := p.BuildDir("linux", "x64", "release")
	writeFile(t, filepath.Join(buildDir, "assets_main.pak"), "pak")

	_, err := p.Package(context.Background(), "linux", "x64", "release")
	if err == nil {
		t.Fatal("expected error for missing executable")
	}

	var be *models.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected BuildError, got %T", err)
	}
	if be.Type != models.ErrFilesystem || be.Path != filepath.Join(buildDir, "purpl") {
		t.Errorf("unexpected error %s for %s", be.Type, be.Path)
	}

	// Files staged before the failure stay in place.
	if _, err := os.Stat(filepath.Join(buildDir, "package", "assets_main.pak")); err != nil {
		t.Errorf("expected partial staging to remain: %v", err)
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"linux", "purpl-linux-x64-release.tar.gz"},
		{"windows", "purpl-windows-x64-release.zip"},
		{"gdkx", "purpl-gdkx-x64-release.zip"},
		{"switch", "purpl-switch-x64-release.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := packager.ArchiveName(tt.platform, "x64", "release"); got != tt.want {
				t.Errorf("ArchiveName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func stage(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "package")
	writeFile(t, filepath.Join(dir, "purpl"), "elf")
	writeFile(t, filepath.Join(dir, "assets_main.pak"), "pak")
	return dir
}

func TestArchive_TarGz(t *testing.T) {
	dir := stage(t)
	dest := filepath.Join(t.TempDir(), "purpl-linux-x64-release.tar.gz")

	if err := packager.Archive(context.Background(), dir, dest); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}

	contents := map[string]string{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading tar: %v", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("reading %s: %v", hdr.Name, err)
		}
		contents[hdr.Name] = string(data)
	}

	want := map[string]string{
		"purpl-linux-x64-release/purpl":           "elf",
		"purpl-linux-x64-release/assets_main.pak": "pak",
	}
	for name, data := range want {
		if contents[name] != data {
			t.Errorf("entry %s = %q, want %q (entries: %v)", name, contents[name], data, contents)
		}
	}
}

func TestArchive_Zip(t *testing.T) {
	dir := stage(t)
	dest := filepath.Join(t.TempDir(), "purpl-windows-x64-release.zip")

	if err := packager.Archive(context.Background(), dir, dest); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	zr, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("opening zip: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if !slices.Contains(names, "purpl-windows-x64-release/purpl") {
		t.Errorf("expected staged executable in zip, got %v", names)
	}
}

func TestArchive_UnknownFormat(t *testing.T) {
	dir := stage(t)
	err := packager.Archive(context.Background(), dir, filepath.Join(t.TempDir(), "purpl.rar"))
	if !models.IsErrorType(err, models.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

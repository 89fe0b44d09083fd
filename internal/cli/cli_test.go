package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spachava753/purpltools/internal/cli"
	"github.com/spachava753/purpltools/internal/config"
	"github.com/spachava753/purpltools/internal/models"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := cli.NewLogger(tt.level, &bytes.Buffer{})
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.want) {
				t.Errorf("level %s not enabled", tt.want)
			}
			if logger.Enabled(ctx, tt.want-1) {
				t.Errorf("level below %s enabled", tt.want)
			}
		})
	}
}

func TestPackageCommand_Usage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var stderr bytes.Buffer
	cmd := cli.NewPackageCommand()
	cmd.SetArgs([]string{"linux", "x64"})
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	if !errors.Is(err, cli.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	if got := strings.TrimSpace(stderr.String()); got != "package <platform> <architecture> <configuration>" {
		t.Errorf("unexpected usage output %q", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(err) {
		t.Errorf("usage error must not touch the filesystem, stat err = %v", err)
	}
}

func TestPackageCommand_Stages(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	buildDir := filepath.Join(dir, "build", "linux", "x64", "release")
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"purpl", "assets_main.pak"} {
		if err := os.WriteFile(filepath.Join(buildDir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cmd := cli.NewPackageCommand()
	cmd.SetArgs([]string{"linux", "x64", "release"})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("package failed: %v", err)
	}

	for _, name := range []string{"purpl", "assets_main.pak"} {
		if _, err := os.Stat(filepath.Join(buildDir, "package", name)); err != nil {
			t.Errorf("%s not staged: %v", name, err)
		}
	}
}

func TestBuildAssetsCommand_NoToolsDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.ToolsDirEnv, "")

	cmd := cli.NewBuildAssetsCommand()
	cmd.SetArgs([]string{"--repo-root", root, "-a", filepath.Join(root, "assets"), "--log-level", "error"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if !errors.Is(err, models.ErrToolsDirUndefined) {
		t.Fatalf("expected ErrToolsDirUndefined, got %v", err)
	}
	if !models.IsErrorType(err, models.ErrConfiguration) {
		t.Errorf("expected configuration error type, got %v", err)
	}
}

func TestBuildAssetsCommand_Flags(t *testing.T) {
	cmd := cli.NewBuildAssetsCommand()
	if err := cmd.ParseFlags([]string{"-a", "in", "-o", "out", "-R", "repo", "-t", "tools", "-v", "-r", "-p"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	f := cmd.Flags()
	for name, want := range map[string]string{
		"assets-dir":     "in",
		"output-dir":     "out",
		"repo-tools-dir": "repo",
		"tools-dir":      "tools",
		"verbose":        "true",
		"rebuild":        "true",
		"purge":          "true",
		"log-level":      "info",
	} {
		if got := f.Lookup(name).Value.String(); got != want {
			t.Errorf("--%s = %q, want %q", name, got, want)
		}
	}
}

func TestBuildAssetsCommand_RejectsArgs(t *testing.T) {
	cmd := cli.NewBuildAssetsCommand()
	cmd.SetArgs([]string{"extra"})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for positional arguments")
	}
}

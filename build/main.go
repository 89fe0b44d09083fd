package main

import (
	"flag"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goyek/goyek/v2"
	"github.com/spachava753/purpltools/internal/assets"
	"github.com/spachava753/purpltools/internal/config"
	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/packager"
)

var (
	platform      = flag.String("platform", "linux", "target platform for package and archive")
	architecture  = flag.String("arch", "x64", "target architecture for package and archive")
	configuration = flag.String("config", "release", "build configuration for package and archive")
)

func run(a *goyek.A, name string, args ...string) {
	a.Helper()
	cmd := exec.CommandContext(a.Context(), name, args...)
	cmd.Stdout = a.Output()
	cmd.Stderr = a.Output()
	if err := cmd.Run(); err != nil {
		a.Error(err)
	}
}

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		run(a, "go", "vet", "./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run the unit tests",
	Deps:  goyek.Deps{vet},
	Action: func(a *goyek.A) {
		run(a, "go", "test", "./...")
	},
})

var buildAssets = goyek.Define(goyek.Task{
	Name:  "assets",
	Usage: "Build the game assets with the default directories",
	Action: func(a *goyek.A) {
		opts, err := config.ResolveBuildOptions(models.BuildOptions{}, "", os.Getenv)
		if err != nil {
			a.Fatal(err)
		}

		res, err := assets.Run(a.Context(), opts, a.Output())
		if err != nil {
			a.Fatal(err)
		}
		a.Logf("built %d assets, skipped %d", res.Built, res.Skipped)
	},
})

var pkg = goyek.Define(goyek.Task{
	Name:  "package",
	Usage: "Stage the build selected by -platform, -arch and -config",
	Action: func(a *goyek.A) {
		root, err := os.Getwd()
		if err != nil {
			a.Fatal(err)
		}

		p, err := packager.New(root)
		if err != nil {
			a.Fatal(err)
		}

		res, err := p.Package(a.Context(), *platform, *architecture, *configuration)
		if err != nil {
			a.Fatal(err)
		}
		a.Logf("staged %d files in %s", len(res.Files), res.StagingDir)
	},
})

var _ = goyek.Define(goyek.Task{
	Name:  "archive",
	Usage: "Compress the staged package for distribution",
	Deps:  goyek.Deps{pkg},
	Action: func(a *goyek.A) {
		root, err := os.Getwd()
		if err != nil {
			a.Fatal(err)
		}

		p, err := packager.New(root)
		if err != nil {
			a.Fatal(err)
		}
		buildDir := p.BuildDir(*platform, *architecture, *configuration)
		dest := filepath.Join(root, "build", packager.ArchiveName(*platform, *architecture, *configuration))

		if err := packager.Archive(a.Context(), filepath.Join(buildDir, packager.StagingDirName), dest); err != nil {
			a.Fatal(err)
		}
		a.Logf("wrote %s", dest)
	},
})

func main() {
	flag.Parse()
	goyek.Main(flag.Args())
}

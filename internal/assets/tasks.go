package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spachava753/purpltools/internal/models"
)

// Archive file names inside the assets directory. The packer is given the
// path without the "_dir.pak" suffix.
const (
	archiveFile   = "assets_dir.pak"
	archiveSuffix = "_dir.pak"
)

// mirror maps a path inside the assets tree to the same relative location
// inside the output tree.
func (b *Builder) mirror(dir string) (string, error) {
	rel, err := filepath.Rel(b.opts.AssetsDir, dir)
	if err != nil {
		return "", fmt.Errorf("mirroring %s: %w", dir, err)
	}
	return filepath.Join(b.opts.OutputDir, rel), nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// converterTask builds the task for a model or texture converter, which share
// the "<tool> to <src> <dest>" contract.
func (b *Builder) converterTask(kind models.AssetKind, tool models.Tool, ext, src string) (models.BuildTask, error) {
	destDir, err := b.mirror(filepath.Dir(src))
	if err != nil {
		return models.BuildTask{}, err
	}
	return models.BuildTask{
		Kind:   kind,
		Source: src,
		Dest:   filepath.Join(destDir, stem(src)+ext),
		Spec: models.ToolSpec{
			Tool: tool,
			Args: []string{"to", models.ArgSource, models.ArgDest},
		},
	}, nil
}

func (b *Builder) modelTask(src string) (models.BuildTask, error) {
	return b.converterTask(models.KindModel, models.ToolMesh, b.cfg.Extensions.Model, src)
}

func (b *Builder) textureTask(src string) (models.BuildTask, error) {
	return b.converterTask(models.KindTexture, models.ToolTexture, b.cfg.Extensions.Texture, src)
}

// shaderTasks returns, per stage, the native DXIL build, the SPIR-V build and
// the GLSL cross-compile of the SPIR-V output, in that order. The GLSL task
// uses the SPIR-V artifact as its source.
func (b *Builder) shaderTasks(src string) ([]models.BuildTask, error) {
	outDir, err := b.mirror(filepath.Dir(src))
	if err != nil {
		return nil, err
	}

	name := stem(src)
	var tasks []models.BuildTask
	for _, stage := range b.cfg.Shader.Stages {
		artifact := name + "." + stage.Extension()
		spv := filepath.Join(outDir, "vulkan", artifact+".spv")

		vulkanArgs := []string{"-E", stage.Entry, "-T", stage.Model, "-spirv", "-DSPIRV", models.ArgSource, "-Fo", models.ArgDest}
		vulkanArgs = append(vulkanArgs, stage.VulkanFlags...)

		tasks = append(tasks,
			models.BuildTask{
				Kind:   models.KindShader,
				Source: src,
				Dest:   filepath.Join(outDir, "directx12", artifact+".cso"),
				Spec: models.ToolSpec{
					Tool: models.ToolDXC,
					Args: []string{"-E", stage.Entry, "-T", stage.Model, models.ArgSource, "-Fo", models.ArgDest},
				},
			},
			models.BuildTask{
				Kind:   models.KindShader,
				Source: src,
				Dest:   spv,
				Spec:   models.ToolSpec{Tool: models.ToolDXC, Args: vulkanArgs},
			},
			models.BuildTask{
				Kind:   models.KindShader,
				Source: spv,
				Dest:   filepath.Join(outDir, "opengl", artifact+".glsl"),
				Spec: models.ToolSpec{
					Tool: models.ToolSPIRVCross,
					Args: []string{models.ArgSource, "--output", models.ArgDest},
				},
			},
		)
	}
	return tasks, nil
}

// archiveTask packs the whole output directory into the assets archive.
func (b *Builder) archiveTask() models.BuildTask {
	dest := filepath.Join(b.opts.AssetsDir, archiveFile)
	return models.BuildTask{
		Kind:   models.KindArchive,
		Source: b.opts.OutputDir,
		Dest:   dest,
		Spec: models.ToolSpec{
			Tool: models.ToolPack,
			Args: []string{"create", strings.TrimSuffix(dest, archiveSuffix), models.ArgSource},
		},
	}
}

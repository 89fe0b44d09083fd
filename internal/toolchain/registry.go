package toolchain

import (
	"fmt"
	"path/filepath"

	"github.com/spachava753/purpltools/internal/models"
	"github.com/spachava753/purpltools/internal/util"
)

// Registry maps every required tool to its executable on disk.
type Registry struct {
	paths map[models.Tool]string
}

// location records which directory a tool ships in.
type location struct {
	tool   models.Tool
	native bool // in the repository's native tools dir, not the build tools dir
}

// requiredTools lists the tools in the order they are checked.
var requiredTools = []location{
	{models.ToolDXC, true},
	{models.ToolSPIRVCross, true},
	{models.ToolMesh, false},
	{models.ToolTexture, false},
	{models.ToolPack, false},
}

// Resolve locates every required tool for goos. It fails on the first missing
// executable, naming the path it expected.
func Resolve(toolsDir, nativeToolsDir, goos string) (*Registry, error) {
	reg := &Registry{paths: make(map[models.Tool]string, len(requiredTools))}

	for _, loc := range requiredTools {
		dir := toolsDir
		if loc.native {
			dir = nativeToolsDir
		}

		path := filepath.Join(dir, string(loc.tool)+util.ExeSuffix(goos))
		if !util.Exists(path) {
			return nil, &models.BuildError{
				Type: models.ErrConfiguration,
				Path: path,
				Err:  models.ErrToolMissing,
			}
		}
		reg.paths[loc.tool] = path
	}

	return reg, nil
}

// Path returns the executable path of tool.
func (r *Registry) Path(tool models.Tool) (string, error) {
	path, ok := r.paths[tool]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", tool)
	}
	return path, nil
}

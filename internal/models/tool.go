package models

import (
	"maps"
	"slices"
	"strings"
)

// Tool is the logical name of an external tool. The value doubles as the
// executable's base name on disk.
type Tool string

const (
	ToolMesh       Tool = "meshtool"
	ToolTexture    Tool = "texturetool"
	ToolDXC        Tool = "dxc"
	ToolSPIRVCross Tool = "spirv-cross"
	ToolPack       Tool = "packtool"
)

// Argument placeholders expanded by ToolSpec.Expand.
const (
	ArgSource = "{src}"
	ArgDest   = "{dest}"
)

// ToolSpec names a tool and the argument template used to invoke it.
type ToolSpec struct {
	Tool Tool
	Args []string
}

// Expand resolves the argument template into a concrete invocation of the
// executable at path.
func (s ToolSpec) Expand(path, src, dest string) Invocation {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		switch a {
		case ArgSource:
			args[i] = src
		case ArgDest:
			args[i] = dest
		default:
			args[i] = a
		}
	}
	return Invocation{Path: path, Args: args}
}

// Invocation is a fully resolved child process launch.
type Invocation struct {
	Path string
	Args []string
	Env  map[string]string // overrides on top of the parent environment
}

// String renders the invocation as a command line for logging.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Path}, i.Args...), " ")
}

// EnvList returns the overrides as sorted KEY=VALUE pairs.
func (i Invocation) EnvList() []string {
	var env []string
	for _, k := range slices.Sorted(maps.Keys(i.Env)) {
		env = append(env, k+"="+i.Env[k])
	}
	return env
}

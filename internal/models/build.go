package models

import "time"

// AssetKind identifies which pipeline a build task belongs to.
type AssetKind string

const (
	KindModel   AssetKind = "model"
	KindTexture AssetKind = "texture"
	KindShader  AssetKind = "shader"
	KindArchive AssetKind = "archive"
)

// BuildOptions is the resolved configuration of one asset build run.
type BuildOptions struct {
	AssetsDir      string `json:"assets_dir"`
	OutputDir      string `json:"output_dir"`
	ToolsDir       string `json:"tools_dir"`
	RepoToolsDir   string `json:"repo_tools_dir"`
	NativeToolsDir string `json:"native_tools_dir"` // <repo tools>/<os>/<machine>
	Verbose        bool   `json:"verbose"`
	Rebuild        bool   `json:"rebuild"`
	Purge          bool   `json:"purge"`
}

// AssetsConfig holds the per-project settings read from assets.toml.
type AssetsConfig struct {
	Extensions ExtensionsConfig `toml:"extensions"`
	Shader     ShaderConfig     `toml:"shader"`
}

type ExtensionsConfig struct {
	Model   string `toml:"model"`   // default: .pmdl
	Texture string `toml:"texture"` // default: .ptex
}

type ShaderConfig struct {
	Stages []ShaderStage `toml:"stage"`
}

// ShaderStage is one entry point compiled out of every .hlsl file.
type ShaderStage struct {
	Entry       string   `toml:"entry"`
	Model       string   `toml:"model"`
	VulkanFlags []string `toml:"vulkan_flags,omitempty"`
}

// Extension returns the short stage name used in artifact names, e.g. "vs" for vs_6_0.
func (s ShaderStage) Extension() string {
	if len(s.Model) < 2 {
		return s.Model
	}
	return s.Model[:2]
}

// BuildTask is a single source to destination transformation. Tasks are
// created per discovered file and run immediately.
type BuildTask struct {
	Kind   AssetKind
	Source string
	Dest   string
	Spec   ToolSpec
}

// BuildResult summarizes a completed asset build.
type BuildResult struct {
	Built       int       `json:"built"`
	Skipped     int       `json:"skipped"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	DurationSec float64   `json:"duration_sec"`
}

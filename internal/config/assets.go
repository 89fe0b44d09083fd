package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spachava753/purpltools/internal/models"
)

// AssetsConfigFile is the optional project file at the root of the assets directory.
const AssetsConfigFile = "assets.toml"

// DefaultAssetsConfig returns an AssetsConfig with default values.
func DefaultAssetsConfig() models.AssetsConfig {
	return models.AssetsConfig{
		Extensions: models.ExtensionsConfig{
			Model:   ".pmdl",
			Texture: ".ptex",
		},
		Shader: models.ShaderConfig{
			Stages: []models.ShaderStage{
				{Entry: "VertexMain", Model: "vs_6_0", VulkanFlags: []string{"-fvk-invert-y"}},
				{Entry: "PixelMain", Model: "ps_6_0"},
			},
		},
	}
}

// LoadAssetsConfig loads assets.toml from the given filesystem. A missing file
// yields the defaults.
func LoadAssetsConfig(fsys fs.FS) (models.AssetsConfig, error) {
	cfg := DefaultAssetsConfig()

	data, err := fs.ReadFile(fsys, AssetsConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", AssetsConfigFile, err)
	}

	// Stages decode into a fresh slice so file entries never inherit default fields.
	cfg.Shader.Stages = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultAssetsConfig(), fmt.Errorf("parsing %s: %w", AssetsConfigFile, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("parsing %s: unknown keys %s", AssetsConfigFile, strings.Join(keys, ", "))
	}

	if !md.IsDefined("shader", "stage") {
		cfg.Shader.Stages = DefaultAssetsConfig().Shader.Stages
	} else {
		if len(cfg.Shader.Stages) == 0 {
			return cfg, fmt.Errorf("%s: shader.stage must not be empty", AssetsConfigFile)
		}
		for i, s := range cfg.Shader.Stages {
			if s.Entry == "" {
				return cfg, fmt.Errorf("%s: shader.stage[%d]: missing entry", AssetsConfigFile, i)
			}
			if len(s.Model) < 2 {
				return cfg, fmt.Errorf("%s: shader.stage[%d]: invalid model %q", AssetsConfigFile, i, s.Model)
			}
		}
	}

	for key, ext := range map[string]string{"model": cfg.Extensions.Model, "texture": cfg.Extensions.Texture} {
		if md.IsDefined("extensions", key) && !strings.HasPrefix(ext, ".") {
			return cfg, fmt.Errorf("%s: extensions.%s must start with a dot, got %q", AssetsConfigFile, key, ext)
		}
	}

	return cfg, nil
}

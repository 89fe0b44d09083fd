package packager

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Manifest lists the files that make up a packaged build.
type Manifest struct {
	Common []string `yaml:"common"`
	Groups []Group  `yaml:"groups"`
}

// Group adds files for a set of platforms. A replacing group discards every
// pattern collected before it.
type Group struct {
	Platforms []string `yaml:"platforms"`
	Files     []string `yaml:"files"`
	Replace   bool     `yaml:"replace"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}

	for i, g := range m.Groups {
		if len(g.Platforms) == 0 {
			return nil, fmt.Errorf("groups[%d]: no platforms", i)
		}
		if len(g.Files) == 0 {
			return nil, fmt.Errorf("groups[%d]: no files", i)
		}
	}

	return &m, nil
}

// DefaultManifest returns the manifest built into the binary.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(manifestYAML)
}

// Patterns returns the glob patterns to stage for platform, in order.
// Unknown platforms get only the common patterns.
func (m *Manifest) Patterns(platform string) []string {
	patterns := slices.Clone(m.Common)
	for _, g := range m.Groups {
		if !slices.Contains(g.Platforms, platform) {
			continue
		}
		if g.Replace {
			patterns = nil
		}
		patterns = append(patterns, g.Files...)
	}
	return patterns
}

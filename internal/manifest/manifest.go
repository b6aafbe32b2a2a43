// Package manifest reads the optional package manifest that pins the SDK
// image and the expected redistributable contents. Without a manifest the
// pipeline runs with built-in defaults.
package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ucrtpack/internal/config"
)

// DefaultFileName is looked up in the source directory.
const DefaultFileName = "ucrtpack.toml"

type Manifest struct {
	Version string `toml:"version"`
	ISO     ISO    `toml:"iso"`
	Redist  Redist `toml:"redist"`
}

type ISO struct {
	Name  string `toml:"name"`
	XXH64 string `toml:"xxh64"`
}

type Redist struct {
	Installer string   `toml:"installer"`
	Arch      string   `toml:"arch"`
	DLLs      []string `toml:"dlls"`
}

// Load parses a manifest file. A missing file is not an error: it returns
// (nil, nil) and the caller keeps its defaults.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Apply overrides config defaults with manifest values.
func (m *Manifest) Apply(cfg *config.Config) {
	if m == nil {
		return
	}
	if m.Version != "" && cfg.PkgVersion == "" {
		cfg.PkgVersion = m.Version
	}
	if m.ISO.Name != "" {
		cfg.ISOName = m.ISO.Name
	}
	if m.ISO.XXH64 != "" {
		cfg.ISOChecksum = strings.ToLower(m.ISO.XXH64)
	}
	if m.Redist.Installer != "" {
		cfg.InstallerRel = m.Redist.Installer
	}
	if m.Redist.Arch != "" {
		cfg.Arch = m.Redist.Arch
	}
}

// ExpectedDLLs returns the pinned DLL set, lower-cased and sorted, or nil
// when the manifest does not pin one.
func (m *Manifest) ExpectedDLLs() []string {
	if m == nil || len(m.Redist.DLLs) == 0 {
		return nil
	}
	dlls := make([]string, len(m.Redist.DLLs))
	for i, name := range m.Redist.DLLs {
		dlls[i] = strings.ToLower(name)
	}
	sort.Strings(dlls)
	return dlls
}

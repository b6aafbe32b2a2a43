package config

import (
	"fmt"
	"os"
	"path/filepath"

	"ucrtpack/internal/types"
)

// Environment variables supplied by the build orchestration system.
const (
	EnvSrcDir      = "SRC_DIR"
	EnvPrefix      = "PREFIX"
	EnvLibraryBin  = "LIBRARY_BIN"
	EnvBuildPrefix = "BUILD_PREFIX"
	EnvPkgVersion  = "PKG_VERSION"
)

// Defaults for the fixed paths inside the SDK image. The installer package
// path matches the layout of the extracted SDK ISO; the DLL directory is
// where an administrative install of the redistributable lands them.
const (
	DefaultISOName      = "windows-sdk.iso"
	DefaultInstallerRel = "Installers/Universal CRT Redistributable-x86_en-us.msi"
	DefaultDLLSubdir    = "Windows Kits/10/Redist/ucrt/DLLs"
	DefaultArch         = "x64"
	tempDirName         = "ucrt_redist_temp"
)

type Config struct {
	SrcDir      string
	Prefix      string
	LibraryBin  string
	BuildPrefix string
	PkgVersion  string

	// WorkDir is where the ISO content is extracted; defaults to the
	// current directory, matching the orchestrator's working tree.
	WorkDir string
	TempDir string

	ISOName      string
	InstallerRel string
	Arch         string

	ISOChecksum string
	Verbose     bool
}

// FromEnv builds a Config from the orchestration environment.
func FromEnv() *Config {
	workDir, _ := os.Getwd()

	cfg := &Config{
		SrcDir:       os.Getenv(EnvSrcDir),
		Prefix:       os.Getenv(EnvPrefix),
		LibraryBin:   os.Getenv(EnvLibraryBin),
		BuildPrefix:  os.Getenv(EnvBuildPrefix),
		PkgVersion:   os.Getenv(EnvPkgVersion),
		WorkDir:      workDir,
		ISOName:      DefaultISOName,
		InstallerRel: DefaultInstallerRel,
		Arch:         DefaultArch,
	}
	cfg.ResolveTempDir()

	return cfg
}

// ResolveTempDir roots the temporary extraction tree under the build prefix
// when the orchestrator supplies one, falling back to the working directory.
// Called again after flag overrides so --build-prefix takes effect.
func (c *Config) ResolveTempDir() {
	base := c.WorkDir
	if c.BuildPrefix != "" {
		base = c.BuildPrefix
	}
	c.TempDir = filepath.Join(base, tempDirName)
}

// Validate checks the environment contract before any step runs.
func (c *Config) Validate() error {
	missing := []string{}
	if c.SrcDir == "" {
		missing = append(missing, EnvSrcDir)
	}
	if c.Prefix == "" {
		missing = append(missing, EnvPrefix)
	}
	if c.LibraryBin == "" {
		missing = append(missing, EnvLibraryBin)
	}
	if len(missing) > 0 {
		return types.NewError(types.ErrCodeInvalidInput,
			fmt.Sprintf("missing environment variables: %v", missing), nil)
	}

	if !dirExists(c.SrcDir) {
		return types.NewError(types.ErrCodeNotFound, "source directory does not exist", nil).
			WithContext("path", c.SrcDir)
	}

	return nil
}

// ISOPath is the fixed-name SDK image inside the source directory.
func (c *Config) ISOPath() string {
	return filepath.Join(c.SrcDir, c.ISOName)
}

// InstallerPath is the redistributable installer inside the extracted tree.
func (c *Config) InstallerPath() string {
	return filepath.Join(c.WorkDir, filepath.FromSlash(c.InstallerRel))
}

// DLLSourceDir is where the administrative install places the runtime DLLs.
func (c *Config) DLLSourceDir() string {
	return filepath.Join(c.TempDir, filepath.FromSlash(DefaultDLLSubdir), c.Arch)
}

// Destinations are the two prefixes the DLL set is staged into.
func (c *Config) Destinations() []string {
	return []string{c.Prefix, c.LibraryBin}
}

// EnsureDirectories creates every directory the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.TempDir,
		c.Prefix,
		c.LibraryBin,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup removes the temporary extraction tree.
func (c *Config) Cleanup() error {
	return os.RemoveAll(c.TempDir)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucrtpack/internal/app"
	"ucrtpack/internal/config"
	"ucrtpack/internal/pipeline"
	"ucrtpack/internal/types"
)

// simRunner stands in for the external tools: the archive tool is a no-op
// (the installer is laid down by the test) and the installer tool drops the
// DLL tree into the administrative install target.
type simRunner struct {
	cfg   *config.Config
	dlls  []string
	calls []string
	errs  map[string]error
}

func (r *simRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, name)
	if err, ok := r.errs[name]; ok {
		return "", err
	}
	if name == "msiexec" {
		for _, dll := range r.dlls {
			path := filepath.Join(r.cfg.DLLSourceDir(), dll)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return "", err
			}
			if err := os.WriteFile(path, []byte("dll"), 0644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (r *simRunner) Look(name string) (string, error) {
	return name, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		SrcDir:       filepath.Join(root, "src"),
		Prefix:       filepath.Join(root, "prefix"),
		LibraryBin:   filepath.Join(root, "prefix", "Library", "bin"),
		WorkDir:      filepath.Join(root, "work"),
		TempDir:      filepath.Join(root, "work", "ucrt_redist_temp"),
		ISOName:      config.DefaultISOName,
		InstallerRel: config.DefaultInstallerRel,
		Arch:         config.DefaultArch,
	}
	require.NoError(t, os.MkdirAll(cfg.SrcDir, 0755))
	require.NoError(t, os.WriteFile(cfg.ISOPath(), []byte("iso"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.InstallerPath()), 0755))
	require.NoError(t, os.WriteFile(cfg.InstallerPath(), []byte("msi"), 0644))
	return cfg
}

func TestPackager_StepOrder(t *testing.T) {
	cfg := testConfig(t)
	packager := app.NewPackager(cfg, &simRunner{cfg: cfg}, nil)

	var names []string
	for _, step := range packager.Steps() {
		names = append(names, step.Name())
	}

	assert.Equal(t,
		[]string{"prepare", "extract-iso", "extract-redist", "stage-dlls", "verify"},
		names)
}

func TestPackager_FullRun(t *testing.T) {
	cfg := testConfig(t)
	run := &simRunner{
		cfg:  cfg,
		dlls: []string{"ucrtbase.dll", "api-ms-win-crt-math-l1-1-0.dll"},
	}
	packager := app.NewPackager(cfg, run, nil)

	err := packager.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, pipeline.ExitCode(err))
	assert.Equal(t, []string{"7z", "msiexec"}, run.calls)
	for _, dst := range cfg.Destinations() {
		assert.FileExists(t, filepath.Join(dst, "ucrtbase.dll"))
		assert.FileExists(t, filepath.Join(dst, "api-ms-win-crt-math-l1-1-0.dll"))
	}
}

func TestPackager_FullRunWithManifestSet(t *testing.T) {
	cfg := testConfig(t)
	run := &simRunner{cfg: cfg, dlls: []string{"ucrtbase.dll"}}
	packager := app.NewPackager(cfg, run, []string{"ucrtbase.dll"})

	assert.NoError(t, packager.Run(context.Background()))
}

func TestPackager_ArchiveToolFailureAbortsPipeline(t *testing.T) {
	cfg := testConfig(t)
	run := &simRunner{
		cfg:  cfg,
		dlls: []string{"ucrtbase.dll"},
		errs: map[string]error{"7z": &types.ToolError{Tool: "7z", Code: 2}},
	}
	packager := app.NewPackager(cfg, run, nil)

	err := packager.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, 2, pipeline.ExitCode(err), "the archive tool's exit code is the run's exit code")
	assert.Equal(t, []string{"7z"}, run.calls, "the installer step must not be attempted")
}

func TestPackager_InstallerFailureAbortsBeforeStaging(t *testing.T) {
	cfg := testConfig(t)
	run := &simRunner{
		cfg:  cfg,
		errs: map[string]error{"msiexec": &types.ToolError{Tool: "msiexec", Code: 1603}},
	}
	packager := app.NewPackager(cfg, run, nil)

	err := packager.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1603, pipeline.ExitCode(err))
	assert.NoFileExists(t, filepath.Join(cfg.Prefix, "ucrtbase.dll"))
}

func TestPackager_RerunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	run := &simRunner{cfg: cfg, dlls: []string{"ucrtbase.dll"}}
	packager := app.NewPackager(cfg, run, nil)

	require.NoError(t, packager.Run(context.Background()))
	require.NoError(t, packager.Run(context.Background()),
		"re-running over pre-existing matching files must succeed")
}

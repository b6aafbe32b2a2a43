package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ucrtpack/internal/app"
	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/manifest"
	"ucrtpack/internal/utils"
)

var version = "dev"

var (
	verbosity    int
	flagSrcDir   string
	flagPrefix   string
	flagLibBin   string
	flagBuildPfx string
	flagVersion  string
	flagISO      string
	flagArch     string
	flagManifest string

	rootCmd = &cobra.Command{
		Use:   "ucrtpack",
		Short: "Package UCRT redistributable DLLs from a Windows SDK image",
		Long: `ucrtpack extracts a Windows SDK ISO, performs an administrative
extraction of the UCRT redistributable installer, and stages the runtime
DLLs into the build prefixes supplied by the orchestration environment
(SRC_DIR, PREFIX, LIBRARY_BIN, BUILD_PREFIX, PKG_VERSION).

The steps run strictly in order and stop at the first failure; the process
exits with the failing tool's own exit code.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPack,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v DEBUG, -vv TRACE)")

	rootCmd.Flags().StringVar(&flagSrcDir, "src-dir", "", "Source directory (overrides SRC_DIR)")
	rootCmd.Flags().StringVar(&flagPrefix, "prefix", "", "Destination prefix (overrides PREFIX)")
	rootCmd.Flags().StringVar(&flagLibBin, "library-bin", "", "Library bin directory (overrides LIBRARY_BIN)")
	rootCmd.Flags().StringVar(&flagBuildPfx, "build-prefix", "", "Build prefix (overrides BUILD_PREFIX)")
	rootCmd.Flags().StringVar(&flagVersion, "pkg-version", "", "Package version (overrides PKG_VERSION)")
	rootCmd.Flags().StringVar(&flagISO, "iso", "", "SDK image file name inside the source directory")
	rootCmd.Flags().StringVar(&flagArch, "arch", "", "DLL architecture to stage (default "+config.DefaultArch+")")
	rootCmd.Flags().StringVar(&flagManifest, "manifest", "", "Manifest path (default <src-dir>/"+manifest.DefaultFileName+")")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ucrtpack %s\n", version)
	},
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, expectedDLLs, err := buildConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	packager := app.NewPackager(cfg, utils.NewExecRunner(cfg.Verbose), expectedDLLs)
	return packager.Run(ctx)
}

// buildConfig layers the run configuration: environment first, then the
// manifest, then explicit flags, so a flag always wins.
func buildConfig() (*config.Config, []string, error) {
	cfg := config.FromEnv()

	srcDir := cfg.SrcDir
	if flagSrcDir != "" {
		srcDir = flagSrcDir
	}
	manifestPath := flagManifest
	if manifestPath == "" && srcDir != "" {
		manifestPath = filepath.Join(srcDir, manifest.DefaultFileName)
	}

	var expectedDLLs []string
	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, nil, err
		}
		if m != nil {
			log.Debug().Str("path", manifestPath).Msg("Loaded manifest")
			m.Apply(cfg)
			expectedDLLs = m.ExpectedDLLs()
		}
	}

	applyFlags(cfg)
	cfg.ResolveTempDir()
	return cfg, expectedDLLs, nil
}

func applyFlags(cfg *config.Config) {
	if flagSrcDir != "" {
		cfg.SrcDir = flagSrcDir
	}
	if flagPrefix != "" {
		cfg.Prefix = flagPrefix
	}
	if flagLibBin != "" {
		cfg.LibraryBin = flagLibBin
	}
	if flagBuildPfx != "" {
		cfg.BuildPrefix = flagBuildPfx
	}
	if flagVersion != "" {
		cfg.PkgVersion = flagVersion
	}
	if flagISO != "" {
		cfg.ISOName = flagISO
	}
	if flagArch != "" {
		cfg.Arch = flagArch
	}
	cfg.Verbose = verbosity > 0
}

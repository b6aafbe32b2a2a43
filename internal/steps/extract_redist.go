package steps

import (
	"context"

	"github.com/rs/zerolog"

	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/types"
	"ucrtpack/internal/utils"
)

// ExtractRedist runs the installer tool in administrative mode against the
// redistributable package, laying out its contents under the temp directory
// without touching the machine's installed state.
type ExtractRedist struct {
	cfg    *config.Config
	run    utils.CommandRunner
	logger zerolog.Logger
}

func NewExtractRedist(cfg *config.Config, run utils.CommandRunner) *ExtractRedist {
	return &ExtractRedist{
		cfg:    cfg,
		run:    run,
		logger: logging.GetLogger("extract-redist"),
	}
}

func (s *ExtractRedist) Name() string {
	return "extract-redist"
}

func (s *ExtractRedist) Run(ctx context.Context) error {
	if _, err := s.run.Look("msiexec"); err != nil {
		return err
	}

	installer := s.cfg.InstallerPath()
	if !utils.FileExists(installer) {
		return types.NewError(types.ErrCodeNotFound, "redistributable installer not found", nil).
			WithContext("path", installer)
	}

	s.logger.Info().Str("installer", installer).Str("target", s.cfg.TempDir).
		Msg("Extracting redistributable")

	output, err := s.run.Run(ctx, "msiexec",
		"/a", installer,
		"/qn",
		"TARGETDIR="+s.cfg.TempDir)
	if err != nil {
		return types.NewError(types.ErrCodeTool, "installer tool failed", err)
	}

	s.logger.Debug().Str("output", output).Msg("Installer tool finished")
	return nil
}

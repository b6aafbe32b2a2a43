package steps

import (
	"context"

	"github.com/rs/zerolog"

	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/types"
	"ucrtpack/internal/utils"
)

// ExtractISO unpacks the SDK image into the working directory with the
// archive tool in overwrite-all mode. The tool's exit code propagates
// unchanged on failure.
type ExtractISO struct {
	cfg    *config.Config
	run    utils.CommandRunner
	logger zerolog.Logger
}

func NewExtractISO(cfg *config.Config, run utils.CommandRunner) *ExtractISO {
	return &ExtractISO{
		cfg:    cfg,
		run:    run,
		logger: logging.GetLogger("extract-iso"),
	}
}

func (s *ExtractISO) Name() string {
	return "extract-iso"
}

func (s *ExtractISO) Run(ctx context.Context) error {
	if _, err := s.run.Look("7z"); err != nil {
		return err
	}

	isoPath := s.cfg.ISOPath()
	if !utils.FileExists(isoPath) {
		return types.NewError(types.ErrCodeNotFound, "SDK image not found", nil).
			WithContext("path", isoPath)
	}

	if s.cfg.ISOChecksum != "" {
		if err := s.checkIntegrity(isoPath); err != nil {
			return err
		}
	}

	s.logger.Info().Str("iso", isoPath).Str("dest", s.cfg.WorkDir).Msg("Extracting SDK image")

	output, err := s.run.Run(ctx, "7z", "x", isoPath, "-o"+s.cfg.WorkDir, "-aoa")
	if err != nil {
		return types.NewError(types.ErrCodeTool, "archive tool failed", err)
	}

	s.logger.Debug().Str("output", output).Msg("Archive tool finished")
	return nil
}

func (s *ExtractISO) checkIntegrity(isoPath string) error {
	s.logger.Info().Str("iso", isoPath).Msg("Verifying image checksum")

	sum, err := utils.HashFile(isoPath)
	if err != nil {
		return types.NewError(types.ErrCodeGeneral, "failed to hash SDK image", err)
	}
	if sum != s.cfg.ISOChecksum {
		return types.NewError(types.ErrCodeVerify, "SDK image checksum mismatch", nil).
			WithContext("expected", s.cfg.ISOChecksum).
			WithContext("actual", sum)
	}
	return nil
}

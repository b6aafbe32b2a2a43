package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/types"
	"ucrtpack/internal/utils"
)

// StageDLLs copies the extracted runtime DLLs into both destination
// prefixes. Each destination is checked independently; existing identical
// files are simply overwritten, so re-runs succeed.
type StageDLLs struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func NewStageDLLs(cfg *config.Config) *StageDLLs {
	return &StageDLLs{
		cfg:    cfg,
		logger: logging.GetLogger("stage-dlls"),
	}
}

func (s *StageDLLs) Name() string {
	return "stage-dlls"
}

func (s *StageDLLs) Run(ctx context.Context) error {
	pattern := filepath.Join(s.cfg.DLLSourceDir(), "*.dll")

	for _, dst := range s.cfg.Destinations() {
		if err := ctx.Err(); err != nil {
			return err
		}

		names, err := utils.CopyGlob(pattern, dst, s.cfg.Verbose)
		if err != nil {
			return types.NewError(types.ErrCodeCopy,
				fmt.Sprintf("staging DLLs into %s failed", dst), err)
		}

		var total int64
		for _, name := range names {
			if info, statErr := os.Stat(filepath.Join(dst, name)); statErr == nil {
				total += info.Size()
			}
		}

		s.logger.Info().
			Int("count", len(names)).
			Str("size", utils.FormatBytes(total)).
			Str("dest", dst).
			Msg("Staged runtime DLLs")
	}
	return nil
}

// Package steps contains the concrete packaging steps run by the pipeline.
package steps

import (
	"context"

	"ucrtpack/internal/config"
	"ucrtpack/internal/types"
)

// Prepare creates every directory later steps write into.
type Prepare struct {
	cfg *config.Config
}

func NewPrepare(cfg *config.Config) *Prepare {
	return &Prepare{cfg: cfg}
}

func (s *Prepare) Name() string {
	return "prepare"
}

func (s *Prepare) Run(ctx context.Context) error {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return types.NewError(types.ErrCodePermission, "failed to create output directories", err)
	}
	return nil
}

package app

import (
	"context"

	"github.com/rs/zerolog"

	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/pipeline"
	"ucrtpack/internal/steps"
	"ucrtpack/internal/utils"
)

// Packager assembles the ordered packaging sequence for one run.
type Packager struct {
	cfg          *config.Config
	run          utils.CommandRunner
	expectedDLLs []string
	logger       zerolog.Logger
}

// NewPackager wires the step list. expectedDLLs comes from the manifest and
// may be nil.
func NewPackager(cfg *config.Config, run utils.CommandRunner, expectedDLLs []string) *Packager {
	return &Packager{
		cfg:          cfg,
		run:          run,
		expectedDLLs: expectedDLLs,
		logger:       logging.GetLogger("packager"),
	}
}

// Steps returns the packaging sequence in execution order.
func (p *Packager) Steps() []pipeline.Step {
	return []pipeline.Step{
		steps.NewPrepare(p.cfg),
		steps.NewExtractISO(p.cfg, p.run),
		steps.NewExtractRedist(p.cfg, p.run),
		steps.NewStageDLLs(p.cfg),
		steps.NewVerify(p.cfg, p.expectedDLLs),
	}
}

// Run executes the full sequence, stopping at the first failure.
func (p *Packager) Run(ctx context.Context) error {
	p.logger.Info().
		Str("src_dir", p.cfg.SrcDir).
		Str("prefix", p.cfg.Prefix).
		Str("library_bin", p.cfg.LibraryBin).
		Str("version", p.cfg.PkgVersion).
		Msg("Starting UCRT packaging")

	runner := pipeline.New(pipeline.Options{Logger: &p.logger})
	if err := runner.Run(ctx, p.Steps()); err != nil {
		return err
	}

	p.logger.Info().Msg("Packaging completed")
	return nil
}

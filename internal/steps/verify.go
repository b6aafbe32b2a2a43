package steps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"ucrtpack/internal/config"
	"ucrtpack/internal/logging"
	"ucrtpack/internal/types"
	"ucrtpack/internal/utils"
)

// Verify checks that both destination prefixes ended up with the same DLL
// set, and that the set matches the manifest when one pins it.
type Verify struct {
	cfg      *config.Config
	expected []string
	logger   zerolog.Logger
}

// NewVerify takes the pinned DLL set from the manifest; nil means the two
// destinations only have to agree with each other.
func NewVerify(cfg *config.Config, expected []string) *Verify {
	return &Verify{
		cfg:      cfg,
		expected: expected,
		logger:   logging.GetLogger("verify"),
	}
}

func (s *Verify) Name() string {
	return "verify"
}

func (s *Verify) Run(ctx context.Context) error {
	sets := make([][]string, 0, 2)
	for _, dst := range s.cfg.Destinations() {
		names, err := utils.ListByExt(dst, ".dll")
		if err != nil {
			return types.NewError(types.ErrCodeGeneral,
				fmt.Sprintf("failed to list %s", dst), err)
		}
		if len(names) == 0 {
			return types.NewError(types.ErrCodeVerify, "destination has no DLLs", nil).
				WithContext("path", dst)
		}
		sets = append(sets, lowered(names))
	}

	if !equalSets(sets[0], sets[1]) {
		return types.NewError(types.ErrCodeVerify, "destination DLL sets differ", nil).
			WithContext("prefix", s.cfg.Prefix).
			WithContext("library_bin", s.cfg.LibraryBin)
	}

	if s.expected != nil && !equalSets(sets[0], s.expected) {
		return types.NewError(types.ErrCodeVerify, "staged DLL set does not match manifest", nil).
			WithContext("expected", strings.Join(s.expected, ",")).
			WithContext("actual", strings.Join(sets[0], ","))
	}

	s.logger.Info().Int("count", len(sets[0])).Msg("Destination DLL sets verified")
	return nil
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	sort.Strings(out)
	return out
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

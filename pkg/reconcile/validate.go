package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// Validator checks that the configured sources describe the same entities.
// Each check fails on the first violation it finds.
type Validator struct {
	project project.Project
}

// NewValidator creates a Validator that looks up blocked well sets in p.
func NewValidator(p project.Project) *Validator {
	return &Validator{project: p}
}

// Validate runs the checks that do not depend on resolved well names, in
// order: grids, blocked well existence, properties, selectors.
func (v *Validator) Validate(ctx context.Context, cfg *sources.Config) error {
	if err := CheckGrids(ctx, cfg); err != nil {
		return err
	}
	if err := v.CheckBlockedWellSets(ctx, cfg); err != nil {
		return err
	}
	if err := CheckProperties(ctx, cfg); err != nil {
		return err
	}
	return CheckSelectors(ctx, cfg)
}

// CheckGrids verifies that blocked well sources and grid sources reference the
// same set of grids.
func CheckGrids(ctx context.Context, cfg *sources.Config) error {
	logger := logging.FromContext(ctx)

	bwGrids := make([]string, 0, len(cfg.BlockedWells))
	for _, bw := range cfg.BlockedWells {
		bwGrids = append(bwGrids, bw.Wells.Grid)
	}
	grids := make([]string, 0, len(cfg.Grids))
	for _, g := range cfg.Grids {
		grids = append(grids, g.Grid)
	}

	logger.Debug().
		Strs("blocked_well_grids", bwGrids).
		Strs("grids", grids).
		Msg("Comparing grids")

	if !sameSet(bwGrids, grids) {
		return &errors.InconsistentGridsError{
			BlockedWellGrids: distinct(bwGrids),
			Grids:            distinct(grids),
		}
	}
	logger.Info().Msg("Selected grids vs selected blocked wells OK")
	return nil
}

// CheckBlockedWellSets verifies that every blocked well set exists in its grid.
func (v *Validator) CheckBlockedWellSets(ctx context.Context, cfg *sources.Config) error {
	for _, bw := range cfg.BlockedWells {
		ok, err := v.project.HasBlockedWellSet(ctx, bw.Wells.Grid, bw.Wells.BWName)
		if err != nil {
			return fmt.Errorf("looking up blocked well set %s: %w", bw.Label(), err)
		}
		if !ok {
			return &errors.UnknownBlockedWellSetError{
				Grid:           bw.Wells.Grid,
				BlockedWellSet: bw.Wells.BWName,
			}
		}
	}
	logging.FromContext(ctx).Info().Msg("Blocked well names OK")
	return nil
}

// CheckProperties verifies that all sources expose the same property set.
// Sources are compared pairwise in order wells, blocked wells, grids and the
// first differing pair is reported.
func CheckProperties(ctx context.Context, cfg *sources.Config) error {
	left, right, ok := firstMismatch(cfg, sources.Source.PropertyFields)
	if !ok {
		return errors.NewPropertyMismatchError(left.Ref(), right.Ref(),
			left.Source.PropertyFields().Sorted(), right.Source.PropertyFields().Sorted())
	}
	logging.FromContext(ctx).Info().Msg("Properties OK")
	return nil
}

// CheckSelectors verifies that all sources expose the same selector set.
func CheckSelectors(ctx context.Context, cfg *sources.Config) error {
	left, right, ok := firstMismatch(cfg, sources.Source.SelectorFields)
	if !ok {
		return errors.NewSelectorMismatchError(left.Ref(), right.Ref(),
			left.Source.SelectorFields().Sorted(), right.Source.SelectorFields().Sorted())
	}
	logging.FromContext(ctx).Info().Msg("Selectors OK")
	return nil
}

// CheckWellNames verifies that every well and blocked well source reports on
// the same wells. On failure every source's set is reported.
func CheckWellNames(ctx context.Context, res *Resolution) error {
	for i := 1; i < len(res.Sets); i++ {
		if !sameSet(res.Sets[i-1].Wells, res.Sets[i].Wells) {
			sets := make([]errors.WellSet, len(res.Sets))
			copy(sets, res.Sets)
			return &errors.WellSetMismatchError{Sets: sets}
		}
	}
	logging.FromContext(ctx).Info().Int("wells", len(res.Wells)).Msg("Well names OK")
	return nil
}

// firstMismatch compares adjacent sources. Set equality is transitive, so
// adjacent pairs are enough to prove all sources agree.
func firstMismatch(cfg *sources.Config, fields func(sources.Source) sources.Fields) (sources.Entry, sources.Entry, bool) {
	entries := cfg.Sources()
	for i := 1; i < len(entries); i++ {
		if !fields(entries[i-1].Source).Equal(fields(entries[i].Source)) {
			return entries[i-1], entries[i], false
		}
	}
	return sources.Entry{}, sources.Entry{}, true
}

func sameSet(a, b []string) bool {
	return slices.Equal(distinct(a), distinct(b))
}

// distinct returns the sorted unique values.
func distinct(values []string) []string {
	out := slices.Clone(values)
	sort.Strings(out)
	return slices.Compact(out)
}

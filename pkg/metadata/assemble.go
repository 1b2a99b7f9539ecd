package metadata

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// Assemble derives the metadata record from reconciled sources. The canonical
// selector and property lists and the selector value ordering come from the
// first well source; validation guarantees every source exposes the same sets.
//
// A selector without a usable coding table gets an empty value list and a
// warning; this is the only soft outcome.
func Assemble(ctx context.Context, cfg *sources.Config) (*Record, []string, error) {
	first, ok := cfg.FirstWellSource()
	if !ok {
		return nil, nil, errors.NewConfigShapeError("wells", "at least one well source is required")
	}

	values, warnings := SelectorOrdering(ctx, first.Selectors)
	rec := &Record{
		Selectors:            first.Selectors.IDs(),
		Properties:           first.Properties.IDs(),
		WellNames:            nonNil(slices.Clone(first.Wells.Names)),
		RawLogNames:          WellEntries(cfg.Wells),
		BWNames:              BlockedWellEntries(cfg.BlockedWells, len(cfg.Grids)),
		GridNames:            GridEntries(cfg.Grids),
		SelectorValuesSorted: values,
	}
	return rec, warnings, nil
}

// WellEntries names the well sources: "Wells" when there is one, otherwise
// "Wells_<logrun>".
func WellEntries(wells []*sources.WellSource) []WellEntry {
	entries := make([]WellEntry, 0, len(wells))
	for _, w := range wells {
		name := constants.DisplayWells
		if len(wells) > 1 {
			name += "_" + w.Wells.Logrun
		}
		entries = append(entries, WellEntry{
			Logrun:      w.Wells.Logrun,
			Trajectory:  w.Wells.Trajectory,
			DisplayName: name,
		})
	}
	return entries
}

// BlockedWellEntries names the blocked well sources: "Blocked wells" when
// there is one; the blocked well set name when there are several on a single
// grid; "<bwname>-<grid>" otherwise.
func BlockedWellEntries(bws []*sources.BlockedWellSource, grids int) []BlockedWellEntry {
	entries := make([]BlockedWellEntry, 0, len(bws))
	for _, bw := range bws {
		var name string
		switch {
		case len(bws) == 1:
			name = constants.DisplayBlockedWells
		case grids == 1:
			name = bw.Wells.BWName
		default:
			name = bw.Wells.BWName + "-" + bw.Wells.Grid
		}
		entries = append(entries, BlockedWellEntry{
			Name:        bw.Wells.BWName,
			Grid:        bw.Wells.Grid,
			DisplayName: name,
		})
	}
	return entries
}

// GridEntries names the grid sources: "Grid" when there is one, otherwise the
// grid name.
func GridEntries(grids []*sources.GridSource) []GridEntry {
	entries := make([]GridEntry, 0, len(grids))
	for _, g := range grids {
		name := g.Grid
		if len(grids) == 1 {
			name = constants.DisplayGrid
		}
		entries = append(entries, GridEntry{Name: g.Grid, DisplayName: name})
	}
	return entries
}

// SelectorOrdering returns, per selector, the display values of its coding
// table ordered by code key with repeats removed. Repeats occur where merged
// raw logs share a coding. A selector listed twice appears once.
func SelectorOrdering(ctx context.Context, selectors sources.Fields) (SelectorValues, []string) {
	logger := logging.FromContext(ctx)
	out := make(SelectorValues, 0, selectors.Len())
	var warnings []string

	seen := make(map[string]bool)
	for _, id := range selectors.IDs() {
		if seen[id] {
			continue
		}
		seen[id] = true

		values, err := orderedValues(selectors, id)
		if err != nil {
			msg := fmt.Sprintf("no coding for %s is given for raw logs, the order of %s is unknown: %v", id, id, err)
			logger.Warn().
				Str(logging.EventKey, logging.EventNoCoding).
				Str("selector", id).
				Err(err).
				Msg("Selector order unknown")
			warnings = append(warnings, msg)
			values = []string{}
		} else {
			logger.Debug().Str("selector", id).Strs("values", values).Msg("Selector order")
		}
		out = append(out, SelectorOrder{Selector: id, Values: values})
	}
	return out, warnings
}

func orderedValues(selectors sources.Fields, id string) ([]string, error) {
	cfg, ok := selectors.Config(id)
	if !ok || !cfg.HasCodes() {
		return nil, fmt.Errorf("no codes table")
	}
	sorted, err := cfg.Codes.Sorted()
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(sorted))
	for _, v := range sorted.Values() {
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values, nil
}

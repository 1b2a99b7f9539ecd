package reconcile

import (
	"context"
	"fmt"

	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// Resolution is the outcome of well name resolution.
type Resolution struct {
	// Wells is the effective, deduplicated and sorted well list.
	Wells []string

	// Sets holds the wells each well and blocked well source reports on:
	// its explicit list when one was given, Wells otherwise.
	Sets []errors.WellSet

	// Queried is true when the names came from the project's blocked well sets.
	Queried bool

	Warnings []string
}

// Resolver determines the wells to report on.
type Resolver struct {
	project project.Project
}

// NewResolver creates a Resolver that falls back to the blocked well sets of p.
func NewResolver(p project.Project) *Resolver {
	return &Resolver{project: p}
}

// Resolve collects the explicit well lists of all well and blocked well
// sources. When none is given it asks the project which wells are blocked into
// each blocked well set. The union is assigned back to every source.
//
// Finding no wells is not an error: a warning is logged and the sources get an
// empty list.
func (r *Resolver) Resolve(ctx context.Context, cfg *sources.Config) (*Resolution, error) {
	logger := logging.FromContext(ctx)
	res := &Resolution{}

	entries := cfg.WellScopedEntries()
	var lists [][]string
	for _, e := range entries {
		if names := e.Source.(sources.WellScoped).WellNames(); len(names) > 0 {
			lists = append(lists, names)
		}
	}

	if len(lists) == 0 {
		res.Queried = true
		for _, bw := range cfg.BlockedWells {
			names, err := r.project.BlockedWellNames(ctx, bw.Wells.Grid, bw.Wells.BWName)
			if err != nil {
				return nil, fmt.Errorf("resolving wells of blocked well set %s: %w", bw.Label(), err)
			}
			logging.FromContext(logging.WithGrid(ctx, bw.Wells.Grid)).Debug().
				Str("bwname", bw.Wells.BWName).
				Int("wells", len(names)).
				Msg("Resolved blocked well names")
			lists = append(lists, names)
		}
	}

	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	res.Wells = distinct(all)
	if res.Wells == nil {
		res.Wells = []string{}
	}

	if len(res.Wells) == 0 {
		msg := "no wells found"
		logger.Warn().Str(logging.EventKey, logging.EventNoWells).Msg(msg)
		res.Warnings = append(res.Warnings, msg)
	}

	for _, e := range entries {
		src := e.Source.(sources.WellScoped)
		set := errors.WellSet{Source: e.Ref(), Wells: res.Wells}
		if explicit := src.WellNames(); len(explicit) > 0 {
			set.Wells = distinct(explicit)
			if !sameSet(explicit, res.Wells) {
				msg := fmt.Sprintf("%s lists %d wells, replaced by the %d wells of all sources", e.Ref(), len(set.Wells), len(res.Wells))
				logging.FromContext(logging.WithSource(ctx, e.Ref())).Warn().
					Str(logging.EventKey, logging.EventSubsetOverwritten).
					Msg(msg)
				res.Warnings = append(res.Warnings, msg)
			}
		}
		res.Sets = append(res.Sets, set)
		src.SetWellNames(res.Wells)
	}

	return res, nil
}

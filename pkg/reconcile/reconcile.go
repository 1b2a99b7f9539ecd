// Package reconcile verifies that the configured upscaling QC sources agree
// with each other and resolves the wells they report on.
//
// Run executes the checks in a fixed order and stops at the first failure:
//
//  1. blocked well grids equal grid source grids
//  2. every blocked well set exists in its grid
//  3. all sources expose the same properties
//  4. all sources expose the same selectors
//  5. after resolution, all well and blocked well sources report on the same wells
//
// All of this happens before any table is extracted.
package reconcile

import (
	"context"
	"time"

	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// WellNames is the effective well list, now set on every well and blocked well source.
	WellNames []string

	// Warnings contains the non-fatal outcomes, e.g. no wells found.
	Warnings []string

	// Queried is true when the well names came from the project.
	Queried bool

	// Duration of the reconciliation.
	Duration time.Duration
}

// Run validates cfg against p, resolves the wells and backfills them onto the
// sources. Nothing is resolved when one of the first four checks fails.
func Run(ctx context.Context, p project.Project, cfg *sources.Config) (*Result, error) {
	start := time.Now()
	ctx = logging.WithOperation(ctx, "reconcile")

	if err := NewValidator(p).Validate(ctx, cfg); err != nil {
		return nil, err
	}

	res, err := NewResolver(p).Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := CheckWellNames(ctx, res); err != nil {
		return nil, err
	}

	return &Result{
		WellNames: res.Wells,
		Warnings:  res.Warnings,
		Queried:   res.Queried,
		Duration:  time.Since(start),
	}, nil
}

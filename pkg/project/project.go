// Package project declares the host-project collaborators consumed by the
// upscaling QC core: the blocked well object model and table extraction.
//
// The core never talks to a modeling application directly. A Host is opened by
// the caller (see internal/project for the snapshot backends) and handed to the
// reconciliation and export steps.
package project

import (
	"context"
	"io"

	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

// Project exposes the blocked well sets of the host project's grids.
type Project interface {
	// BlockedWellNames returns the wells blocked into a blocked well set of a grid.
	BlockedWellNames(ctx context.Context, grid, bwname string) ([]string, error)

	// HasBlockedWellSet reports whether a grid has a blocked well set of that name.
	HasBlockedWellSet(ctx context.Context, grid, bwname string) (bool, error)
}

// Extractor returns the data table of a configured source.
type Extractor interface {
	Extract(ctx context.Context, src sources.Source) (*table.Table, error)
}

// Host is a project handle that can also extract tables.
type Host interface {
	Project
	Extractor
	io.Closer
}

// Package upscalingqc reconciles the quality-control data of an upscaling
// workflow: raw well logs, blocked well logs and grid properties read from a
// reservoir-modeling project.
//
// A run checks that the configured sources agree on grids, blocked well sets,
// properties, selectors and wells, resolves the wells to report on and derives
// a metadata record. Export then writes the tagged tables and the record to a
// folder:
//
//	qc, err := upscalingqc.Load(ctx, "upscaling_qc.yaml", host)
//	if err != nil {
//	    return err // consistency faults are reported before any extraction
//	}
//	result, err := qc.Export(ctx, "")
package upscalingqc

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/agentstation/upscalingqc/pkg/export"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/metadata"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/reconcile"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// QC is a reconciled upscaling QC run
type QC interface {
	// RunID returns the identifier attached to the run's log events
	RunID() string

	// Config returns the sources, with resolved well names
	Config() *sources.Config

	// WellNames returns the wells the run reports on
	WellNames() []string

	// Metadata returns the metadata record
	Metadata() *metadata.Record

	// Warnings returns the non-fatal outcomes of reconciliation and metadata assembly
	Warnings() []string

	// Export extracts every source and writes the tables and the metadata record
	// into dir, or into the configured output folder when dir is empty
	Export(ctx context.Context, dir string) (*export.Result, error)
}

// qc is the internal implementation of the QC interface
type qc struct {
	config    *config
	extractor project.Extractor
	sources   *sources.Config
	result    *reconcile.Result
	record    *metadata.Record
	warnings  []string
}

// New validates cfg against the project, resolves the wells and assembles the
// metadata record. Consistency faults are returned before the extractor is used.
func New(ctx context.Context, p project.Project, x project.Extractor, cfg *sources.Config, opts ...Option) (QC, error) {
	c, err := defaultConfig().apply(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}

	q := &qc{
		config:    c,
		extractor: x,
		sources:   cfg,
	}
	ctx = q.context(ctx)

	q.result, err = reconcile.Run(ctx, p, cfg)
	if err != nil {
		return nil, err
	}

	rec, warnings, err := metadata.Assemble(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("assembling metadata: %w", err)
	}
	q.record = rec
	q.warnings = append(slices.Clone(q.result.Warnings), warnings...)

	return q, nil
}

// Load parses the QC configuration file at path and calls New with host as
// both project and extractor.
func Load(ctx context.Context, path string, host project.Host, opts ...Option) (QC, error) {
	cfg, err := sources.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, host, host, cfg, opts...)
}

func (q *qc) context(ctx context.Context) context.Context {
	return logging.WithRunID(logging.WithLogger(ctx, q.config.logger), q.config.runID)
}

// RunID returns the run identifier
func (q *qc) RunID() string {
	return q.config.runID
}

// Config returns the reconciled sources
func (q *qc) Config() *sources.Config {
	return q.sources
}

// WellNames returns a copy of the resolved well names
func (q *qc) WellNames() []string {
	return slices.Clone(q.result.WellNames)
}

// Metadata returns the metadata record
func (q *qc) Metadata() *metadata.Record {
	return q.record
}

// Warnings returns a copy of the collected warnings
func (q *qc) Warnings() []string {
	return slices.Clone(q.warnings)
}

// Export writes the tables and the metadata record
func (q *qc) Export(ctx context.Context, dir string) (*export.Result, error) {
	if q.extractor == nil {
		return nil, fmt.Errorf("export: no extractor configured")
	}
	if dir == "" {
		dir = q.config.outputDir
	}
	ctx = logging.WithOperation(q.context(ctx), "export")
	return export.New(q.extractor).Run(ctx, q.sources, q.record, dir)
}

// Package export extracts the data tables of every configured source, tags
// the rows with the identity of their source and writes the flat file layout:
// well.csv, bw.csv, grid.csv and metadata.json.
//
// Either every file is written or none is.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/metadata"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

// Result describes a completed export.
type Result struct {
	// Dir is the destination folder.
	Dir string `json:"dir" yaml:"dir"`

	// Files are the written paths, in write order.
	Files []string `json:"files" yaml:"files"`

	// Rows is the number of data rows written per source kind.
	Rows map[sources.Kind]int `json:"rows" yaml:"rows"`

	CompletedAt utc.Time `json:"completed_at" yaml:"completed_at"`
}

// Exporter pulls tables from an extraction collaborator.
type Exporter struct {
	extractor project.Extractor
}

// New creates an Exporter.
func New(extractor project.Extractor) *Exporter {
	return &Exporter{extractor: extractor}
}

// Tables holds the concatenated table of each source kind.
type Tables struct {
	Wells        *table.Table
	BlockedWells *table.Table
	Grid         *table.Table
}

// Run extracts, tags and concatenates the tables of cfg and writes them with
// rec into dir. The parent of dir must exist; dir is created when absent.
func (e *Exporter) Run(ctx context.Context, cfg *sources.Config, rec *metadata.Record, dir string) (*Result, error) {
	if rec == nil {
		return nil, fmt.Errorf("export: metadata record is required")
	}
	logger := logging.FromContext(ctx)

	dir = filepath.Clean(dir)
	if err := checkParent(dir); err != nil {
		return nil, err
	}

	logger.Info().Msg("Extracting data")
	tables, err := e.Extract(ctx, cfg)
	if err != nil {
		return nil, err
	}

	files, err := render(tables, rec)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	paths, err := writeAll(dir, files)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("dir", dir).Msg("Output written")
	return &Result{
		Dir:   dir,
		Files: paths,
		Rows: map[sources.Kind]int{
			sources.KindWells:        tables.Wells.Len(),
			sources.KindBlockedWells: tables.BlockedWells.Len(),
			sources.KindGrid:         tables.Grid.Len(),
		},
		CompletedAt: utc.Now(),
	}, nil
}

// Extract pulls one table per source, checks its columns and tags its rows,
// then concatenates the tables per kind.
func (e *Exporter) Extract(ctx context.Context, cfg *sources.Config) (*Tables, error) {
	var wells, bws, grids []*table.Table

	for _, w := range cfg.Wells {
		sctx := logging.WithSource(ctx, w.Label())
		logging.FromContext(sctx).Info().Msg("Extracting data from raw logs")
		t, err := e.extract(sctx, w, true)
		if err != nil {
			return nil, err
		}
		t.Tag(metadata.ColumnLogrun, w.Wells.Logrun)
		t.Tag(metadata.ColumnTrajectory, w.Wells.Trajectory)
		wells = append(wells, t)
	}

	for _, bw := range cfg.BlockedWells {
		sctx := logging.WithSource(logging.WithGrid(ctx, bw.Wells.Grid), bw.Label())
		logging.FromContext(sctx).Info().Msg("Extracting data from blocked wells")
		t, err := e.extract(sctx, bw, true)
		if err != nil {
			return nil, err
		}
		t.Tag(metadata.ColumnGrid, bw.Wells.Grid)
		t.Tag(metadata.ColumnName, bw.Wells.BWName)
		bws = append(bws, t)
	}

	for _, g := range cfg.Grids {
		sctx := logging.WithGrid(ctx, g.Grid)
		logging.FromContext(sctx).Info().Msg("Extracting data from grids")
		t, err := e.extract(sctx, g, false)
		if err != nil {
			return nil, err
		}
		t.Tag(metadata.ColumnName, g.Grid)
		grids = append(grids, t)
	}

	return &Tables{
		Wells:        table.Concat(wells...),
		BlockedWells: table.Concat(bws...),
		Grid:         table.Concat(grids...),
	}, nil
}

// extract calls the collaborator once and returns a copy of its table that is
// safe to tag.
func (e *Exporter) extract(ctx context.Context, src sources.Source, perWell bool) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := e.extractor.Extract(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("extracting %s source %s: %w", src.Kind(), src.Label(), err)
	}
	if err := RequiredColumns(src, perWell).Check(t); err != nil {
		return nil, err
	}
	if t == nil {
		return table.New(), nil
	}
	return t.Project(t.Columns...), nil
}

// RequiredColumns is the column contract of a source's extraction result:
// every selector and property, plus the well column for per-well data.
func RequiredColumns(src sources.Source, perWell bool) table.Contract {
	var cols []string
	if perWell {
		cols = append(cols, constants.WellColumn)
	}
	cols = append(cols, src.SelectorFields().IDs()...)
	cols = append(cols, src.PropertyFields().IDs()...)
	return table.Contract{Kind: src.Kind().String(), Source: src.Label(), Required: cols}
}

type file struct {
	name string
	data []byte
}

func render(tables *Tables, rec *metadata.Record) ([]file, error) {
	files := make([]file, 0, 4)
	for _, f := range []struct {
		name string
		t    *table.Table
	}{
		{constants.WellsFile, tables.Wells},
		{constants.BlockedWellsFile, tables.BlockedWells},
		{constants.GridFile, tables.Grid},
	} {
		var buf bytes.Buffer
		if err := f.t.WriteCSV(&buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.name, err)
		}
		files = append(files, file{name: f.name, data: buf.Bytes()})
	}

	data, err := metadata.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", constants.MetadataFile, err)
	}
	return append(files, file{name: constants.MetadataFile, data: data}), nil
}

func checkParent(dir string) error {
	parent := filepath.Dir(dir)
	info, err := os.Stat(parent)
	if err != nil {
		return errors.WrapIO("stat", parent, fmt.Errorf("cannot create folder, ensure that %s exists: %w", parent, err))
	}
	if !info.IsDir() {
		return errors.WrapIO("stat", parent, fmt.Errorf("%s is not a directory", parent))
	}
	return nil
}

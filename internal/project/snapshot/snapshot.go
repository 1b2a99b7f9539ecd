// Package snapshot serves a host project from a YAML or JSON document holding
// the blocked well sets, well logs and grid cells of a modeling project.
//
// Layout:
//
//	grids:
//	  Geogrid:
//	    blocked_wells:
//	      BW:
//	        wells: [W1, W2]
//	        logs:
//	          - {WELL: W1, ZONE: 1, PORO: 0.21}
//	    cells:
//	      - {ZONE: 1, PORO: 0.19}
//	wells:
//	  Drilled trajectory:
//	    log:
//	      - {WELL: W1, ZONE: 1, PORO: 0.2}
package snapshot

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/upscalingqc/internal/project/extract"
	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

// Sample is one decoded row of log or cell data.
type Sample = map[string]any

// Document is the decoded snapshot.
type Document struct {
	Grids map[string]Grid `yaml:"grids" json:"grids"`

	// Wells holds raw logs keyed by trajectory, then logrun.
	Wells map[string]map[string][]Sample `yaml:"wells" json:"wells"`
}

// Grid holds the blocked well sets and cell samples of one grid.
type Grid struct {
	BlockedWells map[string]BlockedWellSet `yaml:"blocked_wells" json:"blocked_wells"`
	Cells        []Sample                  `yaml:"cells" json:"cells"`
}

// BlockedWellSet holds the wells of a blocked well set and their blocked logs.
type BlockedWellSet struct {
	Wells []string `yaml:"wells" json:"wells"`
	Logs  []Sample `yaml:"logs" json:"logs"`
}

// WellNames returns the listed wells, or the wells found in the logs when
// none are listed.
func (b BlockedWellSet) WellNames() []string {
	if len(b.Wells) > 0 {
		return slices.Clone(b.Wells)
	}
	var names []string
	for _, s := range b.Logs {
		name := extract.Format(s[constants.WellColumn])
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Project is a project.Host over a Document.
type Project struct {
	doc *Document
}

var _ project.Host = (*Project)(nil)

// New creates a Project from a decoded document.
func New(doc *Document) *Project {
	if doc == nil {
		doc = &Document{}
	}
	return &Project{doc: doc}
}

// Parse decodes a YAML or JSON snapshot.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return &doc, nil
}

// Open reads a snapshot file.
func Open(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return New(doc), nil
}

// Document returns the underlying document.
func (p *Project) Document() *Document {
	return p.doc
}

// BlockedWellNames implements project.Project.
func (p *Project) BlockedWellNames(_ context.Context, grid, bwname string) ([]string, error) {
	set, err := p.blockedWellSet(grid, bwname)
	if err != nil {
		return nil, err
	}
	return set.WellNames(), nil
}

// HasBlockedWellSet implements project.Project.
func (p *Project) HasBlockedWellSet(_ context.Context, grid, bwname string) (bool, error) {
	_, ok := p.doc.Grids[grid].BlockedWells[bwname]
	return ok, nil
}

// Extract implements project.Extractor.
func (p *Project) Extract(ctx context.Context, src sources.Source) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var samples []Sample
	switch s := src.(type) {
	case *sources.WellSource:
		logruns, ok := p.doc.Wells[s.Wells.Trajectory]
		if !ok {
			return nil, errors.NewNotFoundError("trajectory", s.Wells.Trajectory)
		}
		if samples, ok = logruns[s.Wells.Logrun]; !ok {
			return nil, errors.NewNotFoundError("logrun", s.Wells.Logrun)
		}
	case *sources.BlockedWellSource:
		set, err := p.blockedWellSet(s.Wells.Grid, s.Wells.BWName)
		if err != nil {
			return nil, err
		}
		samples = set.Logs
	case *sources.GridSource:
		g, ok := p.doc.Grids[s.Grid]
		if !ok {
			return nil, errors.NewNotFoundError("grid", s.Grid)
		}
		samples = g.Cells
	default:
		return nil, errors.NewNotFoundError("source kind", string(src.Kind()))
	}
	return extract.Table(src, extract.Rows(samples)), nil
}

// Close implements io.Closer.
func (p *Project) Close() error {
	return nil
}

func (p *Project) blockedWellSet(grid, bwname string) (BlockedWellSet, error) {
	g, ok := p.doc.Grids[grid]
	if !ok {
		return BlockedWellSet{}, errors.NewNotFoundError("grid", grid)
	}
	set, ok := g.BlockedWells[bwname]
	if !ok {
		return BlockedWellSet{}, errors.NewNotFoundError("blocked well set", grid+"/"+bwname)
	}
	return set, nil
}

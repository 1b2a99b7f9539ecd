// Package sources defines the descriptors of the data sources configured for an
// upscaling QC run: raw well logs, blocked well logs and grid properties.
//
// Each descriptor carries the properties and selectors it exposes and the entities
// it covers. Descriptors are built once by Parse and are only mutated afterwards to
// backfill the resolved well names.
//
// Example usage:
//
//	cfg, err := sources.ParseFile("upscaling_qc.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, entry := range cfg.Sources() {
//	    fmt.Println(entry.Ref(), entry.Source.Label())
//	}
package sources

import (
	"fmt"
	"slices"

	"github.com/agentstation/upscalingqc/pkg/constants"
)

// Kind identifies the kind of a data source.
type Kind string

// String returns the string representation of a source kind.
func (k Kind) String() string {
	return string(k)
}

// Source kinds. The values match the top-level keys of the configuration payload.
const (
	KindWells        Kind = "wells"
	KindBlockedWells Kind = "blockedwells"
	KindGrid         Kind = "grid"
)

// Kinds returns all source kinds in validation order.
func Kinds() []Kind {
	return []Kind{KindWells, KindBlockedWells, KindGrid}
}

// IsValid returns true if the Kind is one of the defined constants.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds(), k)
}

// Source is implemented by every descriptor variant.
type Source interface {
	// Kind returns the kind of this source
	Kind() Kind

	// Label returns a short human-readable identity, used in logs and errors
	Label() string

	// PropertyFields returns the properties exposed by this source
	PropertyFields() Fields

	// SelectorFields returns the categorical selectors exposed by this source
	SelectorFields() Fields
}

// WellScoped is implemented by sources that report on a list of wells.
type WellScoped interface {
	Source

	// WellNames returns the configured or resolved well names
	WellNames() []string

	// SetWellNames replaces the well names
	SetWellNames(names []string)
}

// Context holds what every source exposes.
type Context struct {
	Properties Fields
	Selectors  Fields
}

// PropertyFields returns the properties.
func (c Context) PropertyFields() Fields { return c.Properties }

// SelectorFields returns the selectors.
func (c Context) SelectorFields() Fields { return c.Selectors }

// WellRef selects raw well log data.
type WellRef struct {
	Names      []string
	Trajectory string
	Logrun     string
}

// WellSource is a raw well log source.
type WellSource struct {
	Context
	Wells WellRef
}

// NewWellSource creates a well source with the default trajectory and logrun.
func NewWellSource(properties, selectors Fields) *WellSource {
	return &WellSource{
		Context: Context{Properties: properties, Selectors: selectors},
		Wells: WellRef{
			Trajectory: constants.DefaultTrajectory,
			Logrun:     constants.DefaultLogrun,
		},
	}
}

// Kind implements Source.
func (s *WellSource) Kind() Kind { return KindWells }

// Label implements Source.
func (s *WellSource) Label() string {
	return fmt.Sprintf("%s (%s)", s.Wells.Logrun, s.Wells.Trajectory)
}

// WellNames implements WellScoped.
func (s *WellSource) WellNames() []string { return s.Wells.Names }

// SetWellNames implements WellScoped.
func (s *WellSource) SetWellNames(names []string) {
	s.Wells.Names = slices.Clone(names)
}

// BlockedWellRef selects a blocked well set of a grid.
type BlockedWellRef struct {
	Grid   string
	BWName string
	Names  []string
}

// BlockedWellSource is a blocked well log source.
type BlockedWellSource struct {
	Context
	Wells BlockedWellRef
}

// Kind implements Source.
func (s *BlockedWellSource) Kind() Kind { return KindBlockedWells }

// Label implements Source.
func (s *BlockedWellSource) Label() string {
	return fmt.Sprintf("%s <- %s", s.Wells.BWName, s.Wells.Grid)
}

// WellNames implements WellScoped.
func (s *BlockedWellSource) WellNames() []string { return s.Wells.Names }

// SetWellNames implements WellScoped.
func (s *BlockedWellSource) SetWellNames(names []string) {
	s.Wells.Names = slices.Clone(names)
}

// GridSource is a grid property source.
type GridSource struct {
	Context
	Grid string
}

// Kind implements Source.
func (s *GridSource) Kind() Kind { return KindGrid }

// Label implements Source.
func (s *GridSource) Label() string { return s.Grid }

// Config is the parsed configuration payload: the three ordered source lists.
type Config struct {
	Wells        []*WellSource
	Grids        []*GridSource
	BlockedWells []*BlockedWellSource
}

// Entry is a source together with its position in the configuration.
type Entry struct {
	Source Source
	Index  int
}

// Ref returns the configuration reference of the source, e.g. "blockedwells[1]".
func (e Entry) Ref() string {
	return fmt.Sprintf("%s[%d]", e.Source.Kind(), e.Index)
}

// Sources returns every source in validation order: wells, blocked wells, grids.
func (c *Config) Sources() []Entry {
	entries := make([]Entry, 0, len(c.Wells)+len(c.BlockedWells)+len(c.Grids))
	for i, s := range c.Wells {
		entries = append(entries, Entry{Source: s, Index: i})
	}
	for i, s := range c.BlockedWells {
		entries = append(entries, Entry{Source: s, Index: i})
	}
	for i, s := range c.Grids {
		entries = append(entries, Entry{Source: s, Index: i})
	}
	return entries
}

// WellScoped returns the well and blocked well sources, in that order.
func (c *Config) WellScoped() []WellScoped {
	scoped := make([]WellScoped, 0, len(c.Wells)+len(c.BlockedWells))
	for _, s := range c.Wells {
		scoped = append(scoped, s)
	}
	for _, s := range c.BlockedWells {
		scoped = append(scoped, s)
	}
	return scoped
}

// WellScopedEntries returns the well and blocked well sources with their positions.
func (c *Config) WellScopedEntries() []Entry {
	entries := make([]Entry, 0, len(c.Wells)+len(c.BlockedWells))
	for i, s := range c.Wells {
		entries = append(entries, Entry{Source: s, Index: i})
	}
	for i, s := range c.BlockedWells {
		entries = append(entries, Entry{Source: s, Index: i})
	}
	return entries
}

// FirstWellSource returns the first well source. Parse guarantees there is one.
func (c *Config) FirstWellSource() (*WellSource, bool) {
	if len(c.Wells) == 0 {
		return nil, false
	}
	return c.Wells[0], true
}

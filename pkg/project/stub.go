package project

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

// Stub is an in-memory Host. Blocked well sets are keyed by grid then set
// name; tables are keyed by source label. Every call is recorded.
type Stub struct {
	BlockedWells map[string]map[string][]string
	Tables       map[string]*table.Table

	// ExtractFunc overrides Tables when set.
	ExtractFunc func(ctx context.Context, src sources.Source) (*table.Table, error)

	// Err, when set, is returned by every call.
	Err error

	Calls []string
}

var _ Host = (*Stub)(nil)

// BlockedWellNames implements Project.
func (s *Stub) BlockedWellNames(_ context.Context, grid, bwname string) ([]string, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("BlockedWellNames(%s, %s)", grid, bwname))
	if s.Err != nil {
		return nil, s.Err
	}
	names, ok := s.BlockedWells[grid][bwname]
	if !ok {
		return nil, fmt.Errorf("no blocked well set %s in grid %s", bwname, grid)
	}
	return slices.Clone(names), nil
}

// HasBlockedWellSet implements Project.
func (s *Stub) HasBlockedWellSet(_ context.Context, grid, bwname string) (bool, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("HasBlockedWellSet(%s, %s)", grid, bwname))
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.BlockedWells[grid][bwname]
	return ok, nil
}

// Extract implements Extractor.
func (s *Stub) Extract(ctx context.Context, src sources.Source) (*table.Table, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("Extract(%s)", src.Label()))
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ExtractFunc != nil {
		return s.ExtractFunc(ctx, src)
	}
	t, ok := s.Tables[src.Label()]
	if !ok {
		return nil, fmt.Errorf("no table for source %s", src.Label())
	}
	return t, nil
}

// Close implements io.Closer.
func (s *Stub) Close() error {
	return nil
}

// Extractions returns the number of Extract calls recorded.
func (s *Stub) Extractions() int {
	n := 0
	for _, c := range s.Calls {
		if strings.HasPrefix(c, "Extract(") {
			n++
		}
	}
	return n
}

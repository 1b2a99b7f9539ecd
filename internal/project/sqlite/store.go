// Package sqlite serves a host project from a SQLite file. The schema stores
// blocked well sets and, in long format, the samples of raw well logs,
// blocked well logs and grid cells.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/agentstation/upscalingqc/internal/project/extract"
	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

//go:embed schema.sql
var schemaSQL string

// Store is a project.Host backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ project.Host = (*Store)(nil)

// pragmas are applied by the driver to every pooled connection.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasBlockedWellSet implements project.Project.
func (s *Store) HasBlockedWellSet(ctx context.Context, grid, bwname string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blocked_well_sets WHERE grid = ? AND bwname = ?`,
		grid, bwname).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying blocked well sets: %w", err)
	}
	return n > 0, nil
}

// BlockedWellNames implements project.Project.
func (s *Store) BlockedWellNames(ctx context.Context, grid, bwname string) ([]string, error) {
	ok, err := s.HasBlockedWellSet(ctx, grid, bwname)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("blocked well set", grid+"/"+bwname)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT well FROM blocked_wells WHERE grid = ? AND bwname = ? ORDER BY well`,
		grid, bwname)
	if err != nil {
		return nil, fmt.Errorf("querying blocked wells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning blocked well: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Extract implements project.Extractor.
func (s *Store) Extract(ctx context.Context, src sources.Source) (*table.Table, error) {
	key := sampleKey{kind: string(src.Kind())}
	switch t := src.(type) {
	case *sources.WellSource:
		key.trajectory, key.logrun = t.Wells.Trajectory, t.Wells.Logrun
	case *sources.BlockedWellSource:
		key.grid, key.bwname = t.Wells.Grid, t.Wells.BWName
	case *sources.GridSource:
		key.grid = t.Grid
	default:
		return nil, errors.NewNotFoundError("source kind", string(src.Kind()))
	}

	samples, err := s.samples(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.NewNotFoundError(src.Kind().String()+" data", src.Label())
	}
	return extract.Table(src, samples), nil
}

type sampleKey struct {
	kind       string
	grid       string
	bwname     string
	trajectory string
	logrun     string
}

func (s *Store) samples(ctx context.Context, key sampleKey) ([]table.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_id, column_name, value FROM samples
		WHERE kind = ? AND grid = ? AND bwname = ? AND trajectory = ? AND logrun = ?
		ORDER BY row_id`,
		key.kind, key.grid, key.bwname, key.trajectory, key.logrun)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []table.Row
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id            int64
			column, value string
		)
		if err := rows.Scan(&id, &column, &value); err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, table.Row{})
		}
		out[i][column] = value
	}
	return out, rows.Err()
}

// Import loads a snapshot document into the store, in one transaction. Every
// blocked well set and sample group the document covers replaces what the
// store held for it; groups the document does not mention are left alone.
func (s *Store) Import(ctx context.Context, doc *snapshot.Document) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	insertSet, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO blocked_well_sets (grid, bwname) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertSet.Close() }()
	deleteWells, err := tx.PrepareContext(ctx, `DELETE FROM blocked_wells WHERE grid = ? AND bwname = ?`)
	if err != nil {
		return err
	}
	defer func() { _ = deleteWells.Close() }()
	insertWell, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO blocked_wells (grid, bwname, well) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertWell.Close() }()
	deleteSamples, err := tx.PrepareContext(ctx, `
		DELETE FROM samples
		WHERE kind = ? AND grid = ? AND bwname = ? AND trajectory = ? AND logrun = ?`)
	if err != nil {
		return err
	}
	defer func() { _ = deleteSamples.Close() }()
	insertSample, err := tx.PrepareContext(ctx, `
		INSERT INTO samples (kind, grid, bwname, trajectory, logrun, row_id, column_name, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertSample.Close() }()

	writeSamples := func(key sampleKey, samples []snapshot.Sample) error {
		if _, err := deleteSamples.ExecContext(ctx,
			key.kind, key.grid, key.bwname, key.trajectory, key.logrun); err != nil {
			return fmt.Errorf("clearing samples: %w", err)
		}
		for i, row := range extract.Rows(samples) {
			columns := make([]string, 0, len(row))
			for c := range row {
				columns = append(columns, c)
			}
			sort.Strings(columns)
			for _, c := range columns {
				if _, err := insertSample.ExecContext(ctx,
					key.kind, key.grid, key.bwname, key.trajectory, key.logrun, i, c, row[c]); err != nil {
					return fmt.Errorf("inserting sample: %w", err)
				}
			}
		}
		return nil
	}

	for _, grid := range sortedKeys(doc.Grids) {
		g := doc.Grids[grid]
		for _, bwname := range sortedKeys(g.BlockedWells) {
			set := g.BlockedWells[bwname]
			if _, err := insertSet.ExecContext(ctx, grid, bwname); err != nil {
				return fmt.Errorf("inserting blocked well set: %w", err)
			}
			if _, err := deleteWells.ExecContext(ctx, grid, bwname); err != nil {
				return fmt.Errorf("clearing blocked wells: %w", err)
			}
			for _, well := range set.WellNames() {
				if _, err := insertWell.ExecContext(ctx, grid, bwname, well); err != nil {
					return fmt.Errorf("inserting blocked well: %w", err)
				}
			}
			key := sampleKey{kind: string(sources.KindBlockedWells), grid: grid, bwname: bwname}
			if err := writeSamples(key, set.Logs); err != nil {
				return err
			}
		}
		key := sampleKey{kind: string(sources.KindGrid), grid: grid}
		if err := writeSamples(key, g.Cells); err != nil {
			return err
		}
	}

	for _, trajectory := range sortedKeys(doc.Wells) {
		for _, logrun := range sortedKeys(doc.Wells[trajectory]) {
			key := sampleKey{kind: string(sources.KindWells), trajectory: trajectory, logrun: logrun}
			if err := writeSamples(key, doc.Wells[trajectory][logrun]); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

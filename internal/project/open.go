// Package project opens a host project snapshot from disk. SQLite files are
// served by the sqlite backend, everything else is read as a YAML or JSON
// snapshot document.
package project

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/internal/project/sqlite"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/project"
)

// IsSQLite reports whether path names a SQLite snapshot.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Open opens the snapshot at path.
func Open(ctx context.Context, path string) (project.Host, error) {
	if path == "" {
		return nil, errors.NewConfigError("project", "no project snapshot given", nil)
	}
	if IsSQLite(path) {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	snap, err := snapshot.Open(path)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Convert imports the snapshot document at src into the SQLite file at dst.
func Convert(ctx context.Context, src, dst string) error {
	snap, err := snapshot.Open(src)
	if err != nil {
		return err
	}
	store, err := sqlite.Open(ctx, dst)
	if err != nil {
		return err
	}
	if err := store.Import(ctx, snap.Document()); err != nil {
		_ = store.Close()
		return err
	}
	return store.Close()
}

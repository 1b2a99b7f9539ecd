package export

import (
	"os"
	"path/filepath"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
)

// writeAll stages every file as a temp file in dir, then renames them into
// place. A file of an earlier run is moved aside before it is replaced. On
// failure the staged files and the files already renamed are removed and the
// earlier files are moved back, so dir holds either the new set or what it
// held before.
func writeAll(dir string, files []file) ([]string, error) {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p)
		}
	}

	for _, f := range files {
		tmp, err := stage(dir, f)
		if err != nil {
			cleanup()
			return nil, err
		}
		staged = append(staged, tmp)
	}

	type placed struct{ dest, backup string }
	done := make([]placed, 0, len(files))
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			_ = os.Remove(done[i].dest)
			if done[i].backup != "" {
				_ = os.Rename(done[i].backup, done[i].dest)
			}
		}
	}

	for i, f := range files {
		dest := filepath.Join(dir, f.name)
		backup, err := moveAside(dest, staged[i])
		if err == nil {
			if err = os.Rename(staged[i], dest); err != nil {
				if backup != "" {
					_ = os.Rename(backup, dest)
				}
				err = errors.WrapIO("move", dest, err)
			}
		}
		if err != nil {
			rollback()
			staged = staged[i:]
			cleanup()
			return nil, err
		}
		done = append(done, placed{dest: dest, backup: backup})
	}

	written := make([]string, 0, len(done))
	for _, p := range done {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
		written = append(written, p.dest)
	}
	return written, nil
}

// moveAside renames a regular file at dest next to its staged replacement and
// returns the new name. It returns "" when there is nothing to keep.
func moveAside(dest, staged string) (string, error) {
	info, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.WrapIO("stat", dest, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}
	backup := staged + ".bak"
	if err := os.Rename(dest, backup); err != nil {
		return "", errors.WrapIO("back up", dest, err)
	}
	return backup, nil
}

func stage(dir string, f file) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+f.name+".*")
	if err != nil {
		return "", errors.WrapIO("create", "temp file", err)
	}
	path := tmp.Name()

	if _, err := tmp.Write(f.data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return "", errors.WrapIO("write", f.name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return "", errors.WrapIO("write", f.name, err)
	}
	if err := os.Chmod(path, constants.FilePermissions); err != nil {
		_ = os.Remove(path)
		return "", errors.WrapIO("chmod", f.name, err)
	}
	return path, nil
}

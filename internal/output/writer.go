// Package output writes rendered artifacts to disk so that readers never see a
// partially written file.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWrite marks every failure of the write phase.
var ErrWrite = errors.New("output: write failed")

// File is one destination path and its full contents.
type File struct {
	Path string
	Data []byte
}

// Writer persists a batch of files.
type Writer interface {
	WriteAll(files []File) error
}

// AtomicWriter stages every file as a temp file next to its destination, then
// renames them into place. Existing destinations are moved aside first and put
// back if any rename fails, so a batch lands completely or not at all.
type AtomicWriter struct {
	// Perm is applied to the final files. Zero means 0o644.
	Perm os.FileMode

	rename func(oldpath, newpath string) error
}

// NewAtomicWriter returns an AtomicWriter with default permissions.
func NewAtomicWriter() *AtomicWriter {
	return &AtomicWriter{Perm: 0o644}
}

// Write stores a single file.
func (w *AtomicWriter) Write(path string, data []byte) error {
	return w.WriteAll([]File{{Path: path, Data: data}})
}

// commit tracks one file through the backup and rename steps.
type commit struct {
	path      string
	staged    string
	backup    string
	committed bool
}

// WriteAll stages all files, backs up the destinations they replace, then
// commits them. Errors name the failing path.
func (w *AtomicWriter) WriteAll(files []File) error {
	commits := make([]commit, 0, len(files))

	for _, file := range files {
		tmp, err := w.stage(file)
		if err != nil {
			w.rollback(commits)
			return err
		}
		commits = append(commits, commit{path: file.Path, staged: tmp})
	}

	for i := range commits {
		backup, err := w.backup(commits[i].path)
		if err != nil {
			w.rollback(commits)
			return fmt.Errorf("%w: %s: %v", ErrWrite, commits[i].path, err)
		}
		commits[i].backup = backup
	}

	for i := range commits {
		if err := w.renameFile(commits[i].staged, commits[i].path); err != nil {
			w.rollback(commits)
			return fmt.Errorf("%w: %s: %v", ErrWrite, commits[i].path, err)
		}
		commits[i].committed = true
	}

	for _, c := range commits {
		if c.backup != "" {
			_ = os.Remove(c.backup)
		}
	}
	return nil
}

// backup moves an existing regular file at path aside and returns where it
// went. A missing destination needs no backup.
func (w *AtomicWriter) backup(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", errors.New("destination is a directory")
	}

	reserved, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.bak")
	if err != nil {
		return "", err
	}
	name := reserved.Name()
	reserved.Close()
	if err := w.renameFile(path, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// rollback undoes a partial batch: committed files without a previous version
// are removed, backups are restored and staged temp files are deleted.
func (w *AtomicWriter) rollback(commits []commit) {
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		if c.committed && c.backup == "" {
			_ = os.Remove(c.path)
		}
		if c.backup != "" {
			_ = os.Rename(c.backup, c.path)
		}
		if !c.committed {
			_ = os.Remove(c.staged)
		}
	}
}

func (w *AtomicWriter) renameFile(oldpath, newpath string) error {
	if w.rename != nil {
		return w.rename(oldpath, newpath)
	}
	return os.Rename(oldpath, newpath)
}

func (w *AtomicWriter) stage(file File) (string, error) {
	if file.Path == "" {
		return "", fmt.Errorf("%w: empty path", ErrWrite)
	}
	dir := filepath.Dir(file.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, file.Path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, file.Path, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, file.Path, err)
	}

	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if _, err := tmp.Write(file.Data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, file.Path, err)
	}
	return tmpPath, nil
}

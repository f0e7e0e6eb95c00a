// Package output delivers a finished report: to disk, and optionally as a
// PDF copy or onto the clipboard.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// TimestampLayout formats the timestamp part of generated file names.
const TimestampLayout = "20060102_150405"

// FileName returns explicit when set, otherwise "<prefix>_<timestamp>.txt".
func FileName(explicit, prefix string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("%s_%s.txt", prefix, now.Format(TimestampLayout))
}

// WriteReport writes data to path, replacing any existing file. Writers
// are serialised on "<path>.lock" and the content lands via rename, so a
// reader never sees a partial report.
func WriteReport(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lockPath, err)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("failed to release lock on %s: %w", lockPath, uerr)
		}
		os.Remove(lockPath)
	}()

	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}

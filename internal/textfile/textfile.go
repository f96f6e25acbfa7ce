// Package textfile holds the shared file plumbing for the catalog and
// ledger stores: whole-file atomic replacement and line splitting for
// the newline-delimited record files.
package textfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oakview/circulate/errors"
)

// AtomicWrite replaces the file at path with content via a temp file
// and rename, so concurrent readers never observe a half-written file.
// Failures are wrapped as ErrPersistence and leave the prior file
// contents untouched.
func AtomicWrite(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(errors.ErrPersistence, "creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrPersistence, "writing %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrPersistence, "closing %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrPersistence, "replacing %s: %v", path, err)
	}
	return nil
}

// SplitLines splits file content into lines, tolerating a trailing
// newline and CRLF endings. An empty file has no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

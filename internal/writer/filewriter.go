// Package writer exposes sinks for finished container images.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives a complete container image.
type Sink interface {
	WriteContainer(buf []byte) error
}

// FileWriter writes container bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
	// Backup copies the existing file to Path+".bak" before it is replaced.
	Backup bool
}

// WriteContainer writes buf to the configured path atomically via temp file +
// rename. The destination keeps its previous permissions when it exists.
func (w *FileWriter) WriteContainer(buf []byte) error {
	dir := filepath.Dir(w.Path)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(w.Path); err == nil {
		perm = info.Mode().Perm()
		if w.Backup {
			if err := copyFile(w.Path, w.Path+".bak", perm); err != nil {
				return fmt.Errorf("backup: %w", err)
			}
		}
	}

	tmpFile, err := os.CreateTemp(dir, ".schdoc-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := replaceFile(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return syncDir(dir)
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

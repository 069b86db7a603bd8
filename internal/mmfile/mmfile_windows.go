//go:build windows

// Package mmfile maps schematic containers read-only so the reader can walk
// sector chains without copying the whole file.
package mmfile

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Map maps the file at path into memory and returns its contents. The
// returned slice must not be used after cleanup runs.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}

	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY,
		uint32(size>>32), uint32(size), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: CreateFileMapping %s: %w", path, err)
	}
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	windows.CloseHandle(h)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: MapViewOfFile %s: %w", path, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	unmapped := false
	cleanup := func() error {
		if unmapped {
			return nil
		}
		unmapped = true
		return windows.UnmapViewOfFile(addr)
	}
	return data, cleanup, nil
}

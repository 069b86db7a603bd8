package format

import "errors"

var (
	// ErrNotCFB indicates the buffer is not a compound file (bad magic or byte order).
	ErrNotCFB = errors.New("format: not a compound file")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrCorrupt indicates a structurally invalid container (chain loops, bad sector ids).
	ErrCorrupt = errors.New("format: corrupt container")
	// ErrUnsupported indicates the structure or feature is not supported.
	ErrUnsupported = errors.New("format: unsupported feature")
	// ErrNameTooLong indicates a directory entry name exceeds 31 UTF-16 code units.
	ErrNameTooLong = errors.New("format: directory name too long")
)

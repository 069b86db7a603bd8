package schdoc

import (
	"github.com/joshuapare/schdockit/internal/edit"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
	"github.com/joshuapare/schdockit/schdoc"
	sdedit "github.com/joshuapare/schdockit/schdoc/edit"
	"github.com/joshuapare/schdockit/schdoc/record"
)

// Container errors.
var (
	// ErrNotCFB indicates the file is not a compound file.
	ErrNotCFB = format.ErrNotCFB
	// ErrTruncated indicates the file ends inside a structure.
	ErrTruncated = format.ErrTruncated
	// ErrCorrupt indicates broken sector chains or directory entries.
	ErrCorrupt = format.ErrCorrupt
	// ErrStreamNotFound indicates a named stream does not exist.
	ErrStreamNotFound = reader.ErrStreamNotFound
)

// Document errors.
var (
	// ErrMissingStream indicates the container has no FileHeader stream.
	ErrMissingStream = schdoc.ErrMissingStream
	// ErrDanglingOwner indicates an object still refers to a removed owner.
	ErrDanglingOwner = schdoc.ErrDanglingOwner
	// ErrPayloadTooLarge indicates a record over 65535 bytes.
	ErrPayloadTooLarge = record.ErrPayloadTooLarge
	// ErrHasChildren indicates an owner was removed before its children.
	ErrHasChildren = sdedit.ErrHasChildren
)

// Save errors.
var (
	// ErrRebuildRequired is returned under StrategyInPlaceOnly when a stream
	// outgrows its sectors.
	ErrRebuildRequired = edit.ErrRebuildRequired
	// ErrLayoutNotConverged indicates the rebuilt FAT could not be sized.
	ErrLayoutNotConverged = edit.ErrLayoutNotConverged
	// ErrRebuildFailed indicates a rebuilt container did not read back.
	ErrRebuildFailed = edit.ErrRebuildFailed
)

// EncodeError names the object whose record could not be encoded.
type EncodeError = schdoc.EncodeError

package schdoc

import (
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/schdockit/internal/edit"
)

// Strategy selects how a save updates an existing container.
type Strategy = edit.Strategy

// Save strategies.
const (
	// StrategyAuto patches streams in place when they fit and rebuilds otherwise.
	StrategyAuto = edit.StrategyAuto
	// StrategyInPlaceOnly fails with ErrRebuildRequired instead of rebuilding.
	StrategyInPlaceOnly = edit.StrategyInPlaceOnly
	// StrategyRebuild always lays out a fresh container.
	StrategyRebuild = edit.StrategyRebuild
)

// OpenOptions controls how a document is read.
type OpenOptions struct {
	// Logger receives framing recovery warnings. Nil discards.
	Logger *slog.Logger

	// NoMmap reads the file into memory instead of mapping it.
	NoMmap bool
}

func (o *OpenOptions) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return discard()
}

// SaveOptions controls how a document is written.
type SaveOptions struct {
	// Template is the container to patch. Nil uses the container the
	// document was opened from; a document with neither is written to a
	// new container.
	Template []byte

	// Strategy selects in-place patching or rebuilding. Default: StrategyAuto.
	Strategy Strategy

	// CreateBackup copies an existing destination to <path>.bak first.
	CreateBackup bool

	// Logger receives the save path decision. Nil discards.
	Logger *slog.Logger

	// AllowDanglingOwners saves documents in which objects still name a
	// removed object as their owner.
	AllowDanglingOwners bool

	// NoLock skips the advisory lock on <path>.lock.
	NoLock bool

	// ForceRewrite serializes every record instead of reusing the bytes of
	// unchanged ones.
	ForceRewrite bool

	// ModTime is recorded as the modified time of the container and of the
	// written streams when the container is created or rebuilt. Zero
	// leaves the times as they were.
	ModTime time.Time
}

func (o *SaveOptions) editOptions() edit.Options {
	return edit.Options{
		Strategy:      o.Strategy,
		Logger:        o.Logger,
		CreateMissing: true,
		ModTime:       o.ModTime,
	}
}

func (o *SaveOptions) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return discard()
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

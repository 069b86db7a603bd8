package schdoc

import (
	"time"

	"github.com/joshuapare/schdockit/internal/edit"
	"github.com/joshuapare/schdockit/schdoc"
	sdedit "github.com/joshuapare/schdockit/schdoc/edit"
)

// Re-exported model types.
type (
	Document     = schdoc.Document
	Object       = schdoc.Object
	Kind         = schdoc.Kind
	Point        = schdoc.Point
	Color        = schdoc.Color
	Orientation  = schdoc.Orientation
	StreamReport = schdoc.StreamReport
	Session      = sdedit.Session
)

// Orientations.
const (
	Right = schdoc.Right
	Up    = schdoc.Up
	Left  = schdoc.Left
	Down  = schdoc.Down
)

// PatchResult describes how a container was updated.
type PatchResult = edit.Result

// StreamInfo describes one entry of a container.
type StreamInfo struct {
	Path        string
	Storage     bool
	Size        uint64
	StartSector uint32
	// Mini is set for streams stored in the mini stream.
	Mini bool
	// Created and Modified are the directory entry times, zero when unset.
	Created  time.Time
	Modified time.Time
}

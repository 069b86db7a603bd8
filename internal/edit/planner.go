// Package edit replaces streams inside compound file containers. Each
// replacement is planned by comparing the old and new sector counts: streams
// that still fit their chain are patched in place, anything else triggers a
// full rebuild of the container with every other stream carried over.
package edit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/schdockit/internal/buf"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
)

var (
	// ErrRebuildRequired is returned under StrategyInPlaceOnly when a
	// replacement needs more sectors than the stream owns.
	ErrRebuildRequired = errors.New("edit: replacement requires a rebuild")
	// ErrLayoutNotConverged is returned when FAT sizing does not reach a fixed
	// point within Options.MaxLayoutIterations.
	ErrLayoutNotConverged = errors.New("edit: layout computation did not converge")
	// ErrRebuildFailed is returned when a rebuilt container does not read back
	// the streams it was built from.
	ErrRebuildFailed = errors.New("edit: rebuilt container failed verification")
)

// Strategy selects how replacements are applied.
type Strategy int

const (
	// StrategyAuto patches in place when possible and rebuilds otherwise.
	StrategyAuto Strategy = iota
	// StrategyInPlaceOnly never rebuilds; growth fails with ErrRebuildRequired.
	StrategyInPlaceOnly
	// StrategyRebuild always lays out a fresh container.
	StrategyRebuild
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyInPlaceOnly:
		return "in-place"
	case StrategyRebuild:
		return "rebuild"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Plan is the outcome of comparing a stream's old and new allocation.
type Plan int

const (
	// PlanSameSectorCount keeps the chain and overwrites its sectors.
	PlanSameSectorCount Plan = iota
	// PlanShrink pads the new data to the old sector count and patches in place.
	PlanShrink
	// PlanGrow needs more sectors than the chain holds.
	PlanGrow
	// PlanCrossCutoff moves the stream between mini and regular storage.
	PlanCrossCutoff
	// PlanAdd creates a stream that does not exist yet.
	PlanAdd
)

func (p Plan) String() string {
	switch p {
	case PlanSameSectorCount:
		return "same-sector-count"
	case PlanShrink:
		return "shrink"
	case PlanGrow:
		return "grow"
	case PlanCrossCutoff:
		return "cross-cutoff"
	case PlanAdd:
		return "add"
	default:
		return fmt.Sprintf("Plan(%d)", int(p))
	}
}

// InPlace reports whether the plan can be applied without a rebuild.
func (p Plan) InPlace() bool {
	return p == PlanSameSectorCount || p == PlanShrink
}

// DefaultMaxLayoutIterations bounds the FAT sizing loop.
const DefaultMaxLayoutIterations = 64

// Options configures stream replacement.
type Options struct {
	// Strategy selects in-place patching, rebuilding, or automatic choice.
	Strategy Strategy
	// Logger receives strategy decisions. Nil discards.
	Logger *slog.Logger
	// MaxLayoutIterations bounds FAT sizing. Zero uses DefaultMaxLayoutIterations.
	MaxLayoutIterations int
	// CreateMissing adds streams that do not exist instead of failing.
	CreateMissing bool
	// MajorVersion selects 512-byte (3) or 4096-byte (4) sectors for Create.
	// Rebuilds keep the version of the source container.
	MajorVersion uint16
	// ModTime, when set, is stored as the modified time of the root entry
	// and of every written stream of a created or rebuilt container.
	// In-place patches leave directory times alone.
	ModTime time.Time
}

func (o Options) stamp() uint64 { return format.TimeToFiletime(o.ModTime) }

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) maxIterations() int {
	if o.MaxLayoutIterations > 0 {
		return o.MaxLayoutIterations
	}
	return DefaultMaxLayoutIterations
}

// Update is a stream replacement.
type Update struct {
	Path string
	Data []byte
}

// Result describes how a replacement was carried out.
type Result struct {
	// Plans maps each updated path to its plan.
	Plans map[string]Plan
	// Rebuilt is true when the container was laid out from scratch.
	Rebuilt bool
	// Iterations is the number of FAT sizing rounds a rebuild took.
	Iterations int
	OldSize    int
	NewSize    int
}

// PlanReplace decides how a stream at path would be replaced by newSize bytes.
func PlanReplace(c *reader.Container, path string, newSize int, createMissing bool) (Plan, error) {
	e, ok := c.Lookup(path)
	if !ok || !e.IsStream() {
		if createMissing {
			return PlanAdd, nil
		}
		return 0, fmt.Errorf("plan %s: %w", path, reader.ErrStreamNotFound)
	}
	oldMini := c.IsMini(e.Size)
	if oldMini != c.IsMini(uint64(newSize)) {
		return PlanCrossCutoff, nil
	}
	unit := c.SectorSize()
	if oldMini {
		unit = c.Header().MiniSectorSize()
	}
	oldN := buf.CeilDiv(int(e.Size), unit)
	newN := buf.CeilDiv(newSize, unit)
	switch {
	case newN == oldN:
		return PlanSameSectorCount, nil
	case newN < oldN:
		return PlanShrink, nil
	default:
		return PlanGrow, nil
	}
}

// ReplaceStream returns a new container image with the stream at path
// replaced by data. The source container is not modified.
func ReplaceStream(c *reader.Container, path string, data []byte, opts Options) ([]byte, Result, error) {
	return ReplaceStreams(c, []Update{{Path: path, Data: data}}, opts)
}

// ReplaceStreams applies several replacements at once. If any of them needs a
// rebuild, the container is rebuilt a single time with all of them applied.
func ReplaceStreams(c *reader.Container, updates []Update, opts Options) ([]byte, Result, error) {
	log := opts.logger()
	res := Result{Plans: make(map[string]Plan, len(updates)), OldSize: len(c.Data())}
	rebuild := opts.Strategy == StrategyRebuild
	for _, u := range updates {
		p, err := PlanReplace(c, u.Path, len(u.Data), opts.CreateMissing)
		if err != nil {
			return nil, res, err
		}
		res.Plans[u.Path] = p
		log.Debug("planned stream replacement", "stream", u.Path, "plan", p.String(), "size", len(u.Data))
		if !p.InPlace() {
			if opts.Strategy == StrategyInPlaceOnly {
				return nil, res, fmt.Errorf("stream %s (%s): %w", u.Path, p, ErrRebuildRequired)
			}
			rebuild = true
		}
	}

	if rebuild {
		out, iters, err := rebuildWith(c, updates, opts)
		if err != nil {
			return nil, res, err
		}
		res.Rebuilt = true
		res.Iterations = iters
		res.NewSize = len(out)
		log.Info("container rebuilt", "streams", len(updates), "old_size", res.OldSize, "new_size", res.NewSize, "iterations", iters)
		return out, res, nil
	}

	out := append([]byte(nil), c.Data()...)
	for _, u := range updates {
		var err error
		out, err = patchInPlace(c, out, u.Path, u.Data)
		if err != nil {
			return nil, res, err
		}
	}
	res.NewSize = len(out)
	log.Info("container patched in place", "streams", len(updates), "size", res.NewSize)
	return out, res, nil
}

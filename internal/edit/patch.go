package edit

import (
	"fmt"

	"github.com/joshuapare/schdockit/internal/buf"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
)

// patchInPlace overwrites the sectors of an existing stream and updates its
// directory size field. The FAT, the directory tree and every other stream
// stay untouched. out is a private copy of the container image; it may grow
// when the file's final sector was stored short.
func patchInPlace(c *reader.Container, out []byte, path string, data []byte) ([]byte, error) {
	e, ok := c.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("patch %s: %w", path, reader.ErrStreamNotFound)
	}
	mini := c.IsMini(e.Size)
	unit := c.SectorSize()
	if mini {
		unit = c.Header().MiniSectorSize()
	}
	oldN := buf.CeilDiv(int(e.Size), unit)
	if buf.CeilDiv(len(data), unit) > oldN {
		return nil, fmt.Errorf("patch %s: %w", path, ErrRebuildRequired)
	}

	var chain []uint32
	var err error
	if oldN > 0 {
		if mini {
			chain, err = c.MiniChain(e.StartSector)
		} else {
			chain, err = c.Chain(e.StartSector)
		}
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", path, err)
		}
	}
	if len(chain) < oldN {
		return nil, fmt.Errorf("patch %s: chain holds %d of %d sectors: %w", path, len(chain), oldN, format.ErrCorrupt)
	}

	scratch := getBuffer()
	defer putBuffer(scratch)
	padded := append(*scratch, data...)
	for len(padded) < oldN*unit {
		padded = append(padded, 0)
	}
	*scratch = padded

	var rootChain []uint32
	if mini && oldN > 0 {
		rootChain, err = c.Chain(c.Root().StartSector)
		if err != nil {
			return nil, fmt.Errorf("patch %s: mini stream: %w", path, err)
		}
	}

	ss := c.SectorSize()
	for i := 0; i < oldN; i++ {
		var off int64
		if mini {
			pos := int(chain[i]) * unit
			idx := pos / ss
			if idx >= len(rootChain) {
				return nil, fmt.Errorf("patch %s: mini sector %d outside mini stream: %w", path, chain[i], format.ErrCorrupt)
			}
			off = c.SectorOffset(rootChain[idx]) + int64(pos%ss)
		} else {
			off = c.SectorOffset(chain[i])
		}
		end := int(off) + unit
		if end > len(out) {
			out = append(out, make([]byte, end-len(out))...)
		}
		copy(out[off:end], padded[i*unit:(i+1)*unit])
	}

	if err := writeSize(c, out, e.ID, uint64(len(data))); err != nil {
		return nil, fmt.Errorf("patch %s: %w", path, err)
	}
	return out, nil
}

// writeSize rewrites the size field of directory entry id. Version 3
// containers only carry a 32-bit size, so the high half is left as found.
func writeSize(c *reader.Container, out []byte, id uint32, size uint64) error {
	per := uint32(c.SectorSize() / format.DirEntrySize)
	secs := c.DirSectors()
	if int(id/per) >= len(secs) {
		return fmt.Errorf("directory entry %d: %w", id, format.ErrCorrupt)
	}
	off := int(c.SectorOffset(secs[id/per])) + int(id%per)*format.DirEntrySize + format.DirSizeOffset
	if !buf.Has(out, off, 8) {
		return fmt.Errorf("directory entry %d: %w", id, format.ErrTruncated)
	}
	if c.Header().MajorVersion == format.MajorVersion3 {
		buf.PutU32LE(out, off, uint32(size))
		return nil
	}
	buf.PutU64LE(out, off, size)
	return nil
}

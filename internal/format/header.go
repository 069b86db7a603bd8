package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/schdockit/internal/buf"
)

// Header captures the compound file header. The diagram below highlights the
// fields the reader and the patcher depend on.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   8    D0 CF 11 E0 A1 B1 1A E1
//	 0x018   2    Minor version (0x003E)
//	 0x01A   2    Major version (3 or 4)
//	 0x01C   2    Byte order (0xFFFE)
//	 0x01E   2    Sector shift (9 or 12)
//	 0x020   2    Mini sector shift (6)
//	 0x028   4    Number of directory sectors (v4 only)
//	 0x02C   4    Number of FAT sectors
//	 0x030   4    First directory sector
//	 0x038   4    Mini stream cutoff (4096)
//	 0x03C   4    First mini FAT sector
//	 0x040   4    Number of mini FAT sectors
//	 0x044   4    First DIFAT sector
//	 0x048   4    Number of DIFAT sectors
//	 0x04C 436    First 109 FAT sector locations
type Header struct {
	MinorVersion       uint16
	MajorVersion       uint16
	SectorShift        uint16
	MiniSectorShift    uint16
	NumDirSectors      uint32
	NumFATSectors      uint32
	FirstDirSector     uint32
	Transaction        uint32
	MiniStreamCutoff   uint32
	FirstMiniFATSector uint32
	NumMiniFATSectors  uint32
	FirstDIFATSector   uint32
	NumDIFATSectors    uint32
	DIFAT              [HeaderDIFATEntries]uint32
}

// SectorSize returns the regular sector size in bytes.
func (h Header) SectorSize() int { return 1 << h.SectorShift }

// MiniSectorSize returns the mini sector size in bytes.
func (h Header) MiniSectorSize() int { return 1 << h.MiniSectorShift }

// SectorOffset returns the file offset of regular sector sid. The header
// occupies the slot of sector -1.
func (h Header) SectorOffset(sid uint32) int64 {
	return (int64(sid) + 1) << h.SectorShift
}

// ParseHeader validates and extracts the compound file header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("cfb header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:len(Signature)], Signature) {
		return Header{}, fmt.Errorf("cfb header: %w", ErrNotCFB)
	}
	if buf.U16LE(b[ByteOrderOffset:]) != ByteOrderMark {
		return Header{}, fmt.Errorf("cfb header: byte order: %w", ErrNotCFB)
	}
	h := Header{
		MinorVersion:       buf.U16LE(b[MinorVersionOffset:]),
		MajorVersion:       buf.U16LE(b[MajorVersionOffset:]),
		SectorShift:        buf.U16LE(b[SectorShiftOffset:]),
		MiniSectorShift:    buf.U16LE(b[MiniSectorShiftOffset:]),
		NumDirSectors:      buf.U32LE(b[NumDirSectorsOffset:]),
		NumFATSectors:      buf.U32LE(b[NumFATSectorsOffset:]),
		FirstDirSector:     buf.U32LE(b[FirstDirSectorOffset:]),
		Transaction:        buf.U32LE(b[TransactionOffset:]),
		MiniStreamCutoff:   buf.U32LE(b[MiniStreamCutoffOffset:]),
		FirstMiniFATSector: buf.U32LE(b[FirstMiniFATSectorOffset:]),
		NumMiniFATSectors:  buf.U32LE(b[NumMiniFATSectorsOffset:]),
		FirstDIFATSector:   buf.U32LE(b[FirstDIFATSectorOffset:]),
		NumDIFATSectors:    buf.U32LE(b[NumDIFATSectorsOffset:]),
	}
	switch {
	case h.MajorVersion == MajorVersion3 && h.SectorShift == SectorShiftV3:
	case h.MajorVersion == MajorVersion4 && h.SectorShift == SectorShiftV4:
	default:
		return Header{}, fmt.Errorf("cfb header: version %d sector shift %d: %w",
			h.MajorVersion, h.SectorShift, ErrUnsupported)
	}
	if h.MiniSectorShift == 0 || h.MiniSectorShift >= h.SectorShift {
		return Header{}, fmt.Errorf("cfb header: mini sector shift %d: %w", h.MiniSectorShift, ErrCorrupt)
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = buf.U32LE(b[DIFATOffset+i*4:])
	}
	return h, nil
}

// NewHeader returns a header for a fresh container of the given major version.
// Counts and chain starts are left for the caller.
func NewHeader(major uint16) Header {
	h := Header{
		MinorVersion:       DefaultMinor,
		MajorVersion:       MajorVersion3,
		SectorShift:        SectorShiftV3,
		MiniSectorShift:    MiniSectorShift,
		MiniStreamCutoff:   MiniStreamCutoff,
		FirstDirSector:     EndOfChain,
		FirstMiniFATSector: EndOfChain,
		FirstDIFATSector:   EndOfChain,
	}
	if major == MajorVersion4 {
		h.MajorVersion = MajorVersion4
		h.SectorShift = SectorShiftV4
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = FreeSect
	}
	return h
}

// Put encodes h into the first HeaderSize bytes of b. Bytes beyond the
// header (the padding of a v4 header sector) are left untouched.
func (h Header) Put(b []byte) {
	copy(b[SignatureOffset:], Signature)
	clear(b[ClassIDOffset : ClassIDOffset+16])
	buf.PutU16LE(b, MinorVersionOffset, h.MinorVersion)
	buf.PutU16LE(b, MajorVersionOffset, h.MajorVersion)
	buf.PutU16LE(b, ByteOrderOffset, ByteOrderMark)
	buf.PutU16LE(b, SectorShiftOffset, h.SectorShift)
	buf.PutU16LE(b, MiniSectorShiftOffset, h.MiniSectorShift)
	clear(b[ReservedOffset:NumDirSectorsOffset])
	buf.PutU32LE(b, NumDirSectorsOffset, h.NumDirSectors)
	buf.PutU32LE(b, NumFATSectorsOffset, h.NumFATSectors)
	buf.PutU32LE(b, FirstDirSectorOffset, h.FirstDirSector)
	buf.PutU32LE(b, TransactionOffset, h.Transaction)
	buf.PutU32LE(b, MiniStreamCutoffOffset, h.MiniStreamCutoff)
	buf.PutU32LE(b, FirstMiniFATSectorOffset, h.FirstMiniFATSector)
	buf.PutU32LE(b, NumMiniFATSectorsOffset, h.NumMiniFATSectors)
	buf.PutU32LE(b, FirstDIFATSectorOffset, h.FirstDIFATSector)
	buf.PutU32LE(b, NumDIFATSectorsOffset, h.NumDIFATSectors)
	for i, sid := range h.DIFAT {
		buf.PutU32LE(b, DIFATOffset+i*4, sid)
	}
}

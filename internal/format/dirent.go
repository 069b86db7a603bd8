package format

import (
	"fmt"

	"github.com/joshuapare/schdockit/internal/buf"
)

// DirEntry is one 128-byte directory record.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00   64    Name, UTF-16LE, NUL terminated
//	 0x40    2    Name length in bytes including the terminator
//	 0x42    1    Object type
//	 0x43    1    Colour (0 red, 1 black)
//	 0x44    4    Left sibling
//	 0x48    4    Right sibling
//	 0x4C    4    Child
//	 0x50   16    CLSID
//	 0x60    4    State bits
//	 0x64    8    Creation time (FILETIME)
//	 0x6C    8    Modification time (FILETIME)
//	 0x74    4    Starting sector
//	 0x78    8    Stream size
type DirEntry struct {
	Name        string
	Type        ObjectType
	Color       byte
	Left        uint32
	Right       uint32
	Child       uint32
	CLSID       [16]byte
	StateBits   uint32
	Created     uint64
	Modified    uint64
	StartSector uint32
	Size        uint64
}

// ParseDirEntry decodes a directory record. Version 3 containers only use
// the low 32 bits of the size field.
func ParseDirEntry(b []byte, major uint16) (DirEntry, error) {
	if len(b) < DirEntrySize {
		return DirEntry{}, fmt.Errorf("dir entry: %w", ErrTruncated)
	}
	nameLen := int(buf.U16LE(b[DirNameLenOffset:]))
	if nameLen > DirNameMaxBytes {
		nameLen = DirNameMaxBytes
	}
	name, err := DecodeName(b[DirNameOffset : DirNameOffset+nameLen])
	if err != nil {
		return DirEntry{}, fmt.Errorf("dir entry name: %w", err)
	}
	e := DirEntry{
		Name:        name,
		Type:        ObjectType(b[DirTypeOffset]),
		Color:       b[DirColorOffset],
		Left:        buf.U32LE(b[DirLeftOffset:]),
		Right:       buf.U32LE(b[DirRightOffset:]),
		Child:       buf.U32LE(b[DirChildOffset:]),
		StateBits:   buf.U32LE(b[DirStateBitsOffset:]),
		Created:     buf.U64LE(b[DirCreatedOffset:]),
		Modified:    buf.U64LE(b[DirModifiedOffset:]),
		StartSector: buf.U32LE(b[DirStartSectorOffset:]),
		Size:        buf.U64LE(b[DirSizeOffset:]),
	}
	copy(e.CLSID[:], b[DirCLSIDOffset:DirCLSIDOffset+16])
	if major == MajorVersion3 {
		e.Size &= 0xFFFFFFFF
	}
	return e, nil
}

// PutDirEntry encodes e into b. An unused entry is written as zeros with
// NoStream links, matching what reference writers emit.
func PutDirEntry(b []byte, e DirEntry) error {
	if len(b) < DirEntrySize {
		return fmt.Errorf("dir entry: %w", ErrTruncated)
	}
	clear(b[:DirEntrySize])
	if e.Type == TypeUnused {
		buf.PutU32LE(b, DirLeftOffset, NoStream)
		buf.PutU32LE(b, DirRightOffset, NoStream)
		buf.PutU32LE(b, DirChildOffset, NoStream)
		return nil
	}
	name, err := EncodeName(e.Name)
	if err != nil {
		return err
	}
	copy(b[DirNameOffset:], name)
	buf.PutU16LE(b, DirNameLenOffset, uint16(len(name)))
	b[DirTypeOffset] = byte(e.Type)
	b[DirColorOffset] = e.Color
	buf.PutU32LE(b, DirLeftOffset, e.Left)
	buf.PutU32LE(b, DirRightOffset, e.Right)
	buf.PutU32LE(b, DirChildOffset, e.Child)
	copy(b[DirCLSIDOffset:], e.CLSID[:])
	buf.PutU32LE(b, DirStateBitsOffset, e.StateBits)
	buf.PutU64LE(b, DirCreatedOffset, e.Created)
	buf.PutU64LE(b, DirModifiedOffset, e.Modified)
	buf.PutU32LE(b, DirStartSectorOffset, e.StartSector)
	buf.PutU64LE(b, DirSizeOffset, e.Size)
	return nil
}

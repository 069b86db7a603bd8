// Package format houses low-level decoders and encoders for the Compound File
// Binary (OLE2) container that wraps schematic documents. The goal is to keep
// the on-disk structures focused and independent from the public API so the
// reader and the patcher can orchestrate them.
package format

// Signature is the eight-byte magic at offset 0 of every compound file.
//
//	0x00  D0 CF 11 E0 A1 B1 1A E1
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

const (
	// HeaderSize is the size of the fixed header structure. Version 4 files
	// pad the header out to a full 4096-byte sector.
	HeaderSize = 512

	// HeaderDIFATEntries is the number of FAT sector locations stored inline
	// in the header before a DIFAT chain is needed.
	HeaderDIFATEntries = 109

	// DirEntrySize is the size of a single directory entry.
	DirEntrySize = 128

	// DirNameMaxBytes is the capacity of a directory entry name, including the
	// UTF-16 NUL terminator.
	DirNameMaxBytes = 64

	// MiniStreamCutoff is the size below which streams live in the mini stream.
	MiniStreamCutoff = 4096
)

// Header field offsets.
const (
	SignatureOffset          = 0x00
	ClassIDOffset            = 0x08
	MinorVersionOffset       = 0x18
	MajorVersionOffset       = 0x1A
	ByteOrderOffset          = 0x1C
	SectorShiftOffset        = 0x1E
	MiniSectorShiftOffset    = 0x20
	ReservedOffset           = 0x22
	NumDirSectorsOffset      = 0x28
	NumFATSectorsOffset      = 0x2C
	FirstDirSectorOffset     = 0x30
	TransactionOffset        = 0x34
	MiniStreamCutoffOffset   = 0x38
	FirstMiniFATSectorOffset = 0x3C
	NumMiniFATSectorsOffset  = 0x40
	FirstDIFATSectorOffset   = 0x44
	NumDIFATSectorsOffset    = 0x48
	DIFATOffset              = 0x4C
)

// Header constants.
const (
	ByteOrderMark   = 0xFFFE
	DefaultMinor    = 0x003E
	MajorVersion3   = 3
	MajorVersion4   = 4
	SectorShiftV3   = 9
	SectorShiftV4   = 12
	MiniSectorShift = 6
	MiniSectorSize  = 1 << MiniSectorShift
)

// Sector markers stored in FAT, mini FAT and DIFAT slots.
const (
	MaxRegSect uint32 = 0xFFFFFFFA
	DIFSect    uint32 = 0xFFFFFFFC
	FATSect    uint32 = 0xFFFFFFFD
	EndOfChain uint32 = 0xFFFFFFFE
	FreeSect   uint32 = 0xFFFFFFFF
)

// NoStream marks an absent sibling or child link in a directory entry.
const NoStream uint32 = 0xFFFFFFFF

// Directory entry field offsets.
const (
	DirNameOffset        = 0x00
	DirNameLenOffset     = 0x40
	DirTypeOffset        = 0x42
	DirColorOffset       = 0x43
	DirLeftOffset        = 0x44
	DirRightOffset       = 0x48
	DirChildOffset       = 0x4C
	DirCLSIDOffset       = 0x50
	DirStateBitsOffset   = 0x60
	DirCreatedOffset     = 0x64
	DirModifiedOffset    = 0x6C
	DirStartSectorOffset = 0x74
	DirSizeOffset        = 0x78
)

// ObjectType is the directory entry kind.
type ObjectType byte

const (
	TypeUnused  ObjectType = 0x00
	TypeStorage ObjectType = 0x01
	TypeStream  ObjectType = 0x02
	TypeRoot    ObjectType = 0x05
)

func (t ObjectType) String() string {
	switch t {
	case TypeUnused:
		return "unused"
	case TypeStorage:
		return "storage"
	case TypeStream:
		return "stream"
	case TypeRoot:
		return "root"
	default:
		return "invalid"
	}
}

// Red-black colours of directory entries.
const (
	ColorRed   byte = 0
	ColorBlack byte = 1
)

// RootEntryName is the name every root directory entry carries.
const RootEntryName = "Root Entry"

package reader

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/joshuapare/schdockit/internal/format"
)

// buildFixture lays out a small v3 container by hand:
//
//	sector 0       FAT
//	sector 1       directory (Root, FileHeader, Big, Storage)
//	sector 2       mini FAT
//	sector 3       mini stream (FileHeader, Inner)
//	sectors 4..11  Big (4096 bytes)
//	sector 12      directory (Storage/Inner)
func buildFixture(t *testing.T) ([]byte, []byte, []byte, []byte) {
	t.Helper()
	const ss = 512
	small := bytes.Repeat([]byte("hdr!"), 25) // 100 bytes, two mini sectors
	inner := []byte("inner stream")          // one mini sector
	big := make([]byte, 4096)
	for i := range big {
		big[i] = byte(i)
	}

	img := make([]byte, ss*14)
	h := format.NewHeader(format.MajorVersion3)
	h.NumFATSectors = 1
	h.DIFAT[0] = 0
	h.FirstDirSector = 1
	h.FirstMiniFATSector = 2
	h.NumMiniFATSectors = 1
	h.Put(img)

	sec := func(sid int) []byte { return img[(sid+1)*ss : (sid+2)*ss] }

	fat := sec(0)
	for i := 0; i < 128; i++ {
		binary.LittleEndian.PutUint32(fat[i*4:], format.FreeSect)
	}
	put := func(i int, v uint32) { binary.LittleEndian.PutUint32(fat[i*4:], v) }
	put(0, format.FATSect)
	put(1, 12)
	put(12, format.EndOfChain)
	put(2, format.EndOfChain)
	put(3, format.EndOfChain)
	for i := 4; i < 11; i++ {
		put(i, uint32(i+1))
	}
	put(11, format.EndOfChain)

	mfat := sec(2)
	for i := 0; i < 128; i++ {
		binary.LittleEndian.PutUint32(mfat[i*4:], format.FreeSect)
	}
	binary.LittleEndian.PutUint32(mfat[0:], 1)
	binary.LittleEndian.PutUint32(mfat[4:], format.EndOfChain)
	binary.LittleEndian.PutUint32(mfat[8:], format.EndOfChain)

	copy(sec(3), small)
	copy(sec(3)[128:], inner)
	for i := 0; i < 8; i++ {
		copy(sec(4+i), big[i*ss:(i+1)*ss])
	}

	dirSlot := func(i int) []byte {
		if i < 4 {
			return sec(1)[i*format.DirEntrySize:]
		}
		return sec(12)[(i-4)*format.DirEntrySize:]
	}
	entries := []format.DirEntry{
		{Name: format.RootEntryName, Type: format.TypeRoot, Color: format.ColorBlack,
			Left: format.NoStream, Right: format.NoStream, Child: 1, StartSector: 3, Size: 192},
		{Name: "FileHeader", Type: format.TypeStream, Color: format.ColorBlack,
			Left: 2, Right: format.NoStream, Child: format.NoStream, StartSector: 0, Size: uint64(len(small))},
		{Name: "Big", Type: format.TypeStream, Color: format.ColorRed,
			Left: format.NoStream, Right: 3, Child: format.NoStream, StartSector: 4, Size: uint64(len(big))},
		{Name: "Storage", Type: format.TypeStorage, Color: format.ColorRed,
			Left: format.NoStream, Right: format.NoStream, Child: 4},
		{Name: "Inner", Type: format.TypeStream, Color: format.ColorBlack,
			Left: format.NoStream, Right: format.NoStream, Child: format.NoStream, StartSector: 2, Size: uint64(len(inner))},
	}
	for i, e := range entries {
		if err := format.PutDirEntry(dirSlot(i), e); err != nil {
			t.Fatal(err)
		}
	}
	for i := len(entries); i < 8; i++ {
		if err := format.PutDirEntry(dirSlot(i), format.DirEntry{}); err != nil {
			t.Fatal(err)
		}
	}
	return img, small, big, inner
}

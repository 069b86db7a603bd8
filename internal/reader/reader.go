// Package reader parses Compound File Binary containers: header, FAT, DIFAT,
// mini FAT and the directory tree. Streams are resolved by path and returned
// as fresh byte slices.
package reader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/schdockit/internal/buf"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/mmfile"
)

// ErrStreamNotFound is returned when no directory entry matches a path.
var ErrStreamNotFound = errors.New("reader: stream not found")

// Entry is a directory entry together with its resolved location in the tree.
type Entry struct {
	format.DirEntry
	// ID is the index of the entry in the directory.
	ID uint32
	// Path is the slash separated path below the root, e.g. "Storage" or "a/b".
	Path string
	// Parent is the ID of the enclosing storage (0 for top-level entries).
	Parent uint32
}

// IsStream reports whether the entry holds stream data.
func (e Entry) IsStream() bool { return e.Type == format.TypeStream }

// IsStorage reports whether the entry is a storage (directory).
func (e Entry) IsStorage() bool { return e.Type == format.TypeStorage }

// Container is a parsed compound file. It holds a reference to the
// underlying buffer, which must stay unmodified while the container is used.
type Container struct {
	data  []byte
	unmap func() error
	hdr   format.Header

	fat          []uint32
	fatSectors   []uint32
	difatSectors []uint32
	dirSectors   []uint32
	miniFAT      []uint32
	miniSectors  []uint32 // mini FAT chain
	miniStream   []byte

	dir     []format.DirEntry
	entries []Entry
}

// Open maps the container at path read-only. Call Close when done.
func Open(path string) (*Container, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	c.unmap = unmap
	return c, nil
}

// OpenBytes parses a container held in memory.
func OpenBytes(data []byte) (*Container, error) {
	return parse(data)
}

// Close releases the mapping if the container was opened from a file.
func (c *Container) Close() error {
	if c.unmap == nil {
		return nil
	}
	unmap := c.unmap
	c.unmap = nil
	return unmap()
}

func parse(data []byte) (*Container, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	c := &Container{data: data, hdr: hdr}
	if err := c.loadFAT(); err != nil {
		return nil, err
	}
	if err := c.loadDirectory(); err != nil {
		return nil, err
	}
	if err := c.loadMini(); err != nil {
		return nil, err
	}
	c.entries, err = c.walk()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Data returns the raw container bytes.
func (c *Container) Data() []byte { return c.data }

// Header returns the parsed header.
func (c *Container) Header() format.Header { return c.hdr }

// SectorSize returns the regular sector size.
func (c *Container) SectorSize() int { return c.hdr.SectorSize() }

// SectorOffset returns the file offset of regular sector sid.
func (c *Container) SectorOffset(sid uint32) int64 { return c.hdr.SectorOffset(sid) }

// FAT returns the file allocation table. The slice must not be modified.
func (c *Container) FAT() []uint32 { return c.fat }

// MiniFAT returns the mini allocation table. The slice must not be modified.
func (c *Container) MiniFAT() []uint32 { return c.miniFAT }

// FATSectors lists the sectors holding the FAT, in table order.
func (c *Container) FATSectors() []uint32 { return c.fatSectors }

// DIFATSectors lists the sectors of the DIFAT chain.
func (c *Container) DIFATSectors() []uint32 { return c.difatSectors }

// DirSectors lists the sectors of the directory chain.
func (c *Container) DirSectors() []uint32 { return c.dirSectors }

// MiniFATSectors lists the sectors of the mini FAT chain.
func (c *Container) MiniFATSectors() []uint32 { return c.miniSectors }

// MiniStream returns the mini stream container data.
func (c *Container) MiniStream() []byte { return c.miniStream }

// Root returns the root directory entry.
func (c *Container) Root() format.DirEntry { return c.dir[0] }

// DirEntries returns every raw directory slot, including unused ones.
func (c *Container) DirEntries() []format.DirEntry { return c.dir }

// Entries returns the reachable storages and streams in tree order.
func (c *Container) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds an entry by path. Name comparison is case-insensitive, as in
// compound file directories.
func (c *Container) Lookup(path string) (Entry, bool) {
	want := splitPath(path)
	for _, e := range c.entries {
		got := splitPath(e.Path)
		if len(got) != len(want) {
			continue
		}
		match := true
		for i := range got {
			if format.CompareNames(got[i], want[i]) != 0 {
				match = false
				break
			}
		}
		if match {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether a stream exists at path.
func (c *Container) Has(path string) bool {
	e, ok := c.Lookup(path)
	return ok && e.IsStream()
}

// Stream returns a copy of the stream content at path.
func (c *Container) Stream(path string) ([]byte, error) {
	e, ok := c.Lookup(path)
	if !ok || !e.IsStream() {
		return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, path)
	}
	return c.ReadEntry(e.DirEntry)
}

// IsMini reports whether a stream of the given size lives in the mini stream.
func (c *Container) IsMini(size uint64) bool {
	return size < uint64(c.hdr.MiniStreamCutoff)
}

// ReadEntry returns the content of a stream entry.
func (c *Container) ReadEntry(e format.DirEntry) ([]byte, error) {
	if e.Size == 0 {
		return []byte{}, nil
	}
	if c.IsMini(e.Size) {
		chain, err := c.MiniChain(e.StartSector)
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", e.Name, err)
		}
		return c.gather(e.Name, c.miniStream, chain, c.hdr.MiniSectorSize(), 0, e.Size)
	}
	chain, err := c.Chain(e.StartSector)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", e.Name, err)
	}
	return c.gather(e.Name, c.data, chain, c.hdr.SectorSize(), c.hdr.SectorSize(), e.Size)
}

// gather concatenates sectors of a chain from src. base is the offset of
// sector 0 within src.
func (c *Container) gather(name string, src []byte, chain []uint32, size, base int, want uint64) ([]byte, error) {
	if uint64(len(chain))*uint64(size) < want {
		return nil, fmt.Errorf("stream %q: chain of %d sectors shorter than %d bytes: %w",
			name, len(chain), want, format.ErrCorrupt)
	}
	out := make([]byte, 0, want)
	for _, sid := range chain {
		rem := int(want) - len(out)
		if rem <= 0 {
			break
		}
		off := base + int(sid)*size
		// Only the bytes the stream needs are read from its final sector.
		n := min(size, rem)
		if off+n > len(src) {
			return nil, fmt.Errorf("stream %q: sector %d beyond end of data: %w", name, sid, format.ErrTruncated)
		}
		out = append(out, src[off:off+n]...)
	}
	return out, nil
}

// Chain follows the FAT from start until ENDOFCHAIN.
func (c *Container) Chain(start uint32) ([]uint32, error) {
	return followChain(c.fat, start)
}

// MiniChain follows the mini FAT from start until ENDOFCHAIN.
func (c *Container) MiniChain(start uint32) ([]uint32, error) {
	return followChain(c.miniFAT, start)
}

func followChain(table []uint32, start uint32) ([]uint32, error) {
	var out []uint32
	sid := start
	for sid != format.EndOfChain {
		if sid > format.MaxRegSect || int(sid) >= len(table) {
			return nil, fmt.Errorf("chain: sector %#x out of range: %w", sid, format.ErrCorrupt)
		}
		if len(out) > len(table) {
			return nil, fmt.Errorf("chain: loop at sector %d: %w", sid, format.ErrCorrupt)
		}
		out = append(out, sid)
		sid = table[sid]
	}
	return out, nil
}

func (c *Container) sector(sid uint32) ([]byte, error) {
	size := c.hdr.SectorSize()
	off := c.hdr.SectorOffset(sid)
	b, ok := buf.Slice(c.data, int(off), size)
	if !ok {
		return nil, fmt.Errorf("sector %d: %w", sid, format.ErrTruncated)
	}
	return b, nil
}

func (c *Container) loadFAT() error {
	perSector := c.hdr.SectorSize() / 4
	n := int(c.hdr.NumFATSectors)
	for i := 0; i < n && i < format.HeaderDIFATEntries; i++ {
		c.fatSectors = append(c.fatSectors, c.hdr.DIFAT[i])
	}
	next := c.hdr.FirstDIFATSector
	maxDIFAT := len(c.data)/c.hdr.SectorSize() + 1
	for len(c.fatSectors) < n && next != format.EndOfChain && next != format.FreeSect {
		if len(c.difatSectors) > maxDIFAT {
			return fmt.Errorf("difat: loop: %w", format.ErrCorrupt)
		}
		c.difatSectors = append(c.difatSectors, next)
		b, err := c.sector(next)
		if err != nil {
			return fmt.Errorf("difat: %w", err)
		}
		for i := 0; i < perSector-1 && len(c.fatSectors) < n; i++ {
			c.fatSectors = append(c.fatSectors, buf.U32LE(b[i*4:]))
		}
		next = buf.U32LE(b[(perSector-1)*4:])
	}
	if len(c.fatSectors) < n {
		return fmt.Errorf("fat: found %d of %d sectors: %w", len(c.fatSectors), n, format.ErrCorrupt)
	}
	c.fat = make([]uint32, 0, n*perSector)
	for _, sid := range c.fatSectors {
		b, err := c.sector(sid)
		if err != nil {
			return fmt.Errorf("fat: %w", err)
		}
		for i := 0; i < perSector; i++ {
			c.fat = append(c.fat, buf.U32LE(b[i*4:]))
		}
	}
	return nil
}

func (c *Container) loadDirectory() error {
	chain, err := c.Chain(c.hdr.FirstDirSector)
	if err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if len(chain) == 0 {
		return fmt.Errorf("directory: empty chain: %w", format.ErrCorrupt)
	}
	c.dirSectors = chain
	per := c.hdr.SectorSize() / format.DirEntrySize
	for _, sid := range chain {
		b, err := c.sector(sid)
		if err != nil {
			return fmt.Errorf("directory: %w", err)
		}
		for i := 0; i < per; i++ {
			e, err := format.ParseDirEntry(b[i*format.DirEntrySize:], c.hdr.MajorVersion)
			if err != nil {
				return fmt.Errorf("directory entry %d: %w", len(c.dir), err)
			}
			c.dir = append(c.dir, e)
		}
	}
	if c.dir[0].Type != format.TypeRoot {
		return fmt.Errorf("directory: first entry is %s, not root: %w", c.dir[0].Type, format.ErrCorrupt)
	}
	return nil
}

func (c *Container) loadMini() error {
	if c.hdr.NumMiniFATSectors > 0 && c.hdr.FirstMiniFATSector != format.EndOfChain {
		chain, err := c.Chain(c.hdr.FirstMiniFATSector)
		if err != nil {
			return fmt.Errorf("mini fat: %w", err)
		}
		c.miniSectors = chain
		perSector := c.hdr.SectorSize() / 4
		c.miniFAT = make([]uint32, 0, len(chain)*perSector)
		for _, sid := range chain {
			b, err := c.sector(sid)
			if err != nil {
				return fmt.Errorf("mini fat: %w", err)
			}
			for i := 0; i < perSector; i++ {
				c.miniFAT = append(c.miniFAT, buf.U32LE(b[i*4:]))
			}
		}
	}
	root := c.dir[0]
	if root.Size == 0 || root.StartSector == format.EndOfChain {
		return nil
	}
	chain, err := c.Chain(root.StartSector)
	if err != nil {
		return fmt.Errorf("mini stream: %w", err)
	}
	ms, err := c.gather(format.RootEntryName, c.data, chain, c.hdr.SectorSize(), c.hdr.SectorSize(), root.Size)
	if err != nil {
		return fmt.Errorf("mini stream: %w", err)
	}
	c.miniStream = ms
	return nil
}

// walk flattens the red-black sibling trees into tree order: each storage's
// children are visited in-order and storages recurse into their child tree.
func (c *Container) walk() ([]Entry, error) {
	var out []Entry
	seen := make(map[uint32]bool)
	var visit func(id uint32, parent uint32, prefix string) error
	visit = func(id uint32, parent uint32, prefix string) error {
		if id == format.NoStream {
			return nil
		}
		if int(id) >= len(c.dir) {
			return fmt.Errorf("directory: link %d out of range: %w", id, format.ErrCorrupt)
		}
		if seen[id] {
			return fmt.Errorf("directory: cycle at entry %d: %w", id, format.ErrCorrupt)
		}
		seen[id] = true
		d := c.dir[id]
		if err := visit(d.Left, parent, prefix); err != nil {
			return err
		}
		path := d.Name
		if prefix != "" {
			path = prefix + "/" + d.Name
		}
		if d.Type == format.TypeStream || d.Type == format.TypeStorage {
			out = append(out, Entry{DirEntry: d, ID: id, Path: path, Parent: parent})
		}
		if d.Type == format.TypeStorage {
			if err := visit(d.Child, id, path); err != nil {
				return err
			}
		}
		return visit(d.Right, parent, prefix)
	}
	seen[0] = true
	if err := visit(c.dir[0].Child, 0, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

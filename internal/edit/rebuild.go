package edit

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/joshuapare/schdockit/internal/buf"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
)

// rebuildWith harvests every stream of c, substitutes the updates and lays
// out a fresh container with the same sector size.
func rebuildWith(c *reader.Container, updates []Update, opts Options) ([]byte, int, error) {
	root, err := harvest(c)
	if err != nil {
		return nil, 0, err
	}
	for _, u := range updates {
		if err := root.put(u.Path, u.Data, opts.CreateMissing, opts.stamp()); err != nil {
			return nil, 0, fmt.Errorf("rebuild: %w", err)
		}
	}
	return build(root, c.Header().MajorVersion, opts)
}

// build lays out root, writes the image and reads it back to confirm every
// stream survived.
func build(root *node, major uint16, opts Options) ([]byte, int, error) {
	if t := opts.stamp(); t != 0 {
		root.modified = t
	}
	img, iters, err := layout(root, major, opts.maxIterations(), opts.logger())
	if err != nil {
		return nil, iters, err
	}
	if err := verifyImage(img, root); err != nil {
		return nil, iters, err
	}
	return img, iters, nil
}

// sizeFAT finds the FAT and DIFAT sector counts for a container whose other
// structures occupy base sectors. FAT sectors consume FAT entries themselves,
// and once the FAT outgrows the header's 109 slots the DIFAT sectors do too,
// so both counts are iterated to a fixed point.
func sizeFAT(base, perSector, maxIter int, log *slog.Logger) (fat, difat, iters int, err error) {
	fat = 1
	for iters = 1; iters <= maxIter; iters++ {
		total := base + fat + difat
		needFAT := buf.CeilDiv(total, perSector)
		needDIFAT := 0
		if needFAT > format.HeaderDIFATEntries {
			needDIFAT = buf.CeilDiv(needFAT-format.HeaderDIFATEntries, perSector-1)
		}
		log.Debug("fat layout iteration", "iteration", iters, "base", base, "fat", needFAT, "difat", needDIFAT)
		if needFAT == fat && needDIFAT == difat {
			return fat, difat, iters, nil
		}
		fat, difat = needFAT, needDIFAT
	}
	return 0, 0, maxIter, fmt.Errorf("%d sectors after %d iterations: %w", base, maxIter, ErrLayoutNotConverged)
}

// layout places every structure in this order:
//
//	[regular streams][mini stream][mini FAT][directory][FAT][DIFAT]
//
// and returns the finished image.
func layout(root *node, major uint16, maxIter int, log *slog.Logger) ([]byte, int, error) {
	hdr := format.NewHeader(major)
	ss := hdr.SectorSize()
	perSector := ss / 4
	miniSize := hdr.MiniSectorSize()

	nodes := flatten(root)
	linkTree(root)

	var regular, mini []*node
	for _, n := range nodes {
		if n.typ != format.TypeStream || len(n.data) == 0 {
			continue
		}
		if len(n.data) < format.MiniStreamCutoff {
			mini = append(mini, n)
		} else {
			regular = append(regular, n)
		}
	}

	scratch := getBuffer()
	defer putBuffer(scratch)
	miniData := *scratch
	miniChains := make([][2]int, len(mini))
	for i, n := range mini {
		first := len(miniData) / miniSize
		miniData = append(miniData, n.data...)
		for len(miniData)%miniSize != 0 {
			miniData = append(miniData, 0)
		}
		miniChains[i] = [2]int{first, len(miniData)/miniSize - first}
		n.start = uint32(first)
	}
	*scratch = miniData
	miniSecs := len(miniData) / miniSize

	regSecs := 0
	for _, n := range regular {
		regSecs += buf.CeilDiv(len(n.data), ss)
	}
	miniContainerSecs := buf.CeilDiv(len(miniData), ss)
	miniFATSecs := buf.CeilDiv(miniSecs*4, ss)
	dirSecs := buf.CeilDiv(len(nodes)*format.DirEntrySize, ss)
	base := regSecs + miniContainerSecs + miniFATSecs + dirSecs

	fatSecs, difatSecs, iters, err := sizeFAT(base, perSector, maxIter, log)
	if err != nil {
		return nil, iters, err
	}

	a := newAllocator(fatSecs * perSector)
	for _, n := range regular {
		n.start = a.chain(buf.CeilDiv(len(n.data), ss))
	}
	miniStart := a.chain(miniContainerSecs)
	miniFATStart := a.chain(miniFATSecs)
	dirStart := a.chain(dirSecs)
	fatSids := a.mark(fatSecs, format.FATSect)
	difatSids := a.mark(difatSecs, format.DIFSect)
	total := int(a.next)

	img := make([]byte, ss+total*ss)
	sector := func(sid uint32) []byte {
		off := int(hdr.SectorOffset(sid))
		return img[off : off+ss]
	}
	writeRun := func(start uint32, data []byte) {
		for i := 0; i*ss < len(data); i++ {
			end := min((i+1)*ss, len(data))
			copy(sector(start+uint32(i)), data[i*ss:end])
		}
	}

	for _, n := range regular {
		writeRun(n.start, n.data)
	}
	writeRun(miniStart, miniData)

	if miniFATSecs > 0 {
		mfat := make([]byte, miniFATSecs*ss)
		for i := 0; i < miniFATSecs*perSector; i++ {
			buf.PutU32LE(mfat, i*4, format.FreeSect)
		}
		for _, ch := range miniChains {
			for j := 0; j < ch[1]; j++ {
				next := uint32(ch[0] + j + 1)
				if j == ch[1]-1 {
					next = format.EndOfChain
				}
				buf.PutU32LE(mfat, (ch[0]+j)*4, next)
			}
		}
		writeRun(miniFATStart, mfat)
	}

	dir := make([]byte, dirSecs*ss)
	for _, n := range nodes {
		e := format.DirEntry{
			Name:        n.name,
			Type:        n.typ,
			Color:       n.color,
			Left:        n.left,
			Right:       n.right,
			Child:       n.child,
			CLSID:       n.clsid,
			StateBits:   n.stateBits,
			Created:     n.created,
			Modified:    n.modified,
			StartSector: n.start,
		}
		switch n.typ {
		case format.TypeRoot:
			e.StartSector = miniStart
			e.Size = uint64(len(miniData))
		case format.TypeStream:
			e.Size = uint64(len(n.data))
			if len(n.data) == 0 {
				e.StartSector = format.EndOfChain
			}
		default:
			e.StartSector = 0
		}
		if err := format.PutDirEntry(dir[int(n.id)*format.DirEntrySize:], e); err != nil {
			return nil, iters, fmt.Errorf("directory entry %q: %w", n.name, err)
		}
	}
	for i := len(nodes); i < dirSecs*ss/format.DirEntrySize; i++ {
		_ = format.PutDirEntry(dir[i*format.DirEntrySize:], format.DirEntry{})
	}
	writeRun(dirStart, dir)

	for i, sid := range fatSids {
		s := sector(sid)
		for j := 0; j < perSector; j++ {
			buf.PutU32LE(s, j*4, a.fat[i*perSector+j])
		}
	}

	for i := 0; i < fatSecs && i < format.HeaderDIFATEntries; i++ {
		hdr.DIFAT[i] = fatSids[i]
	}
	rest := fatSids[min(fatSecs, format.HeaderDIFATEntries):]
	for i, sid := range difatSids {
		s := sector(sid)
		for j := 0; j < perSector-1; j++ {
			v := format.FreeSect
			if k := i*(perSector-1) + j; k < len(rest) {
				v = rest[k]
			}
			buf.PutU32LE(s, j*4, v)
		}
		next := format.EndOfChain
		if i+1 < len(difatSids) {
			next = difatSids[i+1]
		}
		buf.PutU32LE(s, (perSector-1)*4, next)
	}

	hdr.NumFATSectors = uint32(fatSecs)
	hdr.FirstDirSector = dirStart
	hdr.FirstMiniFATSector = miniFATStart
	hdr.NumMiniFATSectors = uint32(miniFATSecs)
	if difatSecs > 0 {
		hdr.FirstDIFATSector = difatSids[0]
	}
	hdr.NumDIFATSectors = uint32(difatSecs)
	if major == format.MajorVersion4 {
		hdr.NumDirSectors = uint32(dirSecs)
	}
	hdr.Put(img)

	log.Debug("container laid out", "sectors", total, "fat", fatSecs, "difat", difatSecs,
		"mini_sectors", miniSecs, "dir_sectors", dirSecs)
	return img, iters, nil
}

// verifyImage reopens img and compares every stream against the tree it was
// built from.
func verifyImage(img []byte, root *node) error {
	c, err := reader.OpenBytes(img)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRebuildFailed, err)
	}
	var check func(n *node, prefix string) error
	check = func(n *node, prefix string) error {
		for _, ch := range n.children {
			path := ch.name
			if prefix != "" {
				path = prefix + "/" + ch.name
			}
			if ch.typ == format.TypeStream {
				got, err := c.Stream(path)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", ErrRebuildFailed, path, err)
				}
				if !bytes.Equal(got, ch.data) {
					return fmt.Errorf("%w: %s differs after rebuild", ErrRebuildFailed, path)
				}
				continue
			}
			if err := check(ch, path); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root, "")
}

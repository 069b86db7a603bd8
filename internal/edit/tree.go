package edit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
)

// node is one storage or stream of a container being laid out.
type node struct {
	name      string
	typ       format.ObjectType
	clsid     [16]byte
	stateBits uint32
	created   uint64
	modified  uint64
	data      []byte
	children  []*node

	// Assigned during layout.
	id    uint32
	left  uint32
	right uint32
	child uint32
	color byte
	start uint32
}

func newRoot() *node {
	return &node{name: format.RootEntryName, typ: format.TypeRoot}
}

// harvest copies every reachable storage and stream out of c, keeping the
// metadata a rebuild has to carry over.
func harvest(c *reader.Container) (*node, error) {
	r := c.Root()
	root := newRoot()
	root.clsid = r.CLSID
	root.stateBits = r.StateBits
	root.created = r.Created
	root.modified = r.Modified

	// Children are attached in directory id order so an unchanged container
	// rebuilds to the same layout it was created with.
	entries := c.Entries()
	slices.SortFunc(entries, func(a, b reader.Entry) int { return cmp.Compare(a.ID, b.ID) })
	byID := map[uint32]*node{0: root}
	for _, e := range entries {
		n := &node{
			name:      e.Name,
			typ:       e.Type,
			clsid:     e.CLSID,
			stateBits: e.StateBits,
			created:   e.Created,
			modified:  e.Modified,
		}
		if e.IsStream() {
			data, err := c.ReadEntry(e.DirEntry)
			if err != nil {
				return nil, fmt.Errorf("harvest %s: %w", e.Path, err)
			}
			n.data = data
		}
		byID[e.ID] = n
	}
	for _, e := range entries {
		parent, ok := byID[e.Parent]
		if !ok {
			return nil, fmt.Errorf("harvest %s: parent %d: %w", e.Path, e.Parent, format.ErrCorrupt)
		}
		parent.children = append(parent.children, byID[e.ID])
	}
	return root, nil
}

// find resolves a slash separated path below root.
func (n *node) find(path string) *node {
	cur := n
	for _, part := range splitPath(path) {
		var next *node
		for _, ch := range cur.children {
			if format.CompareNames(ch.name, part) == 0 {
				next = ch
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// put stores data at path, creating the stream and any missing storages when
// create is set.
func (n *node) put(path string, data []byte, create bool, modified uint64) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return fmt.Errorf("empty stream path: %w", reader.ErrStreamNotFound)
	}
	cur := n
	for i, part := range parts {
		var next *node
		for _, ch := range cur.children {
			if format.CompareNames(ch.name, part) == 0 {
				next = ch
				break
			}
		}
		last := i == len(parts)-1
		if next == nil {
			if !create {
				return fmt.Errorf("%s: %w", path, reader.ErrStreamNotFound)
			}
			if _, err := format.EncodeName(part); err != nil {
				return err
			}
			next = &node{name: part, typ: format.TypeStorage}
			if last {
				next.typ = format.TypeStream
			}
			cur.children = append(cur.children, next)
		}
		if last {
			if next.typ != format.TypeStream {
				return fmt.Errorf("%s is a storage: %w", path, reader.ErrStreamNotFound)
			}
			next.data = data
			if modified != 0 {
				next.modified = modified
			}
			return nil
		}
		if next.typ == format.TypeStream {
			return fmt.Errorf("%s: %s is a stream: %w", path, part, reader.ErrStreamNotFound)
		}
		cur = next
	}
	return nil
}

// flatten lists root first followed by its descendants depth-first, and
// assigns directory ids in that order.
func flatten(root *node) []*node {
	var out []*node
	var walk func(n *node)
	walk = func(n *node) {
		n.id = uint32(len(out))
		out = append(out, n)
		for _, ch := range n.children {
			walk(ch)
		}
	}
	walk(root)
	return out
}

// linkTree builds a balanced sibling tree for every storage. Siblings are
// ordered by compound file name comparison and split at the midpoint; nodes
// on the deepest, incomplete level are red and all others black, which keeps
// the black height equal on every path.
func linkTree(root *node) {
	root.left, root.right = format.NoStream, format.NoStream
	root.color = format.ColorBlack
	linkChildren(root)
}

func linkChildren(n *node) {
	kids := slices.Clone(n.children)
	slices.SortStableFunc(kids, func(a, b *node) int { return format.CompareNames(a.name, b.name) })
	n.child = place(kids, 0, nilDepth(len(kids)))
	for _, ch := range n.children {
		if ch.typ == format.TypeStream {
			ch.child = format.NoStream
			continue
		}
		linkChildren(ch)
	}
}

func place(s []*node, depth, redFrom int) uint32 {
	if len(s) == 0 {
		return format.NoStream
	}
	mid := len(s) / 2
	n := s[mid]
	n.left = place(s[:mid], depth+1, redFrom)
	n.right = place(s[mid+1:], depth+1, redFrom)
	n.color = format.ColorBlack
	if depth >= redFrom {
		n.color = format.ColorRed
	}
	return n.id
}

// nilDepth is the depth of the shallowest empty link in a midpoint tree of n
// nodes. The right half is never larger than the left.
func nilDepth(n int) int {
	if n == 0 {
		return 0
	}
	return 1 + nilDepth(n-1-n/2)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

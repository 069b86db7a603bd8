package edit

import (
	"io"
	"log/slog"
	"slices"

	"github.com/joshuapare/schdockit/schdoc"
)

// Options configures a Session.
type Options struct {
	// Logger receives a debug record per added or removed object. Nil discards.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Session edits one document. It is not safe for concurrent use.
type Session struct {
	doc  *schdoc.Document
	next int
	log  *slog.Logger
}

// NewSession starts a session on doc. New objects are numbered from
// doc.FreeIndex, past every index in use or still referenced.
func NewSession(doc *schdoc.Document, opts *Options) *Session {
	return &Session{doc: doc, next: doc.FreeIndex(), log: opts.logger()}
}

// Blank starts a session on a new document holding a header and a sheet
// with the two default fonts.
func Blank(opts *Options) *Session {
	s := NewSession(schdoc.NewDocument(), opts)

	h := schdoc.NewHeader()
	h.Version = schdoc.DefaultHeaderVersion
	h.Weight = 0
	h.MinorVersion = 13
	s.add(h, nil)

	sheet := schdoc.NewSheet()
	sheet.AddFont(schdoc.Font{Size: 10, Name: "Times New Roman"})
	sheet.AddFont(schdoc.Font{Size: 10, Name: "Arial"})
	s.add(sheet, nil)
	return s
}

// Document returns the document being edited.
func (s *Session) Document() *schdoc.Document { return s.doc }

// NextIndex returns the index the next added object will get.
func (s *Session) NextIndex() int { return s.next }

// Add appends o with the next index and a fresh unique ID. When owner is
// non-nil, o is owned by it and linked into its children.
func (s *Session) Add(o, owner schdoc.Object) {
	s.add(o, owner)
}

func (s *Session) add(o, owner schdoc.Object) {
	b := o.Common()
	b.Index = s.next
	s.next++
	if b.UniqueID == "" {
		b.UniqueID = NewUniqueID()
	}
	b.OwnerIndex = -1
	if owner != nil {
		b.OwnerIndex = owner.Common().Index
		if c, ok := owner.(schdoc.Container); ok {
			c.AppendChild(o)
		}
	}
	s.doc.Append(o)
	s.log.Debug("object added", "kind", o.Kind().String(), "index", b.Index, "owner", b.OwnerIndex)
}

// FindComponent returns the component whose designator is designator.
func (s *Session) FindComponent(designator string) (*schdoc.Component, bool) {
	for _, c := range s.doc.Components() {
		if c.Designator() == designator {
			return c, true
		}
	}
	return nil, false
}

// Remove drops o from the document. It fails with ErrHasChildren while any
// object still names o as its owner.
func (s *Session) Remove(o schdoc.Object) error {
	if !slices.Contains(s.doc.Objects(), o) {
		return ErrNotInDocument
	}
	if owned := s.doc.Owned(o); len(owned) > 0 {
		return ErrHasChildren
	}
	s.doc.Remove(o)
	s.log.Debug("object removed", "kind", o.Kind().String(), "index", o.Common().Index)
	return nil
}

// RemoveCascade drops o and everything it owns, directly or through other
// owned objects. It returns the number of objects removed.
func (s *Session) RemoveCascade(o schdoc.Object) (int, error) {
	if !slices.Contains(s.doc.Objects(), o) {
		return 0, ErrNotInDocument
	}
	var order []schdoc.Object
	seen := make(map[schdoc.Object]bool)
	var walk func(schdoc.Object)
	walk = func(cur schdoc.Object) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		for _, c := range s.doc.Owned(cur) {
			walk(c)
		}
		order = append(order, cur)
	}
	walk(o)

	n := 0
	for _, r := range order {
		if s.doc.Remove(r) {
			n++
		}
	}
	s.log.Debug("objects removed", "root", o.Common().Index, "count", n)
	return n, nil
}

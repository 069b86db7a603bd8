package verify

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/reader"
	"github.com/joshuapare/schdockit/schdoc"
	"github.com/joshuapare/schdockit/schdoc/record"
)

// Severity ranks an anomaly.
type Severity int

const (
	// Warning marks content a consumer can tolerate.
	Warning Severity = iota
	// Error marks content that breaks the document structure.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Code identifies a check.
type Code string

const (
	MissingHeader    Code = "missing-header"
	HeaderNotFirst   Code = "header-not-first"
	DuplicateHeader  Code = "duplicate-header"
	MissingSheet     Code = "missing-sheet"
	DuplicateSheet   Code = "duplicate-sheet"
	DuplicateIndex   Code = "duplicate-index"
	UnresolvedOwner  Code = "unresolved-owner"
	SelfOwner        Code = "self-owner"
	OwnerCycle       Code = "owner-cycle"
	PointCount       Code = "point-count"
	FontID           Code = "font-id"
	FramingRecovered Code = "framing"
)

// Anomaly is one finding.
type Anomaly struct {
	Code     Code
	Severity Severity
	// Index is the object the finding concerns, or -1.
	Index   int
	Kind    schdoc.Kind
	Message string
}

func (a Anomaly) String() string {
	if a.Index >= 0 {
		return fmt.Sprintf("%s %s at object %d (%s): %s", a.Severity, a.Code, a.Index, a.Kind, a.Message)
	}
	return fmt.Sprintf("%s %s: %s", a.Severity, a.Code, a.Message)
}

// Report collects the findings for one document.
type Report struct {
	Objects   int
	Anomalies []Anomaly
}

// OK reports whether no anomaly was found.
func (r Report) OK() bool { return len(r.Anomalies) == 0 }

// Errors counts anomalies of severity Error.
func (r Report) Errors() int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Severity == Error {
			n++
		}
	}
	return n
}

// Count returns the number of anomalies with the given code.
func (r Report) Count(c Code) int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Code == c {
			n++
		}
	}
	return n
}

func (r *Report) add(c Code, s Severity, o schdoc.Object, format string, args ...any) {
	a := Anomaly{Code: c, Severity: s, Index: -1, Kind: schdoc.KindNone, Message: fmt.Sprintf(format, args...)}
	if o != nil {
		a.Index = o.Common().Index
		a.Kind = o.Kind()
	}
	r.Anomalies = append(r.Anomalies, a)
}

// Document runs every document check.
func Document(d *schdoc.Document) Report {
	rep := Report{Objects: d.Len()}
	objs := d.Objects()
	singletons(&rep, objs)
	indices(&rep, objs)
	owners(&rep, d, objs)
	vertices(&rep, objs)
	fonts(&rep, d, objs)
	return rep
}

// Streams turns framing recovery into anomalies.
func Streams(sr schdoc.StreamReport) []Anomaly {
	var out []Anomaly
	for _, s := range []struct {
		name string
		rep  record.Report
	}{{schdoc.FileHeaderStream, sr.FileHeader}, {schdoc.AdditionalStream, sr.Additional}} {
		for _, fe := range s.rep.Resyncs {
			out = append(out, Anomaly{Code: FramingRecovered, Severity: Warning, Index: -1, Kind: schdoc.KindNone,
				Message: fmt.Sprintf("%s: %v", s.name, fe)})
		}
		if s.rep.Truncated {
			out = append(out, Anomaly{Code: FramingRecovered, Severity: Error, Index: -1, Kind: schdoc.KindNone,
				Message: fmt.Sprintf("%s: record at offset %d runs past the end of the stream", s.name, s.rep.TruncatedAt)})
		}
		if s.rep.Trailing > 0 {
			out = append(out, Anomaly{Code: FramingRecovered, Severity: Warning, Index: -1, Kind: schdoc.KindNone,
				Message: fmt.Sprintf("%s: %d trailing bytes", s.name, s.rep.Trailing)})
		}
	}
	return out
}

func singletons(rep *Report, objs []schdoc.Object) {
	headers, sheets := 0, 0
	for i, o := range objs {
		switch o.(type) {
		case *schdoc.Header:
			headers++
			if headers > 1 {
				rep.add(DuplicateHeader, Error, o, "second header record")
			} else if i != 0 {
				rep.add(HeaderNotFirst, Error, o, "header at position %d", i)
			}
		case *schdoc.Sheet:
			sheets++
			if sheets > 1 {
				rep.add(DuplicateSheet, Error, o, "second sheet record")
			}
		}
	}
	if headers == 0 {
		rep.add(MissingHeader, Error, nil, "no header record")
	}
	if sheets == 0 {
		rep.add(MissingSheet, Error, nil, "no sheet record")
	}
}

func indices(rep *Report, objs []schdoc.Object) {
	seen := make(map[int]bool, len(objs))
	for _, o := range objs {
		i := o.Common().Index
		if seen[i] {
			rep.add(DuplicateIndex, Error, o, "index %d used more than once", i)
		}
		seen[i] = true
	}
}

func owners(rep *Report, d *schdoc.Document, objs []schdoc.Object) {
	for _, o := range objs {
		b := o.Common()
		if b.OwnerIndex < 0 {
			continue
		}
		if b.OwnerIndex == b.Index {
			rep.add(SelfOwner, Error, o, "owns itself")
			continue
		}
		if d.Owner(o) == nil {
			rep.add(UnresolvedOwner, Warning, o, "owner index %d resolves to no object", b.OwnerIndex)
			continue
		}
		// walk up; a chain longer than the document is a cycle
		cur := o
		for range len(objs) + 1 {
			cur = d.Owner(cur)
			if cur == nil {
				break
			}
			if cur == o {
				rep.add(OwnerCycle, Error, o, "owner chain returns to this object")
				break
			}
		}
	}
}

func vertices(rep *Report, objs []schdoc.Object) {
	for _, o := range objs {
		switch o.Kind() {
		case schdoc.KindWire, schdoc.KindBus, schdoc.KindPolyline, schdoc.KindPolygon, schdoc.KindSheetEntryLine:
		default:
			continue
		}
		t := o.Common().Props()
		n := t.Int("LOCATIONCOUNT", 0)
		if n < 0 {
			rep.add(PointCount, Error, o, "negative LOCATIONCOUNT %d", n)
			continue
		}
		for i := 1; i <= n; i++ {
			if !hasVertex(t.Has, "X", i) || !hasVertex(t.Has, "Y", i) {
				rep.add(PointCount, Warning, o, "LOCATIONCOUNT %d but vertex %d is missing", n, i)
				break
			}
		}
		if hasVertex(t.Has, "X", n+1) {
			rep.add(PointCount, Warning, o, "vertex %d present beyond LOCATIONCOUNT %d", n+1, n)
		}
	}
}

func hasVertex(has func(string) bool, axis string, i int) bool {
	k := axis + strconv.Itoa(i)
	return has(k) || has("LOCATION."+k)
}

func fonts(rep *Report, d *schdoc.Document, objs []schdoc.Object) {
	if d.Sheet == nil {
		return
	}
	n := len(d.Sheet.Fonts)
	for _, o := range objs {
		id, ok := fontID(o)
		if !ok || id == 0 {
			continue
		}
		if id < 0 || id > n {
			rep.add(FontID, Warning, o, "font %d outside the %d-entry font table", id, n)
		}
	}
}

func fontID(o schdoc.Object) (int, bool) {
	switch v := o.(type) {
	case *schdoc.Label:
		return v.FontID, true
	case *schdoc.NetLabel:
		return v.FontID, true
	case *schdoc.PowerPort:
		return v.FontID, true
	case *schdoc.Parameter:
		return v.FontID, true
	case *schdoc.Designator:
		return v.FontID, true
	case *schdoc.TextFrame:
		return v.FontID, true
	case *schdoc.Port:
		return v.FontID, true
	}
	return 0, false
}

// Container checks that data is a readable compound file: the header, the
// FAT and mini FAT chains of every stream, and the directory tree.
func Container(data []byte) error {
	c, err := reader.OpenBytes(data)
	if err != nil {
		return err
	}
	defer c.Close()

	claimed := make(map[uint32]string)
	claim := func(name string, chain []uint32) error {
		for _, sid := range chain {
			if prev, dup := claimed[sid]; dup {
				return fmt.Errorf("sector %d used by both %s and %s: %w", sid, prev, name, format.ErrCorrupt)
			}
			claimed[sid] = name
		}
		return nil
	}
	fat := c.FAT()
	for _, sid := range c.FATSectors() {
		if int(sid) < len(fat) && fat[sid] != format.FATSect {
			return fmt.Errorf("FAT sector %d not marked in the FAT: %w", sid, format.ErrCorrupt)
		}
	}
	for _, region := range []struct {
		name  string
		chain []uint32
	}{
		{"FAT", c.FATSectors()},
		{"DIFAT", c.DIFATSectors()},
		{"directory", c.DirSectors()},
		{"mini FAT", c.MiniFATSectors()},
	} {
		if err := claim(region.name, region.chain); err != nil {
			return err
		}
	}
	if root := c.Root(); root.Size > 0 {
		chain, err := c.Chain(root.StartSector)
		if err != nil {
			return fmt.Errorf("mini stream: %w", err)
		}
		if err := claim("mini stream", chain); err != nil {
			return err
		}
	}
	for _, e := range c.Entries() {
		if !e.IsStream() || e.Size == 0 || c.IsMini(e.Size) {
			continue
		}
		chain, err := c.Chain(e.StartSector)
		if err != nil {
			return fmt.Errorf("stream %s: %w", e.Path, err)
		}
		if err := claim(e.Path, chain); err != nil {
			return err
		}
	}
	for _, e := range c.Entries() {
		if !e.IsStream() {
			continue
		}
		if _, err := c.ReadEntry(e.DirEntry); err != nil {
			return fmt.Errorf("stream %s: %w", e.Path, err)
		}
	}
	return nil
}

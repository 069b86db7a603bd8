package schdoc

import (
	"strconv"
	"strings"

	"github.com/joshuapare/schdockit/schdoc/props"
	"github.com/joshuapare/schdockit/schdoc/record"
)

var constructors = map[Kind]func() Object{
	KindHeader:               func() Object { return &Header{} },
	KindComponent:            func() Object { return &Component{} },
	KindPin:                  func() Object { return &Pin{} },
	KindLabel:                func() Object { return &Label{} },
	KindPolyline:             func() Object { return &Polyline{} },
	KindPolygon:              func() Object { return &Polygon{} },
	KindEllipse:              func() Object { return &Ellipse{} },
	KindRoundRect:            func() Object { return &RoundRect{} },
	KindArc:                  func() Object { return &Arc{} },
	KindLine:                 func() Object { return &Line{} },
	KindRectangle:            func() Object { return &Rectangle{} },
	KindSheetSymbol:          func() Object { return &SheetSymbol{} },
	KindPowerPort:            func() Object { return &PowerPort{} },
	KindPort:                 func() Object { return &Port{} },
	KindNoERC:                func() Object { return &NoERC{} },
	KindNetLabel:             func() Object { return &NetLabel{} },
	KindBus:                  func() Object { return &Bus{} },
	KindWire:                 func() Object { return &Wire{} },
	KindTextFrame:            func() Object { return &TextFrame{} },
	KindJunction:             func() Object { return &Junction{} },
	KindSheet:                func() Object { return &Sheet{} },
	KindDesignator:           func() Object { return &Designator{} },
	KindBusEntry:             func() Object { return &BusEntry{} },
	KindParameter:            func() Object { return &Parameter{} },
	KindImplementationList:   func() Object { return &ImplementationList{} },
	KindImplementation:       func() Object { return &Implementation{} },
	KindSheetEntryConnection: func() Object { return &SheetEntryConnection{} },
	KindSheetEntryPort:       func() Object { return &SheetEntryPort{} },
	KindSheetEntryLabel:      func() Object { return &SheetEntryLabel{} },
	KindSheetEntryLine:       func() Object { return &SheetEntryLine{} },
}

// New returns an empty object of kind k: the typed entity when one exists,
// otherwise a *Generic.
func New(k Kind) Object {
	mk, ok := constructors[k]
	if !ok {
		return NewGeneric(k)
	}
	o := mk()
	initNew(o)
	return o
}

// StreamReport describes recovery performed while reading the record
// streams.
type StreamReport struct {
	FileHeader record.Report
	Additional record.Report
	// FileHeaderRecords is the number of records read from FileHeader.
	FileHeaderRecords int
}

// Clean reports whether both streams were read without recovery.
func (r StreamReport) Clean() bool {
	return r.FileHeader.Clean() && r.Additional.Clean()
}

// DecodeStreams decodes the FileHeader stream followed by the optional
// Additional stream as one record sequence. additional may be nil.
func DecodeStreams(fileHeader, additional []byte) (*Document, StreamReport) {
	var rep StreamReport
	recs, fr := record.ReadWithReport(fileHeader)
	rep.FileHeader = fr
	rep.FileHeaderRecords = len(recs)
	streams := make([]Stream, len(recs))
	if additional != nil {
		more, ar := record.ReadWithReport(additional)
		rep.Additional = ar
		recs = append(recs, more...)
		for range more {
			streams = append(streams, InAdditional)
		}
	}
	return decode(recs, streams), rep
}

// Decode builds a document from records in stream order. It never fails:
// unknown kinds become *Generic, non-property records become *Opaque and
// fields that do not parse take their defaults.
func Decode(recs []record.Record) *Document {
	return decode(recs, nil)
}

func decode(recs []record.Record, streams []Stream) *Document {
	d := NewDocument()
	d.objects = make([]Object, 0, len(recs))
	for i, r := range recs {
		o := decodeRecord(i, r)
		if i < len(streams) {
			o.Common().Stream = streams[i]
		}
		d.objects = append(d.objects, o)
	}
	d.link()
	if len(d.objects) > 0 {
		d.Header, _ = d.objects[0].(*Header)
	}
	for _, o := range d.objects {
		if s, ok := o.(*Sheet); ok {
			d.Sheet = s
			break
		}
	}
	return d
}

func decodeRecord(i int, r record.Record) Object {
	if r.Type != record.TypeProperties {
		return &Opaque{
			Base:    Base{Index: i, OwnerIndex: -1, OwnerPartID: -1, raw: r.Payload},
			Type:    r.Type,
			Payload: r.Payload,
		}
	}
	t := r.Props
	if t == nil {
		t = props.Parse(r.Payload)
	}
	var o Object
	k, ok := recordKind(t)
	switch {
	case !ok && i == 0:
		o = &Header{}
	case !ok:
		o = &Generic{kind: KindNone}
	default:
		if mk, found := constructors[k]; found {
			o = mk()
		} else {
			o = &Generic{kind: k}
		}
	}
	project(o, decoder(t))
	base := o.Common()
	base.Index = i
	base.orig = t
	base.raw = r.Payload
	return o
}

func recordKind(t *props.Table) (Kind, bool) {
	s, ok := t.Get("RECORD")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return Kind(n), true
}

// link appends every object whose owner resolves to a container to that
// container's children.
func (d *Document) link() {
	byIndex := d.indexMap()
	for _, o := range d.objects {
		b := o.Common()
		if b.OwnerIndex < 0 || b.OwnerIndex == b.Index {
			continue
		}
		if c, ok := byIndex[b.OwnerIndex].(Container); ok {
			c.AppendChild(o)
		}
	}
}

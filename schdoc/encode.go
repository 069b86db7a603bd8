package schdoc

import (
	"fmt"
	"slices"

	"github.com/joshuapare/schdockit/schdoc/props"
	"github.com/joshuapare/schdockit/schdoc/record"
)

// EncodeOptions tunes encoding. The zero value reuses the original payload
// of every record whose properties did not change.
type EncodeOptions struct {
	// ForceRewrite serializes every property table, even unchanged ones.
	ForceRewrite bool
}

// Streams holds encoded record streams.
type Streams struct {
	FileHeader []byte
	// Additional is nil when no object lives in the Additional stream.
	Additional []byte
}

// Encode turns the document back into records: the header first, the sheet
// second when it is stored in FileHeader, then every other FileHeader object
// in document order, then the Additional objects.
//
// Encode reassigns every Index to the record's position and rewrites owner
// references accordingly; owner references that resolve to no object are
// kept as they are. The document's order is updated to match.
func Encode(d *Document, opts EncodeOptions) ([]record.Record, error) {
	d.reindex()
	recs := make([]record.Record, 0, len(d.objects))
	for _, o := range d.objects {
		r, err := encodeObject(o, opts.ForceRewrite)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// EncodeStreams encodes d and frames the records of each stream.
func EncodeStreams(d *Document, opts EncodeOptions) (Streams, error) {
	recs, err := Encode(d, opts)
	if err != nil {
		return Streams{}, err
	}
	var s Streams
	for i, r := range recs {
		// framing cannot fail: encodeObject bounds every payload
		if d.objects[i].Common().Stream == InAdditional {
			if s.Additional == nil {
				s.Additional = []byte{}
			}
			s.Additional, _ = record.Append(s.Additional, r.Type, r.Payload)
			continue
		}
		s.FileHeader, _ = record.Append(s.FileHeader, r.Type, r.Payload)
	}
	if s.FileHeader == nil {
		s.FileHeader = []byte{}
	}
	return s, nil
}

func (d *Document) order() []Object {
	out := make([]Object, 0, len(d.objects))
	var header, sheet Object
	if d.Header != nil && slices.Contains(d.objects, Object(d.Header)) {
		header = d.Header
		out = append(out, header)
	}
	if d.Sheet != nil && d.Sheet.Stream == InFileHeader && slices.Contains(d.objects, Object(d.Sheet)) {
		sheet = d.Sheet
		out = append(out, sheet)
	}
	for _, s := range []Stream{InFileHeader, InAdditional} {
		for _, o := range d.objects {
			if o == header || o == sheet || o.Common().Stream != s {
				continue
			}
			out = append(out, o)
		}
	}
	return out
}

// reindex puts the objects in encoding order and renumbers them.
func (d *Document) reindex() {
	ordered := d.order()
	remap := make(map[int]int, len(ordered))
	for i, o := range ordered {
		old := o.Common().Index
		if _, seen := remap[old]; old >= 0 && !seen {
			remap[old] = i
		}
	}
	// Unresolved owners move past the end so they cannot name a renumbered
	// object. Values already past the end are kept.
	var unresolved []int
	for _, o := range ordered {
		n := o.Common().OwnerIndex
		if _, ok := remap[n]; n >= 0 && !ok && !slices.Contains(unresolved, n) {
			unresolved = append(unresolved, n)
		}
	}
	slices.Sort(unresolved)
	next := len(ordered)
	for _, n := range unresolved {
		next = max(next, n+1)
	}
	moved := make(map[int]int, len(unresolved))
	removed := make(map[int]struct{})
	for _, n := range unresolved {
		to := n
		if n < len(ordered) {
			to = next
			next++
		}
		moved[n] = to
		if _, gone := d.removed[n]; gone {
			removed[to] = struct{}{}
		}
	}
	for i, o := range ordered {
		b := o.Common()
		b.Index = i
		if b.OwnerIndex < 0 {
			continue
		}
		if n, ok := remap[b.OwnerIndex]; ok {
			b.OwnerIndex = n
		} else {
			b.OwnerIndex = moved[b.OwnerIndex]
		}
	}
	d.objects = ordered
	d.removed = removed
}

func encodeObject(o Object, force bool) (record.Record, error) {
	b := o.Common()
	k := o.Kind()
	if op, ok := o.(*Opaque); ok {
		if len(op.Payload) > record.MaxPayload {
			return record.Record{}, &EncodeError{Index: b.Index, Kind: k,
				Err: fmt.Errorf("%w: %d bytes", record.ErrPayloadTooLarge, len(op.Payload))}
		}
		return record.Record{Type: op.Type, Payload: op.Payload}, nil
	}

	var out *props.Table
	switch {
	case b.bag != nil:
		out = b.bag.Clone()
	case b.orig != nil:
		out = b.orig.Clone()
	default:
		out = props.New()
	}
	if b.orig == nil && k >= 0 && k != KindHeader {
		out.SetInt("RECORD", int(k))
	}
	project(o, encoder(out, b.orig))
	if k > KindHeader {
		if rk, ok := recordKind(out); !ok || rk != k {
			out.SetInt("RECORD", int(k))
		}
	}

	var payload []byte
	if !force && b.raw != nil && out.Equal(b.orig) {
		payload = b.raw
	} else {
		payload = out.Serialize()
	}
	if len(payload) > record.MaxPayload {
		return record.Record{}, &EncodeError{Index: b.Index, Kind: k,
			Err: fmt.Errorf("%w: %d bytes", record.ErrPayloadTooLarge, len(payload))}
	}
	return record.Record{Type: record.TypeProperties, Payload: payload, Props: out}, nil
}

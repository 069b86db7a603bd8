// Package record splits and joins the length-prefixed record streams stored
// in schematic containers. Each record is framed as
//
//	Offset  Size  Description
//	------  ----  -------------------------------------------
//	 0x00    2    Payload length (little-endian)
//	 0x02    1    Reserved, always zero
//	 0x03    1    Type (0 = property list)
//	 0x04    n    Payload
package record

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/joshuapare/schdockit/internal/buf"
	"github.com/joshuapare/schdockit/schdoc/props"
)

const (
	// HeaderSize is the size of the framing in front of each payload.
	HeaderSize = 4
	// MaxPayload is the largest payload the 16-bit length can describe.
	MaxPayload = 0xFFFF
	// TypeProperties marks a payload holding a property table.
	TypeProperties byte = 0
)

// ErrPayloadTooLarge is returned when a payload exceeds MaxPayload bytes.
var ErrPayloadTooLarge = errors.New("record: payload exceeds 65535 bytes")

// Record is one framed unit of a record stream.
type Record struct {
	// Type is the outer type byte.
	Type byte
	// Payload is the raw payload, owned by the record.
	Payload []byte
	// Props is the decoded property table; nil unless Type is TypeProperties.
	Props *props.Table
	// Offset is where the record's framing started in the source stream.
	Offset int
}

// NewProperties returns a property record for t.
func NewProperties(t *props.Table) Record {
	return Record{Type: TypeProperties, Payload: t.Serialize(), Props: t}
}

// FrameError describes a run of bytes the reader skipped because no valid
// frame started there.
type FrameError struct {
	Offset  int
	Skipped int
}

func (e FrameError) Error() string {
	return fmt.Sprintf("record: skipped %d bytes of invalid framing at offset %d", e.Skipped, e.Offset)
}

// Report summarizes recovery performed while reading a stream.
type Report struct {
	// Resyncs lists every run of skipped bytes.
	Resyncs []FrameError
	// Truncated is set when the last frame claimed more bytes than remained.
	Truncated bool
	// TruncatedAt is the offset of the truncated frame.
	TruncatedAt int
	// Trailing counts bytes after the last record that were too short for a header.
	Trailing int
}

// Clean reports whether the stream was read without any recovery.
func (r Report) Clean() bool {
	return len(r.Resyncs) == 0 && !r.Truncated && r.Trailing == 0
}

// Read splits data into records. It never fails: a frame whose reserved byte
// is non-zero is skipped one byte at a time, and a frame running past the end
// of data stops the scan.
func Read(data []byte) []Record {
	recs, _ := ReadWithReport(data)
	return recs
}

// ReadWithReport is Read plus a description of the recovery it performed.
//
// After a bad frame the reader advances byte by byte and only accepts a
// property frame whose payload looks like a table ("|...\x00"), so a stray
// zero inside the damaged record cannot swallow the records behind it.
func ReadWithReport(data []byte) ([]Record, Report) {
	var (
		out       []Record
		rep       Report
		resyncing bool
	)
	skip := func(pos int) {
		if !resyncing {
			rep.Resyncs = append(rep.Resyncs, FrameError{Offset: pos})
			resyncing = true
		}
		rep.Resyncs[len(rep.Resyncs)-1].Skipped++
	}
	pos := 0
	for buf.Has(data, pos, HeaderSize) {
		length := int(buf.U16LE(data[pos:]))
		if data[pos+2] != 0 {
			skip(pos)
			pos++
			continue
		}
		typ := data[pos+3]
		payload, ok := buf.Slice(data, pos+HeaderSize, length)
		if resyncing && (!ok || !plausible(typ, payload)) {
			skip(pos)
			pos++
			continue
		}
		if !ok {
			rep.Truncated = true
			rep.TruncatedAt = pos
			return out, rep
		}
		resyncing = false
		r := Record{
			Type:    typ,
			Payload: bytes.Clone(payload),
			Offset:  pos,
		}
		if typ == TypeProperties {
			r.Props = props.Parse(payload)
		}
		out = append(out, r)
		pos += HeaderSize + length
	}
	rep.Trailing = len(data) - pos
	return out, rep
}

func plausible(typ byte, payload []byte) bool {
	n := len(payload)
	return typ == TypeProperties && n >= 2 && payload[0] == '|' && payload[n-1] == 0
}

// Frame prepends the record header to payload.
func Frame(typ byte, payload []byte) ([]byte, error) {
	return Append(nil, typ, payload)
}

// Append frames payload onto dst.
func Append(dst []byte, typ byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return dst, fmt.Errorf("%d bytes: %w", len(payload), ErrPayloadTooLarge)
	}
	hdr := [HeaderSize]byte{byte(len(payload)), byte(len(payload) >> 8), 0, typ}
	dst = append(dst, hdr[:]...)
	return append(dst, payload...), nil
}

// Join frames every record in order into a single stream.
func Join(recs []Record) ([]byte, error) {
	size := 0
	for _, r := range recs {
		size += HeaderSize + len(r.Payload)
	}
	out := make([]byte, 0, size)
	for i, r := range recs {
		var err error
		out, err = Append(out, r.Type, r.Payload)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}

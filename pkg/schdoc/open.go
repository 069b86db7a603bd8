package schdoc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joshuapare/schdockit/internal/reader"
	"github.com/joshuapare/schdockit/schdoc"
	sdedit "github.com/joshuapare/schdockit/schdoc/edit"
	"github.com/joshuapare/schdockit/schdoc/record"
	"github.com/joshuapare/schdockit/schdoc/verify"
)

// Schematic is a decoded document together with the container it was read
// from.
type Schematic struct {
	*schdoc.Document

	// Report describes framing recovery performed while reading.
	Report schdoc.StreamReport

	template []byte
}

// Open reads the document at path. The file is not held open after Open
// returns.
//
// Example:
//
//	doc, err := schdoc.Open("board.SchDoc", nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(doc.Components()), "components")
func Open(path string, opts *OpenOptions) (*Schematic, error) {
	c, err := openContainer(path, opts != nil && opts.NoMmap)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	s, err := fromContainer(c, opts.logger())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// OpenBytes decodes a document from container bytes. data is copied.
func OpenBytes(data []byte, opts *OpenOptions) (*Schematic, error) {
	c, err := reader.OpenBytes(data)
	if err != nil {
		return nil, err
	}
	return fromContainer(c, opts.logger())
}

// Parse decodes a document from its record streams without a container.
// additional may be nil. Saving the result creates a new container unless
// SaveOptions.Template is set.
func Parse(fileHeader, additional []byte, opts *OpenOptions) *Schematic {
	doc, rep := schdoc.DecodeStreams(fileHeader, additional)
	logReport(opts.logger(), rep)
	return &Schematic{Document: doc, Report: rep}
}

// New returns a blank document holding a header and a sheet.
func New() *Schematic {
	return &Schematic{Document: sdedit.Blank(nil).Document()}
}

// Edit starts an editing session on the document.
func (s *Schematic) Edit() *Session {
	return sdedit.NewSession(s.Document, nil)
}

// Verify runs the conformance checks on the document, including framing
// recovery done while reading it.
func (s *Schematic) Verify() verify.Report {
	rep := verify.Document(s.Document)
	rep.Anomalies = append(verify.Streams(s.Report), rep.Anomalies...)
	return rep
}

// Template returns the container bytes the document was read from, or nil.
func (s *Schematic) Template() []byte { return s.template }

func openContainer(path string, noMmap bool) (*reader.Container, error) {
	if noMmap {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		c, err := reader.OpenBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return c, nil
	}
	c, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func fromContainer(c *reader.Container, log *slog.Logger) (*Schematic, error) {
	fh, err := c.Stream(schdoc.FileHeaderStream)
	if errors.Is(err, reader.ErrStreamNotFound) {
		return nil, schdoc.ErrMissingStream
	}
	if err != nil {
		return nil, err
	}
	var additional []byte
	if c.Has(schdoc.AdditionalStream) {
		if additional, err = c.Stream(schdoc.AdditionalStream); err != nil {
			return nil, err
		}
		if additional == nil {
			additional = []byte{}
		}
	}

	doc, rep := schdoc.DecodeStreams(fh, additional)
	logReport(log, rep)
	log.Debug("document decoded",
		"objects", doc.Len(),
		"fileheader_records", rep.FileHeaderRecords,
		"additional", additional != nil)
	return &Schematic{Document: doc, Report: rep, template: bytes.Clone(c.Data())}, nil
}

func logReport(log *slog.Logger, rep schdoc.StreamReport) {
	for name, r := range map[string]record.Report{
		schdoc.FileHeaderStream: rep.FileHeader,
		schdoc.AdditionalStream: rep.Additional,
	} {
		for _, fe := range r.Resyncs {
			log.Warn("record stream resynchronized", "stream", name, "offset", fe.Offset, "skipped", fe.Skipped)
		}
		if r.Truncated {
			log.Warn("record stream truncated", "stream", name, "offset", r.TruncatedAt)
		}
		if r.Trailing > 0 {
			log.Warn("trailing bytes after last record", "stream", name, "bytes", r.Trailing)
		}
	}
}

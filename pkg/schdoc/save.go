package schdoc

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/joshuapare/schdockit/internal/edit"
	"github.com/joshuapare/schdockit/internal/reader"
	"github.com/joshuapare/schdockit/internal/writer"
	"github.com/joshuapare/schdockit/schdoc"
)

// StorageData is the content of the Storage stream written to new
// containers.
var StorageData = schdoc.StorageData

// Save encodes the document and writes it to path atomically.
//
// Example:
//
//	err := doc.Save("board.SchDoc", &schdoc.SaveOptions{CreateBackup: true})
func (s *Schematic) Save(path string, opts *SaveOptions) error {
	if opts == nil {
		opts = &SaveOptions{}
	}
	if !opts.NoLock {
		lock := flock.New(path + ".lock")
		if err := lock.Lock(); err != nil {
			return fmt.Errorf("lock %s: %w", path, err)
		}
		defer func() { _ = lock.Unlock() }()
	}

	w := &writer.FileWriter{Path: path, Backup: opts.CreateBackup}
	if err := s.commit(w, opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	opts.logger().Info("document saved", "path", path, "size", len(s.template))
	return nil
}

// SaveBytes encodes the document and returns the container image. Later
// saves patch the returned image.
func (s *Schematic) SaveBytes(opts *SaveOptions) ([]byte, error) {
	if opts == nil {
		opts = &SaveOptions{}
	}
	var w writer.MemWriter
	if err := s.commit(&w, opts); err != nil {
		return nil, err
	}
	return w.Buf, nil
}

// commit builds the container and hands it to sink. The template moves to
// the new image only once the sink accepted it.
func (s *Schematic) commit(sink writer.Sink, opts *SaveOptions) error {
	data, err := s.build(opts)
	if err != nil {
		return err
	}
	if err := sink.WriteContainer(data); err != nil {
		return err
	}
	s.template = data
	return nil
}

func (s *Schematic) build(opts *SaveOptions) ([]byte, error) {
	log := opts.logger()

	if !opts.AllowDanglingOwners {
		if dangling := s.DanglingOwners(); len(dangling) > 0 {
			b := dangling[0].Common()
			return nil, fmt.Errorf("%d objects, first at index %d owned by %d: %w",
				len(dangling), b.Index, b.OwnerIndex, schdoc.ErrDanglingOwner)
		}
	}

	streams, err := schdoc.EncodeStreams(s.Document, schdoc.EncodeOptions{ForceRewrite: opts.ForceRewrite})
	if err != nil {
		return nil, err
	}

	template := opts.Template
	if template == nil {
		template = s.template
	}
	var out []byte
	if template == nil {
		out, err = create(streams, opts)
	} else {
		out, err = patch(template, streams, opts)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("document encoded",
		"objects", s.Len(),
		"fileheader_bytes", len(streams.FileHeader),
		"additional_bytes", len(streams.Additional))
	return out, nil
}

func create(streams schdoc.Streams, opts *SaveOptions) ([]byte, error) {
	updates := []edit.Update{
		{Path: schdoc.FileHeaderStream, Data: streams.FileHeader},
		{Path: schdoc.StorageStream, Data: StorageData},
	}
	if streams.Additional != nil {
		updates = append(updates, edit.Update{Path: schdoc.AdditionalStream, Data: streams.Additional})
	}
	opts.logger().Info("creating new container", "streams", len(updates))
	return edit.Create(updates, opts.editOptions())
}

func patch(template []byte, streams schdoc.Streams, opts *SaveOptions) ([]byte, error) {
	c, err := reader.OpenBytes(template)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	updates := []edit.Update{{Path: schdoc.FileHeaderStream, Data: streams.FileHeader}}
	switch {
	case streams.Additional != nil:
		updates = append(updates, edit.Update{Path: schdoc.AdditionalStream, Data: streams.Additional})
	case c.Has(schdoc.AdditionalStream):
		// every object moved out of Additional
		updates = append(updates, edit.Update{Path: schdoc.AdditionalStream, Data: []byte{}})
	}
	out, res, err := edit.ReplaceStreams(c, updates, opts.editOptions())
	if err != nil {
		return nil, err
	}
	for name, p := range res.Plans {
		opts.logger().Info("stream updated", "stream", name, "plan", p.String(), "rebuilt", res.Rebuilt)
	}
	return out, nil
}

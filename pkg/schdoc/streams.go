package schdoc

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/joshuapare/schdockit/internal/edit"
	"github.com/joshuapare/schdockit/internal/format"
	"github.com/joshuapare/schdockit/internal/writer"
)

// ListStreams returns the storages and streams of the container at path.
func ListStreams(path string) ([]StreamInfo, error) {
	c, err := openContainer(path, false)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	entries := c.Entries()
	out := make([]StreamInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, StreamInfo{
			Path:        e.Path,
			Storage:     e.IsStorage(),
			Size:        e.Size,
			StartSector: e.StartSector,
			Mini:        e.IsStream() && c.IsMini(e.Size),
			Created:     format.FiletimeToTime(e.Created),
			Modified:    format.FiletimeToTime(e.Modified),
		})
	}
	return out, nil
}

// ReadStream returns the content of one stream of the container at path.
func ReadStream(path, name string) ([]byte, error) {
	c, err := openContainer(path, false)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	data, err := c.Stream(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// PatchStream replaces the stream name of the container at src with data
// and writes the result to dst, which may equal src. The stream is created
// if it does not exist.
func PatchStream(src, name string, data []byte, dst string, opts *SaveOptions) (PatchResult, error) {
	if opts == nil {
		opts = &SaveOptions{}
	}
	if !opts.NoLock {
		lock := flock.New(dst + ".lock")
		if err := lock.Lock(); err != nil {
			return PatchResult{}, fmt.Errorf("lock %s: %w", dst, err)
		}
		defer func() { _ = lock.Unlock() }()
	}

	c, err := openContainer(src, true)
	if err != nil {
		return PatchResult{}, err
	}
	out, res, err := edit.ReplaceStream(c, name, data, opts.editOptions())
	if err != nil {
		return res, fmt.Errorf("%s: %w", src, err)
	}
	w := &writer.FileWriter{Path: dst, Backup: opts.CreateBackup}
	if err := w.WriteContainer(out); err != nil {
		return res, fmt.Errorf("write %s: %w", dst, err)
	}
	opts.logger().Info("stream patched", "stream", name, "plan", res.Plans[name].String(), "rebuilt", res.Rebuilt)
	return res, nil
}

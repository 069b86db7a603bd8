package edit

import (
	"fmt"

	"github.com/joshuapare/schdockit/internal/format"
)

// Create lays out a new container holding the given streams. Paths may name
// nested storages ("a/b"); missing storages are created. The sector size
// follows opts.MajorVersion (3 when unset).
func Create(streams []Update, opts Options) ([]byte, error) {
	major := opts.MajorVersion
	if major == 0 {
		major = format.MajorVersion3
	}
	if major != format.MajorVersion3 && major != format.MajorVersion4 {
		return nil, fmt.Errorf("create: major version %d: %w", major, format.ErrUnsupported)
	}
	root := newRoot()
	for _, s := range streams {
		if err := root.put(s.Path, s.Data, true, opts.stamp()); err != nil {
			return nil, fmt.Errorf("create: %w", err)
		}
	}
	img, iters, err := build(root, major, opts)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	opts.logger().Debug("container created", "streams", len(streams), "size", len(img), "iterations", iters)
	return img, nil
}

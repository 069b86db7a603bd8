//go:build !unix && !windows

package writer

import "os"

func replaceFile(src, dst string) error { return os.Rename(src, dst) }

func syncDir(string) error { return nil }

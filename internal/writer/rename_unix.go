//go:build unix

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

func replaceFile(src, dst string) error {
	return os.Rename(src, dst)
}

// syncDir flushes the directory entry so the rename survives a crash.
func syncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil
	}
	defer unix.Close(fd)
	if err := unix.Fsync(fd); err != nil && err != unix.EINVAL {
		return err
	}
	return nil
}

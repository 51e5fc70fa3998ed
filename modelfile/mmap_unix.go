//go:build unix

package modelfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map opens path and maps it read-only.
func Map(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat model: %w", err)
	}
	size := st.Size()
	if size == 0 {
		return nil, fmt.Errorf("model %s is empty", path)
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("model %s too large to map", path)
	}

	data, err := unix.Mmap(int(fd.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &File{Path: path, data: data, unmap: unix.Munmap}, nil
}

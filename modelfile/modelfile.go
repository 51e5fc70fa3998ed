// Package modelfile maps serialized network files into memory.
package modelfile

import (
	"fmt"
	"sync"
)

// File holds the bytes of a model asset. On unix the bytes are a read-only
// shared mapping and must not be modified.
type File struct {
	Path string

	data  []byte
	once  sync.Once
	unmap func([]byte) error
}

// Bytes returns the mapped contents. It is invalid after Close.
func (f *File) Bytes() []byte {
	return f.data
}

func (f *File) Len() int {
	return len(f.data)
}

// Close releases the mapping. Subsequent calls are no-ops.
func (f *File) Close() error {
	var err error
	f.once.Do(func() {
		if f.unmap != nil && f.data != nil {
			if uerr := f.unmap(f.data); uerr != nil {
				err = fmt.Errorf("unmap %s: %w", f.Path, uerr)
			}
		}
		f.data = nil
	})
	return err
}

//go:build !unix

package modelfile

import (
	"fmt"
	"os"
)

// Map reads path into memory.
func Map(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("model %s is empty", path)
	}
	return &File{Path: path, data: data}, nil
}

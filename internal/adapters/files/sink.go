// Package files saves exported assets to the local filesystem.
package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thumlify/thumlify-cli/internal/ports"
)

const (
	exportDirMode  = 0o755
	exportFileMode = 0o644
)

type Sink struct {
	Dir string
}

var _ ports.AssetSink = (*Sink)(nil)

func (s *Sink) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, exportDirMode); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, exportFileMode); err != nil {
		return "", fmt.Errorf("write export %q: %w", name, err)
	}

	return path, nil
}

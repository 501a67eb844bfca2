package federation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemSink writes one JSON file per artifact into a directory.
type FilesystemSink struct {
	dir string
}

// NewFilesystemSink creates the sink, ensuring the directory exists.
func NewFilesystemSink(dir string) (*FilesystemSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("federation: filesystem sink: %w", err)
	}
	return &FilesystemSink{dir: dir}, nil
}

func (s *FilesystemSink) Name() string { return "filesystem" }

// Dispatch writes the payload to <dir>/<artifact_id>.json. An existing
// file is not overwritten; exports are append-only like the ledger.
func (s *FilesystemSink) Dispatch(_ context.Context, artifactID string, payload []byte) error {
	path := filepath.Join(s.dir, artifactID+".json")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("federation: filesystem sink open: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("federation: filesystem sink write: %w", err)
	}
	return nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	errs "github.com/toestah/dawson-extractor/pkg/errors"
	"github.com/toestah/dawson-extractor/pkg/metadata"
)

// Manager writes documents and their metadata into one output directory
type Manager struct {
	outputDir string
}

// NewManager creates the output directory if needed
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errs.Filesystem(outputDir, fmt.Errorf("failed to create output directory: %w", err))
	}

	return &Manager{outputDir: outputDir}, nil
}

// OutputDir returns the directory documents are written to
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// Save writes payload under filename and the metadata next to it. The PDF is
// written to a temporary file and renamed into place; if the metadata write
// fails the PDF is removed again, so a document only ever appears on disk
// together with its metadata.
func (m *Manager) Save(filename string, payload []byte, meta *metadata.DocumentMetadata) (string, error) {
	path := filepath.Join(m.outputDir, filename)

	if err := writeAtomic(path, payload); err != nil {
		return "", errs.Filesystem(path, err)
	}

	meta.DownloadedAt = time.Now().UTC()
	meta.FileSize = int64(len(payload))
	if err := meta.Save(path); err != nil {
		os.Remove(path)
		return "", errs.Filesystem(metadata.PathFor(path), err)
	}

	return path, nil
}

// writeAtomic writes data to path via a temporary file and rename
func writeAtomic(path string, data []byte) error {
	tempFile := path + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = out.Write(data)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write document data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

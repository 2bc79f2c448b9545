package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DocumentMetadata is the sidecar record written next to every downloaded PDF
type DocumentMetadata struct {
	DocketNumber  string `json:"docket_number"`
	DocketEntryID string `json:"docket_entry_id"`
	DocumentType  string `json:"document_type"`
	Description   string `json:"description"`
	FiledDate     string `json:"filed_date"`

	// Set when the document is written
	DownloadedAt time.Time `json:"downloaded_at,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
}

// PathFor returns the sidecar path for a document: the PDF path with its
// extension replaced by .json
func PathFor(documentPath string) string {
	return strings.TrimSuffix(documentPath, filepath.Ext(documentPath)) + ".json"
}

// Save writes the metadata next to documentPath
func (m *DocumentMetadata) Save(documentPath string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(PathFor(documentPath), data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}

// Load reads the metadata stored next to documentPath
func Load(documentPath string) (*DocumentMetadata, error) {
	data, err := os.ReadFile(PathFor(documentPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var meta DocumentMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return &meta, nil
}

// Exists checks if a metadata file exists for a document
func Exists(documentPath string) bool {
	_, err := os.Stat(PathFor(documentPath))
	return err == nil
}

package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DocumentExt is the extension of every saved document
	DocumentExt = ".pdf"

	// UnknownDate stands in for a missing filing date
	UnknownDate = "Unknown"

	// maxTypesInDirName switches run folders to the short batch form
	maxTypesInDirName = 5
)

var pathSeparators = strings.NewReplacer("/", "_", `\`, "_")

// Filename returns the deterministic name of a saved document:
// {case}_{documentID}_{date}.pdf. Path separators in the case id become
// underscores and only the date part of the filing timestamp is kept.
func Filename(caseID, documentID, filedDate string) string {
	date := strings.SplitN(filedDate, "T", 2)[0]
	if date == "" {
		date = UnknownDate
	}
	return fmt.Sprintf("%s_%s_%s%s", pathSeparators.Replace(caseID), documentID, date, DocumentExt)
}

// ParseFilename extracts the document id from a saved document's name.
// Names without the .pdf extension or with fewer than three underscore
// separated segments are rejected.
func ParseFilename(name string) (string, bool) {
	base := filepath.Base(name)
	if filepath.Ext(base) != DocumentExt {
		return "", false
	}

	parts := strings.Split(strings.TrimSuffix(base, DocumentExt), "_")
	if len(parts) < 3 {
		return "", false
	}

	// The date is last and the id precedes it; anything before belongs to
	// the case id, which may itself contain underscores
	id := parts[len(parts)-2]
	if id == "" {
		return "", false
	}
	return id, true
}

// RunDirName names the folder of one extraction run after its wanted types
// and start time. Long type lists collapse to batch_{n}_types.
func RunDirName(types []string, now time.Time) string {
	stamp := now.Format("2006-01-02_150405")

	if len(types) > maxTypesInDirName {
		return fmt.Sprintf("batch_%d_types_%s", len(types), stamp)
	}

	names := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.ReplaceAll(t, " ", "_")
		names = append(names, pathSeparators.Replace(t))
	}
	return fmt.Sprintf("%s_%s", strings.Join(names, "_"), stamp)
}

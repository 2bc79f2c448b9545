// Package catalog stores the document types seen by discovery searches.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Entry is one document type and how often discovery saw it
type Entry struct {
	Type  string
	Count int
}

// Types keeps catalog entries in order, most frequent first. It encodes as a
// JSON object whose key order is the slice order.
type Types []Entry

// Catalog is the document written by discovery
type Catalog struct {
	DiscoveredAt time.Time `json:"discovered_at"`
	TotalTypes   int       `json:"total_types"`
	Types        Types     `json:"types"`
}

// FromCounts builds a catalog sorted by descending count. Ties are broken by
// name so the output is stable.
func FromCounts(counts map[string]int, discoveredAt time.Time) *Catalog {
	types := make(Types, 0, len(counts))
	for name, n := range counts {
		types = append(types, Entry{Type: name, Count: n})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].Type < types[j].Type
	})

	return &Catalog{
		DiscoveredAt: discoveredAt,
		TotalTypes:   len(types),
		Types:        types,
	}
}

// Top returns at most n of the most frequent types
func (c *Catalog) Top(n int) []Entry {
	if n > len(c.Types) {
		n = len(c.Types)
	}
	return c.Types[:n]
}

// Save writes the catalog as indented JSON
func Save(path string, c *Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Load reads a catalog. A missing file is reported with an error satisfying
// errors.Is(err, os.ErrNotExist).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// MarshalJSON writes the entries as an ordered object
func (t Types) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order
func (t *Types) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("types: expected object")
	}

	var out Types
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("types: expected string key")
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("types: count for %q: %w", name, err)
		}
		out = append(out, Entry{Type: name, Count: count})
	}

	*t = out
	return nil
}

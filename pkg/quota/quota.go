// Package quota tracks per-type download counts against a minimum so one
// dominant document type cannot fill a run on its own.
package quota

import (
	"strings"
	"sync"
)

// TypeCount is the running count of one configured type
type TypeCount struct {
	Type  string
	Count int
}

// Tracker holds the per-run counts. Counts start at zero each run and only
// increase.
type Tracker struct {
	mu         sync.Mutex
	types      []string
	counts     []int
	minPerType int
}

// New creates a tracker for the configured types. Names repeated in any case
// share one counter under their first spelling. A minimum of zero disables
// all minimum logic.
func New(types []string, minPerType int) *Tracker {
	t := &Tracker{minPerType: minPerType}
	for _, name := range types {
		if t.indexOf(name) < 0 {
			t.types = append(t.types, name)
		}
	}
	t.counts = make([]int, len(t.types))
	return t
}

// Active reports whether a per-type minimum is configured
func (t *Tracker) Active() bool {
	return t.minPerType > 0
}

// MinPerType returns the configured minimum
func (t *Tracker) MinPerType() int {
	return t.minPerType
}

// NeedsType reports whether a document of the given type should still be
// collected. Without a minimum every type is needed, and a type matching no
// configured name is never excluded.
func (t *Tracker) NeedsType(documentType string) bool {
	if !t.Active() {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(documentType)
	if i < 0 {
		return true
	}
	return t.counts[i] < t.minPerType
}

// AllMinimumsMet reports whether every configured type reached the minimum
func (t *Tracker) AllMinimumsMet() bool {
	if !t.Active() {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range t.counts {
		if c < t.minPerType {
			return false
		}
	}
	return true
}

// Record counts one successful download. The first configured name equal to
// the reported type (ignoring case) is incremented; unknown types are ignored.
func (t *Tracker) Record(documentType string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := t.indexOf(documentType); i >= 0 {
		t.counts[i]++
	}
}

// Counts returns the running counts in configured order
func (t *Tracker) Counts() []TypeCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]TypeCount, len(t.types))
	for i, name := range t.types {
		out[i] = TypeCount{Type: name, Count: t.counts[i]}
	}
	return out
}

func (t *Tracker) indexOf(documentType string) int {
	for i, name := range t.types {
		if strings.EqualFold(name, documentType) {
			return i
		}
	}
	return -1
}

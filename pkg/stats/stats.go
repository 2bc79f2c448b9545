// Package stats holds the counters for a single extraction run.
package stats

import "time"

// Run collects counters for one extraction run. It is written by the API
// client and the download step from a single flow of control.
type Run struct {
	APICalls   int
	Downloaded int
	Skipped    int
	Errors     int
	StartTime  time.Time
}

// New starts a fresh set of counters
func New() *Run {
	return &Run{StartTime: time.Now()}
}

func (r *Run) IncAPICalls()   { r.APICalls++ }
func (r *Run) IncDownloaded() { r.Downloaded++ }
func (r *Run) IncSkipped()    { r.Skipped++ }
func (r *Run) IncErrors()     { r.Errors++ }

// Elapsed returns the wall-clock duration since the run started.
// time.Since uses the monotonic clock reading captured by time.Now.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartTime)
}

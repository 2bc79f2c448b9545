package extractor

import (
	"time"

	"github.com/toestah/dawson-extractor/pkg/quota"
)

// RunOutcome says how a run ended. None of these is a failure.
type RunOutcome string

const (
	// OutcomeAlreadySatisfied means the target was met before any request
	OutcomeAlreadySatisfied RunOutcome = "already_satisfied"
	// OutcomeNothingFound means no search produced a candidate case
	OutcomeNothingFound RunOutcome = "nothing_found"
	// OutcomeCompleted means the needed number of new documents was saved
	OutcomeCompleted RunOutcome = "completed"
	// OutcomePartial means the cases ran out before the target was met
	OutcomePartial RunOutcome = "partial"
	// OutcomeCancelled means the context was cancelled mid-run
	OutcomeCancelled RunOutcome = "cancelled"
)

// Summary aggregates one run for printing and metrics
type Summary struct {
	Outcome        RunOutcome
	Target         int
	Existing       int
	Needed         int
	Collected      int
	Downloaded     int
	Skipped        int
	Errors         int
	APICalls       int
	TotalInLibrary int
	CasesFound     int
	CasesVisited   int
	MinPerType     int
	TypeCounts     []quota.TypeCount
	Duration       time.Duration
	OutputDir      string
}

// Complete reports whether the run met its target
func (s *Summary) Complete() bool {
	return s.Outcome == OutcomeCompleted || s.Outcome == OutcomeAlreadySatisfied
}

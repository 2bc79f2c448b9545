package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCounters(t *testing.T) {
	r := New()
	r.IncAPICalls()
	r.IncAPICalls()
	r.IncDownloaded()
	r.IncSkipped()
	r.IncErrors()

	assert.Equal(t, 2, r.APICalls)
	assert.Equal(t, 1, r.Downloaded)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Errors)
}

func TestElapsed(t *testing.T) {
	r := New()
	time.Sleep(10 * time.Millisecond)
	assert.GreaterOrEqual(t, r.Elapsed(), 10*time.Millisecond)
}

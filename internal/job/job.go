// Package job implements the batch maintenance jobs that keep the catalog
// and its scraped appearances consistent: resolution, deduplication, and
// text cleanup.
//
// Jobs are batch-sequential on purpose. Every job pages its input with
// keyset cursors, checkpoints progress after each batch, and paces store
// round trips with a rate limiter, so an interrupted run resumes where it
// stopped instead of starting over.
package job

import (
	"time"

	"github.com/minhdao/carlex/pkg/uuidv7"
)

// maxUnresolvedSamples caps how many unresolved mentions a summary carries.
// The full set lives in the database; the samples are for the report.
const maxUnresolvedSamples = 50

// UnresolvedSample is one mention the resolver could not place, kept for
// the run report.
type UnresolvedSample struct {
	AppearanceID string
	VehicleMake  string
	VehicleModel string
	ChassisCode  string
}

// Summary is the outcome of one job run.
type Summary struct {
	// RunID is a UUIDv7 identifying this run in logs and reports.
	RunID string
	// Job is the job name (see constants.JobResolve and friends).
	Job       string
	StartedAt time.Time
	Elapsed   time.Duration

	// Resolved counts appearances linked this run; ReviewTier counts the
	// subset linked at fuzzy confidence, which reports flag for review.
	Resolved   int64
	ReviewTier int64
	// Unresolved counts mentions no tier could place.
	Unresolved int64
	// Skipped counts structurally invalid rows (missing make).
	Skipped int64
	// Merged counts duplicate groups collapsed; Repointed counts the
	// dependent rows moved while merging.
	Merged    int64
	Repointed int64
	// Deleted counts rows removed (duplicate generations or appearances).
	Deleted int64
	// Cleaned counts rows whose text fields were rewritten.
	Cleaned int64
	// Errored counts groups or rows whose processing failed but did not
	// abort the run.
	Errored int64

	UnresolvedSamples []UnresolvedSample
}

func newSummary(job string) *Summary {
	return &Summary{
		RunID:     uuidv7.New(),
		Job:       job,
		StartedAt: time.Now(),
	}
}

func (s *Summary) finish() *Summary {
	s.Elapsed = time.Since(s.StartedAt)
	return s
}

func (s *Summary) sampleUnresolved(sample UnresolvedSample) {
	s.Unresolved++
	if len(s.UnresolvedSamples) < maxUnresolvedSamples {
		s.UnresolvedSamples = append(s.UnresolvedSamples, sample)
	}
}

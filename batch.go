package omr

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is one sheet of a batch. Exactly one of Path or Data is set.
type Job struct {
	// ID correlates the job with its result and log lines
	ID string

	Path    string
	Data    []byte
	Request Request
}

// BatchResult pairs a job with its scan result
type BatchResult struct {
	Job    Job
	Result Result
}

// ScanBatch scans jobs with at most workers sheets in flight. Results are
// returned in job order. Per-sheet failures stay in each result; the
// returned error is only the context's, and jobs not started before
// cancellation carry it in their result.
func ScanBatch(ctx context.Context, s *Scanner, jobs []Job, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]BatchResult, len(jobs))
	started := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		started[i] = true
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				started[i] = false
				return err
			}
			job := jobs[i]
			logger := s.logger.With("scan_id", job.ID)
			sc := *s
			sc.logger = logger
			results[i] = BatchResult{Job: job, Result: sc.scanJob(job)}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for i := range jobs {
		if !started[i] {
			cause := fmt.Errorf("not scanned: %w", err)
			results[i] = BatchResult{Job: jobs[i], Result: failed(nil, cause.Error(), cause)}
		}
	}

	return results, err
}

func (s *Scanner) scanJob(job Job) Result {
	if job.Data != nil {
		return s.ScanBytes(job.Data, job.Request)
	}
	return s.ScanFile(job.Path, job.Request)
}

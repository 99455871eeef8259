package memoryapi

import (
	"context"
	"time"
)

// StatusSource is the single operation the poller needs from the backend.
// *HTTPClient satisfies it.
type StatusSource interface {
	GetIngestionStatus(ctx context.Context, ingestionID string) (*IngestionJob, error)
}

// Poller waits for asynchronous ingestion jobs to settle.
type Poller struct {
	source StatusSource
}

// NewPoller returns a Poller reading job status from source.
func NewPoller(source StatusSource) *Poller {
	return &Poller{source: source}
}

// AwaitTerminal polls the job at fixed intervals (no backoff) until its
// status is completed or failed, the timeout elapses, or ctx is cancelled.
//
// A timeout is not an error: the job may still finish later, so the caller
// gets a synthetic StatusProcessing and must treat it as "still pending".
// Cancellation likewise returns the last observed status. Backend errors
// during a poll are treated as "still pending" and polling continues.
func (p *Poller) AwaitTerminal(ctx context.Context, ingestionID string, timeout, interval time.Duration) IngestionStatus {
	deadline := time.Now().Add(timeout)
	last := StatusProcessing

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if job, err := p.source.GetIngestionStatus(ctx, ingestionID); err == nil && job != nil {
			if job.Status.Terminal() {
				return job.Status
			}
			last = job.Status
		}

		if !time.Now().Before(deadline) {
			return StatusProcessing
		}

		select {
		case <-ctx.Done():
			return last
		case <-ticker.C:
		}
	}
}

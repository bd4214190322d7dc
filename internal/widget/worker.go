// Package widget implements the background refresh path: an
// OS-schedulable worker that projects the server's status summary into
// the local widget store, fully decoupled from the foreground UI.
package widget

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/session"
)

// Outcome is the result a worker run reports to its scheduler.
type Outcome int

const (
	// OutcomeSuccess means the run completed; nothing to retry. A run
	// with no registered session is a success, not a failure.
	OutcomeSuccess Outcome = iota

	// OutcomeRetry means the run hit a transient fault and the
	// scheduler should retry with its own backoff policy.
	OutcomeRetry
)

// SummaryFetcher is the single repository operation the worker invokes.
type SummaryFetcher interface {
	StatusSummary(ctx context.Context) (*model.StatusSummary, error)
}

// ProjectionWriter persists the fetched summary for the widget
// rendering surface.
type ProjectionWriter interface {
	Save(ctx context.Context, summary model.StatusSummary) error
}

// Worker fetches the status summary and writes the widget projection.
// It shares no state with foreground controllers; the projection store
// is the only communication channel.
type Worker struct {
	session session.Store
	fetcher SummaryFetcher
	writer  ProjectionWriter
	log     zerolog.Logger

	// OnUpdate, if set, is invoked after a projection has been saved so
	// the rendering surface can refresh.
	OnUpdate func()
}

// NewWorker creates a background refresh worker.
func NewWorker(s session.Store, fetcher SummaryFetcher, writer ProjectionWriter, log zerolog.Logger) *Worker {
	return &Worker{
		session: s,
		fetcher: fetcher,
		writer:  writer,
		log:     log,
	}
}

// Run performs one refresh. Without a session it returns success
// immediately, touching neither the network nor the store. Any fault is
// reported as retryable; the scheduler owns backoff.
func (w *Worker) Run(ctx context.Context) Outcome {
	if !w.session.IsLoggedIn() {
		w.log.Debug().Msg("no session registered, skipping widget refresh")
		return OutcomeSuccess
	}

	summary, err := w.fetcher.StatusSummary(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("widget refresh fetch failed")
		return OutcomeRetry
	}

	if err := w.writer.Save(ctx, *summary); err != nil {
		w.log.Error().Err(err).Msg("saving widget projection failed")
		return OutcomeRetry
	}

	w.log.Info().
		Int("total_missing", summary.TotalMissing).
		Int("items", len(summary.Items)).
		Msg("widget projection updated")

	if w.OnUpdate != nil {
		w.OnUpdate()
	}
	return OutcomeSuccess
}

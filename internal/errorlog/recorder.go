// Package errorlog persists unexpected handler failures to the ErrorLog table.
package errorlog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/corlevo/corlevo/internal/logging"
	"github.com/corlevo/corlevo/internal/models"
)

var recordedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "corlevo_error_logs_written_total",
	Help: "Number of unexpected errors persisted to the error log table.",
})

// Store is the persistence needed by the Recorder.
type Store interface {
	CreateErrorLog(ctx context.Context, entry *models.ErrorLog) error
}

type Recorder struct {
	store Store
	now   func() time.Time
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Record writes err to the error log and returns the message that was stored.
// A failed write is returned as is.
func (r *Recorder) Record(ctx context.Context, err error) (string, error) {
	message := Message(err)
	now := r.now()

	entry := &models.ErrorLog{
		LogTime:    now,
		LogTimeUTC: now.UTC(),
		Message:    message,
	}
	if dbErr := r.store.CreateErrorLog(ctx, entry); dbErr != nil {
		logging.Error(ctx).Err(dbErr).Str("original", err.Error()).Msg("failed to store error log")
		return message, dbErr
	}

	recordedTotal.Inc()
	logging.Error(ctx).Err(err).Uint("errorLogId", entry.ID).Msg("error logged to database")
	return message, nil
}

// Message returns the message of the innermost cause of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			if cause := errors.Cause(err); cause != err {
				next = cause
			}
		}
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/storage"
)

// DefaultBufferSize is the default capacity of the entry queue
const DefaultBufferSize = 256

// Recorder appends audit entries on a background worker, decoupled from
// the transactions it describes. Appends are best-effort, at-least-once
// observability: a failed or dropped entry is logged and never rolls back
// the committed record it refers to, and Record never blocks the caller.
type Recorder struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger

	entries chan model.AuditEntry
	done    chan struct{}
	once    sync.Once
}

// NewRecorder creates a Recorder and starts its worker
func NewRecorder(store storage.Store, clk clock.Clock, logger *slog.Logger) *Recorder {
	r := &Recorder{
		store:   store,
		clock:   clk,
		logger:  logger,
		entries: make(chan model.AuditEntry, DefaultBufferSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record queues an entry for appending. If the queue is full the entry is
// dropped with a warning rather than blocking the caller.
func (r *Recorder) Record(entry model.AuditEntry) {
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = r.clock.Now()
	}
	if entry.Severity == "" {
		entry.Severity = model.SeverityInfo
	}

	select {
	case r.entries <- entry:
	default:
		r.logger.Warn("audit queue full, dropping entry",
			slog.String("action", entry.Action),
			slog.String("entity_type", entry.EntityType))
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for entry := range r.entries {
		if err := r.store.AppendAudit(context.Background(), &entry); err != nil {
			r.logger.Warn("audit append failed",
				slog.String("action", entry.Action),
				slog.String("entity_type", entry.EntityType),
				slog.String("error", err.Error()))
		}
	}
}

// Close drains the queue and stops the worker
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.entries)
		<-r.done
	})
}

// Page reads a page of the audit log, newest first.
func (r *Recorder) Page(ctx context.Context, offset, limit int) ([]*model.AuditEntry, error) {
	return r.store.AuditPage(ctx, offset, limit)
}

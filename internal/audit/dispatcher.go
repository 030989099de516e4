package audit

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmallard/countersign/pkg/lifecycle"
	"github.com/jmallard/countersign/pkg/pagination"
)

// ErrQueueFull reports that the intake queue was full when Record was called.
var ErrQueueFull = errors.New("audit queue full")

// ErrIntakeClosed reports that the intake queue had already closed for
// shutdown when Record was called.
var ErrIntakeClosed = errors.New("audit intake closed")

const (
	defaultQueueSize    = 256
	defaultFailureQueue = 64
)

// Dispatcher implements System with a buffered intake queue and a background
// writer. The queue decouples decision latency from audit persistence.
type Dispatcher struct {
	store    *store
	logger   *slog.Logger
	failures chan DeliveryFailure
	done     chan struct{}

	mu      sync.Mutex
	closed  bool
	entries chan Entry
}

// New creates an audit dispatcher over the given database.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) *Dispatcher {
	l := logger.With("system", "audit")
	return &Dispatcher{
		store: &store{
			db:         db,
			logger:     l,
			pagination: pagination,
		},
		logger:   l,
		entries:  make(chan Entry, defaultQueueSize),
		failures: make(chan DeliveryFailure, defaultFailureQueue),
		done:     make(chan struct{}),
	}
}

// Start registers the background writer with the lifecycle coordinator. The
// writer drains the intake queue on shutdown before the process exits.
func (d *Dispatcher) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() error {
		go d.run()
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.closeIntake()
		<-d.done
	})
}

func (d *Dispatcher) Append(ctx context.Context, entry Entry) error {
	return d.store.Append(ctx, entry)
}

// Record enqueues an entry without blocking. Other shutdown hooks keep
// draining requests while the intake closes, so the send and the close are
// serialized by the mutex; a decision landing mid-shutdown surfaces as a
// delivery failure rather than a panic.
func (d *Dispatcher) Record(entry Entry) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.reportFailure(entry, ErrIntakeClosed)
		return
	}

	select {
	case d.entries <- entry:
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		d.reportFailure(entry, ErrQueueFull)
	}
}

func (d *Dispatcher) closeIntake() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	close(d.entries)
}

func (d *Dispatcher) Failures() <-chan DeliveryFailure {
	return d.failures
}

func (d *Dispatcher) List(
	ctx context.Context,
	entityType, entityID string,
	page pagination.PageRequest,
) (*pagination.PageResult[Entry], error) {
	return d.store.List(ctx, entityType, entityID, page)
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for entry := range d.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := d.store.Append(ctx, entry)
		cancel()

		if err != nil {
			d.reportFailure(entry, err)
		}
	}
}

func (d *Dispatcher) reportFailure(entry Entry, err error) {
	failure := DeliveryFailure{
		Entry: entry,
		Err:   err,
		At:    time.Now().UTC(),
	}

	d.logger.Error("audit delivery failed",
		"action", entry.Action,
		"entity_id", entry.EntityID,
		"error", err,
	)

	select {
	case d.failures <- failure:
	default:
		// Operator channel is full; the log line above is the fallback.
	}
}

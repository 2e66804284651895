// Package collector buffers usage events and delivers them to the store
// with bounded latency, while keeping the current day's usage row live for
// dashboards without waiting for a flush cycle.
package collector

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Store is the slice of the event store the collector needs.
type Store interface {
	AppendEvents(events []event.Event) (skipped int, err error)
	GetDailyUsage(date string) (*store.DailyUsage, error)
	PutDailyUsage(row store.DailyUsage) error
}

// Defaults for the flush policy.
const (
	DefaultFlushInterval = 30 * time.Second
	DefaultBufferLimit   = 10
)

// Options configures a Collector. Zero values take the defaults above.
type Options struct {
	FlushInterval time.Duration
	BufferLimit   int
	Metadata      event.Metadata
	Logger        *logrus.Logger
}

// Collector converts discrete application actions into durable events.
// Delivery is at-least-once: a failed flush re-queues the batch at the
// front of the buffer and retries on the next tick.
type Collector struct {
	store    Store
	log      *logrus.Entry
	interval time.Duration
	limit    int
	metadata event.Metadata

	mu        sync.Mutex
	buffer    []event.Event
	sessionID string
	startedAt time.Time
	resumedAt time.Time
	paused    bool
	closed    bool

	pendingSearch map[string]time.Time // query -> search start time

	done     chan struct{}
	loopDone chan struct{}

	now func() time.Time // test hook
}

// New creates a Collector, emits the session_started event, and starts the
// periodic flush loop. Callers must Close the collector to stop the loop
// and drain the buffer.
func New(st Store, opts Options) *Collector {
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.BufferLimit <= 0 {
		opts.BufferLimit = DefaultBufferLimit
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	c := &Collector{
		store:         st,
		interval:      opts.FlushInterval,
		limit:         opts.BufferLimit,
		metadata:      opts.Metadata,
		sessionID:     uuid.NewString(),
		pendingSearch: make(map[string]time.Time),
		done:          make(chan struct{}),
		loopDone:      make(chan struct{}),
		now:           time.Now,
	}
	c.log = opts.Logger.WithField("component", "collector")
	c.startedAt = c.now().UTC()
	c.resumedAt = c.startedAt

	c.Track(event.TypeSessionStarted, nil)

	go c.flushLoop()
	return c
}

// SessionID returns the collector's session identifier.
func (c *Collector) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Track buffers an event and synchronously applies its real-time effect to
// today's usage row. Unknown event types are dropped with a warning. Track
// never returns an error to the caller; delivery problems are retried
// internally.
func (c *Collector) Track(t event.Type, data map[string]any) {
	if !t.Valid() {
		c.log.WithField("type", t).Warn("dropping event of unknown type")
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ev := event.New(t, c.sessionID, data)
	ev.Timestamp = c.now().UTC()
	ev.Metadata = c.metadata
	c.buffer = append(c.buffer, ev)
	full := len(c.buffer) >= c.limit
	c.mu.Unlock()

	c.updateRealTime(ev)

	// Bound memory: drain immediately when the buffer hits the limit.
	if full {
		c.Flush()
	}
}

// Flush drains the buffer to the store. The buffer reference is swapped
// under the lock before iterating, so events arriving concurrently land in
// a fresh buffer rather than being lost or duplicated. On failure the batch
// is prepended back so retry order is preserved.
func (c *Collector) Flush() {
	c.mu.Lock()
	batch := c.buffer
	c.buffer = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	skipped, err := c.store.AppendEvents(batch)
	if err != nil {
		c.mu.Lock()
		c.buffer = append(batch, c.buffer...)
		c.mu.Unlock()
		c.log.WithError(err).WithField("batch_size", len(batch)).
			Warn("flush failed, batch re-queued")
		return
	}
	if skipped > 0 {
		c.log.WithField("skipped", skipped).Warn("store skipped malformed events")
	}
}

// Pending returns the number of buffered, not yet flushed events.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buffer)
}

// Pause flushes immediately and suspends timer-driven flushing, for when
// the application is backgrounded.
func (c *Collector) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
	c.Flush()
}

// Resume starts a new logical activity window after a Pause.
func (c *Collector) Resume() {
	c.mu.Lock()
	c.paused = false
	c.resumedAt = c.now().UTC()
	c.mu.Unlock()
}

// Close ends the session: emits session_ended with the session duration,
// performs a final synchronous flush, and cancels the flush timer. Safe to
// call more than once; only the first call does anything.
func (c *Collector) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	duration := c.now().UTC().Sub(c.startedAt).Seconds()
	ev := event.New(event.TypeSessionEnded, c.sessionID, map[string]any{
		"duration": duration,
	})
	ev.Timestamp = c.now().UTC()
	ev.Metadata = c.metadata
	c.buffer = append(c.buffer, ev)
	c.closed = true
	c.mu.Unlock()

	c.updateRealTime(ev)

	close(c.done)
	<-c.loopDone
	c.Flush()
}

// flushLoop drains the buffer on every tick until Close. Ticks during a
// Pause are skipped; Pause already flushed.
func (c *Collector) flushLoop() {
	defer close(c.loopDone)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			paused := c.paused
			c.mu.Unlock()
			if !paused {
				c.Flush()
			}
		}
	}
}

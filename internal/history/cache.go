// Package history tracks recently used chat sessions so the client can offer
// a "recent conversations" list and restore the last open one. The cache is
// a bounded, most-recent-first list of session records plus a single current
// session id, persisted through a pluggable Store after every mutation.
package history

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCap is the default number of session records kept.
const DefaultCap = 20

// Record is one remembered session.
type Record struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview"`
}

// State is what a Store persists: the record list (most recent first) and
// the current session id.
type State struct {
	Current string   `json:"current"`
	Records []Record `json:"records"`
}

// Store persists cache state between runs.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Cache is a bounded most-recent-first session list.
type Cache struct {
	mu      sync.Mutex
	records []Record
	current string
	cap     int
	store   Store
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithCap sets the maximum number of records kept.
func WithCap(n int) Option {
	return func(c *Cache) { c.cap = n }
}

// WithClock injects the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache backed by the given store, loading any persisted
// state. Loaded records beyond the cap are discarded oldest-first.
func New(store Store, opts ...Option) (*Cache, error) {
	c := &Cache{
		cap:   DefaultCap,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cap < 1 {
		return nil, fmt.Errorf("history cap must be positive, got %d", c.cap)
	}

	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	c.current = state.Current
	c.records = state.Records
	if len(c.records) > c.cap {
		c.records = c.records[:c.cap]
	}
	return c, nil
}

// Touch moves a session to the front, inserting it if unseen. The timestamp
// is refreshed from the clock; the preview is replaced only when non-empty.
// Inserting past the cap evicts the least recently touched records. The
// updated state is persisted before Touch returns.
func (c *Cache) Touch(sessionID, preview string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec := Record{SessionID: sessionID, Timestamp: c.now(), Preview: preview}
	for i, r := range c.records {
		if r.SessionID == sessionID {
			if preview == "" {
				rec.Preview = r.Preview
			}
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}

	c.records = append([]Record{rec}, c.records...)
	if len(c.records) > c.cap {
		c.records = c.records[:c.cap]
	}
	return c.persistLocked()
}

// SetCurrent records which session the client has open.
func (c *Cache) SetCurrent(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = sessionID
	return c.persistLocked()
}

// Current returns the current session id, empty when none is set.
func (c *Cache) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Records returns a most-recent-first snapshot.
func (c *Cache) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Cap returns the record limit.
func (c *Cache) Cap() int { return c.cap }

func (c *Cache) persistLocked() error {
	state := State{Current: c.current, Records: make([]Record, len(c.records))}
	copy(state.Records, c.records)
	if err := c.store.Save(state); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

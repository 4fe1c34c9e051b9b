// Package presence tracks the terminals that poll the server. Liveness is
// always derived from lastSeen and the timeout; nothing stores an online
// flag.
package presence

import (
	"sort"
	"sync"
	"time"
)

// DefaultTimeout is how long a terminal may stay silent before it is
// considered gone.
const DefaultTimeout = 30 * time.Second

// DefaultSweepInterval is how often stale records are evicted.
const DefaultSweepInterval = 10 * time.Second

// Record is what the server knows about one terminal.
type Record struct {
	ID       string
	Name     string
	Battery  *float64
	Charging bool
	LastSeen time.Time
	Locked   bool
}

// View is a record as reported to the admin console.
type View struct {
	IP       string   `json:"ip"`
	Name     string   `json:"name"`
	Battery  *float64 `json:"battery"`
	Charging bool     `json:"charging"`
	LastSeen int64    `json:"lastSeen"`
	Locked   bool     `json:"locked"`
	IsOnline bool     `json:"isOnline"`
}

// Info is a self-report sent by a terminal. Nil fields are left unchanged.
type Info struct {
	Battery     *float64
	Charging    *bool
	DisplayName string
}

// Tracker is the terminal registry. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*Record
	timeout time.Duration
}

// NewTracker creates a tracker with the given silence timeout.
func NewTracker(timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Tracker{
		records: make(map[string]*Record),
		timeout: timeout,
	}
}

// Timeout returns the silence timeout.
func (t *Tracker) Timeout() time.Duration {
	return t.timeout
}

// Touch records a poll from id. The record's lock flag mirrors the global
// lock at the time of the poll.
func (t *Tracker) Touch(id string, locked bool, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[id]
	if !ok {
		r = &Record{ID: id, Name: id}
		t.records[id] = r
	}
	r.LastSeen = now
	r.Locked = locked
}

// Report applies a terminal's self-report. It returns false when id has
// never polled.
func (t *Tracker) Report(id string, info Info, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[id]
	if !ok {
		return false
	}
	if info.Battery != nil {
		b := *info.Battery
		r.Battery = &b
	}
	if info.Charging != nil {
		r.Charging = *info.Charging
	}
	if info.DisplayName != "" {
		r.Name = info.DisplayName
	}
	r.LastSeen = now
	return true
}

// SetLocked sets the lock flag of one record. It returns false when id is
// unknown.
func (t *Tracker) SetLocked(id string, locked bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[id]
	if !ok {
		return false
	}
	r.Locked = locked
	return true
}

// Get returns a copy of the record for id.
func (t *Tracker) Get(id string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Sweep evicts every record that has been silent for the timeout or
// longer and returns how many were removed.
func (t *Tracker) Sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, r := range t.records {
		if !t.online(r, now) {
			delete(t.records, id)
			removed++
		}
	}
	return removed
}

// List returns every record, sorted by id, with online status computed
// for now.
func (t *Tracker) List(now time.Time) []View {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]View, 0, len(t.records))
	for _, r := range t.records {
		out = append(out, View{
			IP:       r.ID,
			Name:     r.Name,
			Battery:  r.Battery,
			Charging: r.Charging,
			LastSeen: r.LastSeen.UnixMilli(),
			Locked:   r.Locked,
			IsOnline: t.online(r, now),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IP < out[j].IP })
	return out
}

func (t *Tracker) online(r *Record, now time.Time) bool {
	return now.Sub(r.LastSeen) < t.timeout
}

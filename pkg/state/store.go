package state

import (
	"math/bits"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Store is the shared display-state blackboard. Readers load the current
// snapshot without locking; writers serialize on a mutex, build a new
// snapshot from a private copy and publish it with a single pointer swap.
type Store struct {
	mu  sync.Mutex
	cur atomic.Pointer[Snapshot]
	now func() time.Time

	subscribers   []chan Snapshot
	subscribersMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for LastUpdate.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store seeded with initial.
func NewStore(initial Snapshot, opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	initial = initial.clone()
	normalize(&initial)
	initial.LastUpdate = s.now().UnixMilli()
	s.cur.Store(&initial)
	return s
}

// Read returns the current snapshot.
func (s *Store) Read() Snapshot {
	return *s.cur.Load()
}

// Merge applies every field present in p as one atomic step. Fields carried
// by the patch count as written even if the value is unchanged.
func (s *Store) Merge(p Patch) Snapshot {
	snap, _ := s.commit(Stamp{}, p.Fields(), func(next *Snapshot) {
		p.applyTo(next)
	})
	return snap
}

// Update runs fn on a private copy of the current snapshot and publishes
// the result. fn must replace slices rather than modify them in place.
// Only fields whose value changed count as written; when nothing changed
// the current snapshot is returned and LastUpdate is left alone.
func (s *Store) Update(fn func(*Snapshot)) Snapshot {
	snap, _ := s.commit(Stamp{}, 0, fn)
	return snap
}

// MergeFunc applies p and then fn as one atomic step. Fields carried by p
// count as written; fields changed by fn count when their value changed.
func (s *Store) MergeFunc(p Patch, fn func(*Snapshot)) Snapshot {
	snap, _ := s.commit(Stamp{}, p.Fields(), func(next *Snapshot) {
		p.applyTo(next)
		fn(next)
	})
	return snap
}

// MergeIf is Merge guarded by stamp: it applies p only if none of the
// stamped fields were written since the stamp was taken.
func (s *Store) MergeIf(stamp Stamp, p Patch) (Snapshot, bool) {
	return s.commit(stamp, p.Fields(), func(next *Snapshot) {
		p.applyTo(next)
	})
}

// UpdateIf is Update guarded by stamp.
func (s *Store) UpdateIf(stamp Stamp, fn func(*Snapshot)) (Snapshot, bool) {
	return s.commit(stamp, 0, fn)
}

func (s *Store) commit(stamp Stamp, written Field, fn func(*Snapshot)) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cur.Load()
	if !stamp.currentFor(prev) {
		return *prev, false
	}

	next := prev.clone()
	fn(&next)
	normalize(&next)

	changed := written | diff(prev, &next)
	if changed == 0 {
		return *prev, true
	}

	for f := changed; f != 0; f &= f - 1 {
		next.gens[bits.TrailingZeros16(uint16(f))]++
	}
	next.version = prev.version + 1
	next.LastUpdate = max(prev.LastUpdate, s.now().UnixMilli())

	s.cur.Store(&next)
	s.publish(next)
	return next, true
}

func (st Stamp) currentFor(snap *Snapshot) bool {
	for f := st.fields; f != 0; f &= f - 1 {
		i := bits.TrailingZeros16(uint16(f))
		if snap.gens[i] != st.gens[i] {
			return false
		}
	}
	return true
}

// Subscribe returns a channel that receives every published snapshot.
// Slow subscribers miss snapshots rather than block writers.
func (s *Store) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 8)
	s.subscribersMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subscribersMu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Snapshot) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (p Patch) applyTo(s *Snapshot) {
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.Emotion != nil {
		s.Emotion = *p.Emotion
	}
	if p.Weather != nil {
		s.Weather = *p.Weather
		s.Weather.Forecast = slices.Clone(p.Weather.Forecast)
	}
	if p.SmartHome != nil {
		s.SmartHome = *p.SmartHome
		s.SmartHome.Devices = slices.Clone(p.SmartHome.Devices)
	}
	if p.AIText != nil {
		s.AIText = *p.AIText
	}
	if p.Timer != nil {
		s.Timer = *p.Timer
	}
	if p.Music != nil {
		s.Music = *p.Music
	}
	if p.Vibe != nil {
		s.Vibe = *p.Vibe
	}
	if p.DeviceLocked != nil {
		s.DeviceLocked = *p.DeviceLocked
	}
	if p.SmartThings != nil {
		s.SmartThings.Devices = slices.Clone(p.SmartThings.Devices)
	}
}

// clone copies s including its slices so the copy can be mutated freely.
func (s Snapshot) clone() Snapshot {
	s.Weather.Forecast = slices.Clone(s.Weather.Forecast)
	s.SmartHome.Devices = slices.Clone(s.SmartHome.Devices)
	s.SmartThings.Devices = slices.Clone(s.SmartThings.Devices)
	return s
}

// normalize enforces value bounds.
func normalize(s *Snapshot) {
	s.Timer.Total = max(s.Timer.Total, 0)
	s.Timer.Left = min(max(s.Timer.Left, 0), s.Timer.Total)
	s.Music.ProgressPercent = min(max(s.Music.ProgressPercent, 0), 100)
	s.Vibe.CurrentImage = max(s.Vibe.CurrentImage, 1)
	if s.SmartThings.Devices == nil {
		s.SmartThings.Devices = []DeviceSummary{}
	}
}

func diff(a, b *Snapshot) Field {
	var f Field
	if a.Mode != b.Mode {
		f |= FieldMode
	}
	if a.Emotion != b.Emotion {
		f |= FieldEmotion
	}
	if !reflect.DeepEqual(a.Weather, b.Weather) {
		f |= FieldWeather
	}
	if !reflect.DeepEqual(a.SmartHome, b.SmartHome) {
		f |= FieldSmartHome
	}
	if a.AIText != b.AIText {
		f |= FieldAIText
	}
	if a.Timer != b.Timer {
		f |= FieldTimer
	}
	if a.Music != b.Music {
		f |= FieldMusic
	}
	if a.Vibe != b.Vibe {
		f |= FieldVibe
	}
	if a.DeviceLocked != b.DeviceLocked {
		f |= FieldDeviceLocked
	}
	if !reflect.DeepEqual(a.SmartThings, b.SmartThings) {
		f |= FieldSmartThings
	}
	return f
}

// TickTimer decrements the countdown by one second while it is running.
func (s *Store) TickTimer() Snapshot {
	return s.Update(func(next *Snapshot) {
		if next.Timer.Left > 0 {
			next.Timer.Left--
		}
	})
}

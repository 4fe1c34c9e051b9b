// Package override reverts short-lived emotions back to normal.
package override

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

// DefaultDelay is how long a transient emotion stays on screen.
const DefaultDelay = 3 * time.Second

// Scheduler schedules emotion reverts.
type Scheduler struct {
	store   *state.Store
	tasks   *task.Supervisor
	delay   time.Duration
	pending atomic.Int32
}

// NewScheduler creates a scheduler.
func NewScheduler(store *state.Store, tasks *task.Supervisor, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{store: store, tasks: tasks, delay: delay}
}

// Watch inspects a snapshot just produced by a merge. If it carries a
// transient emotion, a revert to normal is scheduled. The revert is skipped
// when the emotion is written again before it fires, so a newer emotion is
// never clobbered and each transient value keeps its full delay.
func (s *Scheduler) Watch(snap state.Snapshot) bool {
	if !snap.Emotion.Transient() {
		return false
	}

	stamp := snap.Stamp(state.FieldEmotion)
	emotion := snap.Emotion
	s.pending.Add(1)
	s.tasks.After("emotion-revert", s.delay, func() {
		defer s.pending.Add(-1)
		if _, ok := s.store.MergeIf(stamp, state.Patch{Emotion: state.Ptr(state.EmotionNormal)}); !ok {
			log.Debug().Str("emotion", string(emotion)).Msg("Emotion changed since, skipping revert")
		}
	})
	return true
}

// Pending returns the number of reverts scheduled but not yet fired.
func (s *Scheduler) Pending() int {
	return int(s.pending.Load())
}

// Set merges emotion and schedules its revert when it is transient.
func (s *Scheduler) Set(emotion state.Emotion) state.Snapshot {
	snap := s.store.Merge(state.Patch{Emotion: state.Ptr(emotion)})
	s.Watch(snap)
	return snap
}

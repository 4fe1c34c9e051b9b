package presence

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.UnixMilli(0)

func at(ms int64) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestTracker_OnlineUntilTimeout(t *testing.T) {
	tr := NewTracker(30 * time.Second)
	tr.Touch("10.0.0.5", false, at(0))

	assert.Equal(t, 0, tr.Sweep(at(29999)))
	views := tr.List(at(29999))
	require.Len(t, views, 1)
	assert.True(t, views[0].IsOnline)

	views = tr.List(at(30000))
	require.Len(t, views, 1)
	assert.False(t, views[0].IsOnline, "exactly the timeout counts as offline")

	assert.Equal(t, 1, tr.Sweep(at(30000)))
	assert.Empty(t, tr.List(at(30000)))
}

func TestTracker_TouchRefreshesAndMirrorsLock(t *testing.T) {
	tr := NewTracker(DefaultTimeout)
	tr.Touch("a", false, at(0))
	tr.Touch("a", true, at(20000))

	assert.Equal(t, 0, tr.Sweep(at(45000)))
	r, ok := tr.Get("a")
	require.True(t, ok)
	assert.True(t, r.Locked)
	assert.Equal(t, "a", r.Name)
	assert.Equal(t, at(20000), r.LastSeen)
}

func TestTracker_Report(t *testing.T) {
	tr := NewTracker(DefaultTimeout)
	battery := 87.0
	charging := true

	assert.False(t, tr.Report("ghost", Info{Battery: &battery}, at(0)))

	tr.Touch("phone", false, at(0))
	require.True(t, tr.Report("phone", Info{Battery: &battery, Charging: &charging, DisplayName: "Galaxy Ace"}, at(1000)))

	views := tr.List(at(1000))
	require.Len(t, views, 1)
	assert.Equal(t, "Galaxy Ace", views[0].Name)
	assert.Equal(t, "phone", views[0].IP)
	require.NotNil(t, views[0].Battery)
	assert.Equal(t, 87.0, *views[0].Battery)
	assert.True(t, views[0].Charging)
	assert.Equal(t, int64(1000), views[0].LastSeen)

	// Partial reports keep earlier values.
	require.True(t, tr.Report("phone", Info{}, at(2000)))
	r, _ := tr.Get("phone")
	assert.True(t, r.Charging)
	assert.Equal(t, "Galaxy Ace", r.Name)
}

func TestTracker_SetLocked(t *testing.T) {
	tr := NewTracker(DefaultTimeout)
	assert.False(t, tr.SetLocked("x", true))

	tr.Touch("x", false, at(0))
	assert.True(t, tr.SetLocked("x", true))
	r, _ := tr.Get("x")
	assert.True(t, r.Locked)
}

func TestTracker_ConcurrentUse(t *testing.T) {
	tr := NewTracker(DefaultTimeout)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := string(rune('a' + i))
				tr.Touch(id, j%2 == 0, at(int64(j)))
				tr.List(at(int64(j)))
				tr.Sweep(at(int64(j)))
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, tr.List(at(200)), 8)
}

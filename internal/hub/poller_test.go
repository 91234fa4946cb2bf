package hub_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerCachesActiveSession(t *testing.T) {
	h, fake, _ := newHub(t)
	fake.SetSession("t1", "Write report", "2025-01-02T10:00:00Z", 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.SetPollInterval(10 * time.Millisecond)
	go h.RunPoller(ctx)

	require.Eventually(t, func() bool {
		return h.CurrentTracking() != nil
	}, time.Second, 5*time.Millisecond)

	tracking := h.CurrentTracking()
	assert.Equal(t, "t1", tracking.TaskID)
	assert.Equal(t, int64(5*60000), tracking.ElapsedTime)
}

func TestPollerDegradesOnFailureAndRecovers(t *testing.T) {
	h, fake, _ := newHub(t)
	fake.SetSession("t1", "Write report", "2025-01-02T10:00:00Z", 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.SetPollInterval(10 * time.Millisecond)
	go h.RunPoller(ctx)

	require.Eventually(t, func() bool {
		return h.CurrentTracking() != nil
	}, time.Second, 5*time.Millisecond)

	// A failing cycle clears the cache instead of keeping a stale session.
	fake.SetTrackingErr(errors.New("boom"))
	require.Eventually(t, func() bool {
		return h.CurrentTracking() == nil
	}, time.Second, 5*time.Millisecond)

	// The poller keeps running and picks the session back up.
	fake.SetTrackingErr(nil)
	require.Eventually(t, func() bool {
		return h.CurrentTracking() != nil
	}, time.Second, 5*time.Millisecond)
}

func TestPollerClearsWhenSessionEnds(t *testing.T) {
	h, fake, _ := newHub(t)
	fake.SetSession("t1", "Write report", "2025-01-02T10:00:00Z", 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.SetPollInterval(10 * time.Millisecond)
	go h.RunPoller(ctx)

	require.Eventually(t, func() bool {
		return h.CurrentTracking() != nil
	}, time.Second, 5*time.Millisecond)

	fake.ClearSession()
	require.Eventually(t, func() bool {
		return h.CurrentTracking() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestPollerStopsOnCancel(t *testing.T) {
	h, _, _ := newHub(t)
	h.SetPollInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.RunPoller(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

package hub_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskclip/internal/backend/tasknotes"
	"taskclip/internal/capture"
	"taskclip/internal/config"
	"taskclip/internal/hub"
	"taskclip/internal/service"
	"taskclip/internal/testutil"
)

// newHub wires a hub to a FakeBackend over a temp config directory.
func newHub(t *testing.T) (*hub.Hub, *testutil.FakeBackend, *config.Config) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir()}
	fake := testutil.NewFakeBackend()
	h := hub.New(cfg, func(config.Settings) service.Backend { return fake })
	return h, fake, cfg
}

func TestDispatchUnknownAction(t *testing.T) {
	h, _, _ := newHub(t)

	result := h.Dispatch(context.Background(), hub.Request{Action: "frobnicate"})

	assert.False(t, result.Success)
	assert.Equal(t, "Unknown action", result.Error)
	assert.Equal(t, hub.KindUser, result.Kind)
	assert.Nil(t, result.Data)
}

func TestDispatchCreateTask(t *testing.T) {
	h, fake, _ := newHub(t)

	result := h.Dispatch(context.Background(), hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &capture.RawCapture{Title: "Buy milk", SourceURL: "https://example.com"},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	record, ok := result.Data.(service.TaskRecord)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", record.Title)

	require.Len(t, fake.Requests, 1)
	req := fake.Requests[0]
	assert.Equal(t, []string{"web"}, req.Tags)
	assert.Equal(t, "open", req.Status)
	assert.Equal(t, "normal", req.Priority)
	assert.Equal(t, "Created from: https://example.com", req.Details)
	assert.Equal(t, "api", req.CreationContext)
}

func TestDispatchCreateTaskNilCapture(t *testing.T) {
	h, _, _ := newHub(t)

	result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionCreateTask})

	assert.False(t, result.Success)
	assert.Equal(t, hub.KindUser, result.Kind)
}

func TestDispatchValidationFailure(t *testing.T) {
	h, fake, _ := newHub(t)

	result := h.Dispatch(context.Background(), hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &capture.RawCapture{Title: "   "},
	})

	assert.False(t, result.Success)
	assert.Equal(t, hub.KindUser, result.Kind)
	assert.Equal(t, "title required", result.Error)
	assert.Empty(t, fake.Requests, "invalid capture must not reach the backend")
}

func TestDispatchBackendFailures(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		h, fake, _ := newHub(t)
		fake.GetStatsErr = &tasknotes.APIError{StatusCode: 500, Message: "storage offline"}

		result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})

		assert.False(t, result.Success)
		assert.Equal(t, hub.KindBackend, result.Kind)
		assert.Equal(t, "storage offline", result.Error)
	})

	t.Run("not accessible", func(t *testing.T) {
		h, fake, _ := newHub(t)
		fake.GetStatsErr = tasknotes.ErrNotAccessible

		result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})

		assert.False(t, result.Success)
		assert.Equal(t, hub.KindBackend, result.Kind)
		assert.Equal(t, tasknotes.ErrNotAccessible.Error(), result.Error)
	})

	t.Run("plain error", func(t *testing.T) {
		h, fake, _ := newHub(t)
		fake.GetStatsErr = errors.New("boom")

		result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})

		assert.False(t, result.Success)
		assert.Equal(t, hub.KindBackend, result.Kind)
		assert.Equal(t, "boom", result.Error)
	})
}

func TestBackendBuiltOnce(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	fake := testutil.NewFakeBackend()
	var builds atomic.Int32
	h := hub.New(cfg, func(config.Settings) service.Backend {
		builds.Add(1)
		return fake
	})

	for i := 0; i < 3; i++ {
		result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})
		require.True(t, result.Success)
	}
	assert.Equal(t, int32(1), builds.Load())
}

func TestConcurrentColdStart(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	fake := testutil.NewFakeBackend()
	var builds atomic.Int32
	h := hub.New(cfg, func(config.Settings) service.Backend {
		builds.Add(1)
		return fake
	})

	const n = 16
	var wg sync.WaitGroup
	results := make([]hub.Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		assert.True(t, result.Success, "request %d: %s", i, result.Error)
	}
	assert.Equal(t, int32(1), builds.Load(), "concurrent requests must share one initialization")
}

func TestConcurrentCreatesDoNotCrossTalk(t *testing.T) {
	h, fake, _ := newHub(t)

	const n = 8
	var wg sync.WaitGroup
	results := make([]hub.Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = h.Dispatch(context.Background(), hub.Request{
				Action:  hub.ActionCreateTask,
				Capture: &capture.RawCapture{Title: fmt.Sprintf("task %d", i)},
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, result := range results {
		require.True(t, result.Success, "request %d: %s", i, result.Error)
		record := result.Data.(service.TaskRecord)
		assert.Equal(t, fmt.Sprintf("task %d", i), record.Title)
		assert.False(t, seen[record.ID], "duplicate id %s", record.ID)
		seen[record.ID] = true
	}
	assert.Len(t, fake.Requests, n)
}

func TestSettingsRefreshOnCreate(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	fake := testutil.NewFakeBackend()
	var builds atomic.Int32
	h := hub.New(cfg, func(config.Settings) service.Backend {
		builds.Add(1)
		return fake
	})

	result := h.Dispatch(context.Background(), hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &capture.RawCapture{Title: "first"},
	})
	require.True(t, result.Success)
	assert.Equal(t, int32(1), builds.Load())

	// Unchanged settings: no rebuild on the next create.
	result = h.Dispatch(context.Background(), hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &capture.RawCapture{Title: "second"},
	})
	require.True(t, result.Success)
	assert.Equal(t, int32(1), builds.Load())

	// A saved change applies on the very next create without restart.
	changed := config.DefaultSettings()
	changed.APIPort = 9999
	changed.DefaultTags = "changed"
	require.NoError(t, cfg.SaveSettings(changed))

	result = h.Dispatch(context.Background(), hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &capture.RawCapture{Title: "third"},
	})
	require.True(t, result.Success)
	assert.Equal(t, int32(2), builds.Load())
	assert.Equal(t, []string{"changed"}, fake.Requests[2].Tags)
}

func TestConfigErrorKind(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, cfg.EnsureDir())
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("not = [valid toml"), 0600))

	fake := testutil.NewFakeBackend()
	h := hub.New(cfg, func(config.Settings) service.Backend { return fake })

	result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})
	assert.False(t, result.Success)
	assert.Equal(t, hub.KindConfig, result.Kind)

	// The hub recovers once the file is fixed.
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), nil, 0600))
	result = h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetStats})
	assert.True(t, result.Success)
}

func TestGetCurrentTimeTrackingFlattens(t *testing.T) {
	h, fake, _ := newHub(t)
	fake.SetSession("t1", "Write report", "2025-01-02T10:00:00Z", 12)

	result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetCurrentTimeTracking})
	require.True(t, result.Success)

	tracking, ok := result.Data.(*hub.TimeTracking)
	require.True(t, ok)
	assert.Equal(t, "t1", tracking.TaskID)
	assert.Equal(t, "Write report", tracking.TaskTitle)
	assert.Equal(t, "2025-01-02T10:00:00Z", tracking.StartTime)
	assert.Equal(t, int64(12*60000), tracking.ElapsedTime)
}

func TestGetCurrentTimeTrackingNoSession(t *testing.T) {
	h, _, _ := newHub(t)

	result := h.Dispatch(context.Background(), hub.Request{Action: hub.ActionGetCurrentTimeTracking})
	require.True(t, result.Success)
	assert.Nil(t, result.Data)
}

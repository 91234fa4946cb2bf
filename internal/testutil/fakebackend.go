// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskclip/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// FakeBackend is an in-memory implementation of service.Backend for testing.
type FakeBackend struct {
	mu          sync.RWMutex
	tasks       []service.TaskRecord
	nextID      int
	session     *service.ActiveSession
	trackingErr error

	// Options and summary returned verbatim when set.
	Options service.FilterOptions
	Summary service.TimeSummary

	// Requests records every payload passed to CreateTask, in order.
	Requests []service.TaskRequest

	// Error injection for testing
	CreateTaskErr     error
	TestConnectionErr error
	GetTasksErr       error
	GetStatsErr       error
	GetOptionsErr     error
	UpdateTaskErr     error
	DeleteTaskErr     error
	StartTrackingErr  error
	StopTrackingErr   error
	GetTimeSummaryErr error
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{nextID: 1}
}

// AddTask seeds a task with the given id, title and status.
func (f *FakeBackend) AddTask(id, title, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.TaskRecord{ID: id, Title: title, Status: status})
}

// SetSession sets the active time-tracking session returned by
// GetActiveTimeTracking. Nil means no active session.
func (f *FakeBackend) SetSession(taskID, taskTitle, start string, elapsedMinutes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session := &service.ActiveSession{ElapsedMinutes: elapsedMinutes}
	session.Task.ID = taskID
	session.Task.Title = taskTitle
	session.Session.StartTime = start
	f.session = session
}

// ClearSession removes the active session.
func (f *FakeBackend) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
}

// CreateTask implements service.Backend.
func (f *FakeBackend) CreateTask(ctx context.Context, req service.TaskRequest) (service.TaskRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.CreateTaskErr != nil {
		return service.TaskRecord{}, f.CreateTaskErr
	}
	record := service.TaskRecord{
		ID:       fmt.Sprintf("task-%d", f.nextID),
		Title:    req.Title,
		Status:   req.Status,
		Priority: req.Priority,
		Tags:     req.Tags,
		Details:  req.Details,
	}
	f.nextID++
	f.tasks = append(f.tasks, record)
	return record, nil
}

// TestConnection implements service.Backend.
func (f *FakeBackend) TestConnection(ctx context.Context) (service.HealthStatus, error) {
	if f.TestConnectionErr != nil {
		return nil, f.TestConnectionErr
	}
	return service.HealthStatus{"success": true, "version": "fake"}, nil
}

// GetTasks implements service.Backend. It applies the same client-side
// status and limit filtering as the real backend.
func (f *FakeBackend) GetTasks(ctx context.Context, filters *service.TaskFilters) (service.TaskPage, error) {
	if f.GetTasksErr != nil {
		return service.TaskPage{}, f.GetTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	all := make([]service.TaskRecord, len(f.tasks))
	copy(all, f.tasks)

	page := service.TaskPage{Tasks: all, Total: len(all)}
	if filters == nil {
		return page, nil
	}

	if filters.Status != "" {
		keep := make(map[string]bool)
		for _, s := range strings.Split(filters.Status, ",") {
			if s = strings.TrimSpace(s); s != "" {
				keep[s] = true
			}
		}
		var filtered []service.TaskRecord
		for _, t := range page.Tasks {
			if keep[t.Status] {
				filtered = append(filtered, t)
			}
		}
		page.Tasks = filtered
	}
	if filters.Limit > 0 && len(page.Tasks) > filters.Limit {
		page.Tasks = page.Tasks[:filters.Limit]
	}
	page.Filtered = len(page.Tasks)
	return page, nil
}

// GetStats implements service.Backend.
func (f *FakeBackend) GetStats(ctx context.Context) (service.Stats, error) {
	if f.GetStatsErr != nil {
		return service.Stats{}, f.GetStatsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	stats := service.Stats{Total: len(f.tasks)}
	for _, t := range f.tasks {
		switch t.Status {
		case "done":
			stats.Completed++
		default:
			stats.Active++
		}
	}
	return stats, nil
}

// GetFilterOptions implements service.Backend.
func (f *FakeBackend) GetFilterOptions(ctx context.Context) (service.FilterOptions, error) {
	if f.GetOptionsErr != nil {
		return service.FilterOptions{}, f.GetOptionsErr
	}
	return f.Options, nil
}

// GetActiveTimeTracking implements service.Backend.
func (f *FakeBackend) GetActiveTimeTracking(ctx context.Context) (*service.ActiveSession, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.trackingErr != nil {
		return nil, f.trackingErr
	}
	return f.session, nil
}

// SetTrackingErr injects or clears the GetActiveTimeTracking error. Safe to
// call while a poller is running.
func (f *FakeBackend) SetTrackingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trackingErr = err
}

// UpdateTask implements service.Backend.
func (f *FakeBackend) UpdateTask(ctx context.Context, taskID string, updates service.TaskUpdates) (service.TaskRecord, error) {
	if f.UpdateTaskErr != nil {
		return service.TaskRecord{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == taskID {
			if title, ok := updates["title"].(string); ok {
				f.tasks[i].Title = title
			}
			if status, ok := updates["status"].(string); ok {
				f.tasks[i].Status = status
			}
			return f.tasks[i], nil
		}
	}
	return service.TaskRecord{}, ErrNotFound
}

// DeleteTask implements service.Backend.
func (f *FakeBackend) DeleteTask(ctx context.Context, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// StartTimeTracking implements service.Backend.
func (f *FakeBackend) StartTimeTracking(ctx context.Context, taskID string) error {
	if f.StartTrackingErr != nil {
		return f.StartTrackingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == taskID {
			session := &service.ActiveSession{}
			session.Task.ID = t.ID
			session.Task.Title = t.Title
			f.session = session
			return nil
		}
	}
	return ErrNotFound
}

// StopTimeTracking implements service.Backend.
func (f *FakeBackend) StopTimeTracking(ctx context.Context, taskID string) error {
	if f.StopTrackingErr != nil {
		return f.StopTrackingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	return nil
}

// GetTimeSummary implements service.Backend.
func (f *FakeBackend) GetTimeSummary(ctx context.Context, period string) (service.TimeSummary, error) {
	if f.GetTimeSummaryErr != nil {
		return nil, f.GetTimeSummaryErr
	}
	if f.Summary != nil {
		return f.Summary, nil
	}
	return service.TimeSummary{"period": period}, nil
}

package tasknotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskclip/internal/service"
)

func okBody(data any) string {
	buf, _ := json.Marshal(map[string]any{"success": true, "data": data})
	return string(buf)
}

func TestCreateTaskSendsBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, okBody(service.TaskRecord{ID: "t1", Title: "x"}))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "secret")
	record, err := client.CreateTask(context.Background(), service.TaskRequest{Title: "x"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "t1", record.ID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		fmt.Fprint(w, okBody(nil))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")
	_, err := client.GetStats(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestAPIErrorUsesBodyErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success": false, "error": "Invalid or expired token"}`)
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "bad")
	_, err := client.GetStats(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid or expired token", apiErr.Message)
}

func TestAPIErrorFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>gateway error</html>")
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")
	_, err := client.GetStats(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 502", apiErr.Message)
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewWithBaseURL(server.URL, "")
	_, err := client.GetStats(context.Background())
	assert.ErrorIs(t, err, ErrNotAccessible)
}

func TestGetTasksClientSideFiltering(t *testing.T) {
	tasks := []service.TaskRecord{
		{ID: "1", Title: "a", Status: "open"},
		{ID: "2", Title: "b", Status: "done"},
		{ID: "3", Title: "c", Status: "in-progress"},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No query parameters: the full set is always fetched.
		assert.Empty(t, r.URL.RawQuery)
		fmt.Fprint(w, okBody(service.TaskPage{Tasks: tasks, Total: 3}))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")

	page, err := client.GetTasks(context.Background(), &service.TaskFilters{Status: "open,in-progress", Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, "1", page.Tasks[0].ID)
	assert.Equal(t, 1, page.Filtered)
	assert.Equal(t, 3, page.Total)

	page, err = client.GetTasks(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Tasks, 3)
	assert.Zero(t, page.Filtered)
}

func TestTestConnectionForwardsWholeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		fmt.Fprint(w, `{"success": true, "version": "3.7.0", "api": "enabled"}`)
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL+"/api", "")
	status, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.7.0", status["version"])
	assert.Equal(t, "enabled", status["api"])
}

func TestGetFilterOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter-options", r.URL.Path)
		fmt.Fprint(w, okBody(service.FilterOptions{
			Statuses: []service.OptionItem{{Value: "open", Label: "Open", Order: 1}},
			Tags:     []string{"web"},
		}))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")
	options, err := client.GetFilterOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options.Statuses, 1)
	assert.Equal(t, "open", options.Statuses[0].Value)
	assert.Equal(t, []string{"web"}, options.Tags)
}

func TestGetActiveTimeTracking(t *testing.T) {
	t.Run("active session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success": true, "data": {"activeSessions": [
				{"task": {"id": "t1", "title": "Write report"},
				 "session": {"startTime": "2025-01-02T10:00:00Z"},
				 "elapsedMinutes": 12}
			]}}`)
		}))
		defer server.Close()

		client := NewWithBaseURL(server.URL, "")
		session, err := client.GetActiveTimeTracking(context.Background())
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "t1", session.Task.ID)
		assert.Equal(t, 12, session.ElapsedMinutes)
	})

	t.Run("no session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success": true, "data": {"activeSessions": []}}`)
		}))
		defer server.Close()

		client := NewWithBaseURL(server.URL, "")
		session, err := client.GetActiveTimeTracking(context.Background())
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestTaskPathsAreEscaped(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, okBody(nil))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")
	require.NoError(t, client.DeleteTask(context.Background(), "tasks/my task.md"))
	assert.Equal(t, "/tasks/tasks%2Fmy%20task.md", gotPath)
}

func TestGetTimeSummaryPeriod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "week", r.URL.Query().Get("period"))
		fmt.Fprint(w, okBody(map[string]any{"totalMinutes": 90}))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "")
	summary, err := client.GetTimeSummary(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, float64(90), summary["totalMinutes"])
}

// Package tasknotes implements the service.Backend interface over the local
// TaskNotes HTTP API.
package tasknotes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"taskclip/internal/config"
	"taskclip/internal/logging"
	"taskclip/internal/service"
)

// ErrNotAccessible is returned when the local API cannot be reached at the
// transport level, as opposed to the API answering with an error.
var ErrNotAccessible = errors.New("TaskNotes API not accessible. Make sure the service is running with the API enabled.")

// APIError is a non-2xx response from the API. The message comes from the
// response body's error field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client implements service.Backend against http://localhost:<port>/api.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client from settings. The Authorization header is attached
// only when a non-empty token is configured.
func New(settings config.Settings) *Client {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	return &Client{
		baseURL: fmt.Sprintf("http://localhost:%d/api", settings.APIPort),
		token:   strings.TrimSpace(settings.APIAuthToken),
		http:    &http.Client{Timeout: timeout},
		log:     logging.Component("client"),
	}
}

// NewWithBaseURL creates a client against an explicit base URL (for testing).
func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logging.Component("client"),
	}
}

// envelope is the uniform {success, data, error} response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`

	raw []byte
}

// do performs one request and parses the body as the response envelope
// regardless of status code. A non-2xx status becomes an *APIError carrying
// the body's error field; a transport failure becomes ErrNotAccessible.
func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("transport failure")
		return envelope{}, ErrNotAccessible
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, ErrNotAccessible
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return envelope{}, fmt.Errorf("decode response: %w", err)
	}
	env.raw = raw

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return envelope{}, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return env, nil
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(env envelope, out any) error {
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// CreateTask implements service.Backend.
func (c *Client) CreateTask(ctx context.Context, req service.TaskRequest) (service.TaskRecord, error) {
	env, err := c.do(ctx, http.MethodPost, "/tasks", req)
	if err != nil {
		return service.TaskRecord{}, err
	}
	var record service.TaskRecord
	if err := decodeData(env, &record); err != nil {
		return service.TaskRecord{}, err
	}
	return record, nil
}

// TestConnection implements service.Backend. The whole health body is
// forwarded so surfaces can display whatever the service reports.
func (c *Client) TestConnection(ctx context.Context) (service.HealthStatus, error) {
	env, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	var status service.HealthStatus
	if err := json.Unmarshal(env.raw, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// GetTasks implements service.Backend. Filtering always happens client-side
// on the full result set: the service's server-side query path is known to
// return empty results, so this is compensation, not an optimization.
func (c *Client) GetTasks(ctx context.Context, filters *service.TaskFilters) (service.TaskPage, error) {
	env, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return service.TaskPage{}, err
	}
	var page service.TaskPage
	if err := decodeData(env, &page); err != nil {
		return service.TaskPage{}, err
	}

	if filters == nil {
		return page, nil
	}

	filtered := page.Tasks
	if filters.Status != "" {
		keep := make(map[string]bool)
		for _, s := range strings.Split(filters.Status, ",") {
			keep[strings.TrimSpace(s)] = true
		}
		var matched []service.TaskRecord
		for _, task := range filtered {
			if keep[task.Status] {
				matched = append(matched, task)
			}
		}
		filtered = matched
	}
	if filters.Limit > 0 && len(filtered) > filters.Limit {
		filtered = filtered[:filters.Limit]
	}

	page.Tasks = filtered
	page.Filtered = len(filtered)
	return page, nil
}

// GetStats implements service.Backend.
func (c *Client) GetStats(ctx context.Context) (service.Stats, error) {
	env, err := c.do(ctx, http.MethodGet, "/stats", nil)
	if err != nil {
		return service.Stats{}, err
	}
	var stats service.Stats
	if err := decodeData(env, &stats); err != nil {
		return service.Stats{}, err
	}
	return stats, nil
}

// GetFilterOptions implements service.Backend.
func (c *Client) GetFilterOptions(ctx context.Context) (service.FilterOptions, error) {
	env, err := c.do(ctx, http.MethodGet, "/filter-options", nil)
	if err != nil {
		return service.FilterOptions{}, err
	}
	var options service.FilterOptions
	if err := decodeData(env, &options); err != nil {
		return service.FilterOptions{}, err
	}
	return options, nil
}

// GetActiveTimeTracking implements service.Backend. Returns nil when no
// session is active.
func (c *Client) GetActiveTimeTracking(ctx context.Context) (*service.ActiveSession, error) {
	env, err := c.do(ctx, http.MethodGet, "/time/active", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		ActiveSessions []service.ActiveSession `json:"activeSessions"`
	}
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	if len(data.ActiveSessions) == 0 {
		return nil, nil
	}
	return &data.ActiveSessions[0], nil
}

// UpdateTask implements service.Backend.
func (c *Client) UpdateTask(ctx context.Context, id string, updates service.TaskUpdates) (service.TaskRecord, error) {
	env, err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), updates)
	if err != nil {
		return service.TaskRecord{}, err
	}
	var record service.TaskRecord
	if err := decodeData(env, &record); err != nil {
		return service.TaskRecord{}, err
	}
	return record, nil
}

// DeleteTask implements service.Backend.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
	return err
}

// StartTimeTracking implements service.Backend.
func (c *Client) StartTimeTracking(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/time/start", nil)
	return err
}

// StopTimeTracking implements service.Backend.
func (c *Client) StopTimeTracking(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/time/stop", nil)
	return err
}

// GetTimeSummary implements service.Backend.
func (c *Client) GetTimeSummary(ctx context.Context, period string) (service.TimeSummary, error) {
	path := "/time/summary"
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var summary service.TimeSummary
	if err := decodeData(env, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/agentboard/internal/tasklist"
)

// HTTPSource reads snapshots from a remote backlog API.
// The endpoint is GET {base}/api/tasks/open returning a JSON array of tasks.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// taskPayload is the wire shape of one open task.
type taskPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Project  string `json:"project,omitempty"`
}

// NewHTTPSource creates a source for the given API base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// OpenTasks fetches the current open-task set.
func (s *HTTPSource) OpenTasks(ctx context.Context) ([]tasklist.Record, error) {
	var payload []taskPayload
	if err := s.getJSON(ctx, "/api/tasks/open", &payload); err != nil {
		return nil, err
	}

	records := make([]tasklist.Record, 0, len(payload))
	for _, p := range payload {
		records = append(records, tasklist.Record{
			ID:       p.ID,
			Title:    p.Title,
			Priority: p.Priority,
			Project:  p.Project,
		})
	}
	return records, nil
}

// getJSON issues a GET against the API and decodes the JSON response.
func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

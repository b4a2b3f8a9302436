// Package cleanup notifies an external janitor service when a stitch task
// reaches a terminal state so it can reclaim the task's photo blobs.
// Notification is best-effort: a failure is logged and never unwinds the
// settlement that triggered it.
package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single notification attempt
const DefaultTimeout = 3 * time.Second

// Notifier announces a settled task to the cleanup endpoint
type Notifier interface {
	NotifyTaskSettled(ctx context.Context, taskID, status string) error
}

// HTTPNotifier posts settlement notices to a configured URL
type HTTPNotifier struct {
	url    string
	client *http.Client
}

// NewHTTPNotifier creates a notifier posting to the given URL
func NewHTTPNotifier(url string) *HTTPNotifier {
	return &HTTPNotifier{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

type settledNotice struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

func (n *HTTPNotifier) NotifyTaskSettled(ctx context.Context, taskID, status string) error {
	body, err := json.Marshal(settledNotice{TaskID: taskID, Status: status})
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build cleanup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("cleanup notification failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("cleanup endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// NopNotifier is the default when no cleanup endpoint is configured
type NopNotifier struct{}

func (NopNotifier) NotifyTaskSettled(context.Context, string, string) error { return nil }

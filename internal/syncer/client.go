package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	roomservice "github.com/watchtogether/server/internal/service/room"
)

// Client fetches room snapshots over the server's public read endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) FetchRoom(ctx context.Context, roomID string) (roomservice.Snapshot, error) {
	url := fmt.Sprintf("%s/api/rooms/%s", c.baseURL, roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return roomservice.Snapshot{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return roomservice.Snapshot{}, fmt.Errorf("failed to fetch room: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return roomservice.Snapshot{}, fmt.Errorf("unexpected status %d fetching room %s", resp.StatusCode, roomID)
	}

	var snapshot roomservice.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return roomservice.Snapshot{}, fmt.Errorf("failed to decode room snapshot: %w", err)
	}

	return snapshot, nil
}

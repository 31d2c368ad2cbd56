// Package hn implements the item-source boundary: point lookups of items by
// id against the Hacker News Firebase API, plus the optional highlight
// metadata lookup.
package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/burrowhq/burrow/internal/model"
)

// ErrNotFound marks a single missing id. Callers drop the id from the
// current batch instead of failing it.
var ErrNotFound = errors.New("item not found")

// Source is an idempotent point lookup from id to raw item record. It must
// be safe to call concurrently for distinct ids.
type Source interface {
	Item(ctx context.Context, id int64) (model.Item, error)
}

// Client fetches items over HTTP.
type Client struct {
	BaseURL       string
	HighlightBase string
	HTTPClient    *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// "https://hacker-news.firebaseio.com/v0".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Item fetches a single raw item record. A missing id returns ErrNotFound;
// everything else is a transient network error.
func (c *Client) Item(ctx context.Context, id int64) (model.Item, error) {
	url := c.BaseURL + "/item/" + strconv.FormatInt(id, 10) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Item{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.Item{}, fmt.Errorf("fetch item %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.Item{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.Item{}, fmt.Errorf("fetch item %d failed (%d): %s", id, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Item{}, fmt.Errorf("fetch item %d: %w", id, err)
	}
	// The API answers "null" with status 200 for ids it does not know.
	if len(data) == 0 || string(data) == "null" {
		return model.Item{}, ErrNotFound
	}

	var item model.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return model.Item{}, fmt.Errorf("decode item %d: %w", id, err)
	}
	if item.ID == 0 {
		item.ID = id
	}
	return item, nil
}

// Highlights looks up the ids to mark highlighted for a story. A client
// without a highlight base, or any lookup failure, yields no highlights;
// callers treat both the same way.
func (c *Client) Highlights(ctx context.Context, storyID int64) ([]int64, error) {
	if c.HighlightBase == "" {
		return nil, nil
	}
	url := fmt.Sprintf("%s/stories/%d/highlights.json", c.HighlightBase, storyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch highlights for %d: %w", storyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var result struct {
		Highlights []string `json:"highlights"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode highlights for %d: %w", storyID, err)
	}

	ids := make([]int64, 0, len(result.Highlights))
	for _, raw := range result.Highlights {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

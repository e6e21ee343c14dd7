package rcmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ListItem is a server-returned collection record, displayed read-only.
type ListItem map[string]any

// FilterFunc is an optional client-side predicate applied after a refresh.
type FilterFunc func(item ListItem) bool

// Refresh performs a full GET re-fetch of a collection endpoint. The
// previously rendered list is always discarded and replaced in full; there
// is no caching and no incremental merge. The endpoint may return either a
// flat JSON array or a paginated envelope with a "data" array.
func (c *Client) Refresh(ctx context.Context, endpoint string, filter FilterFunc) ([]ListItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refresh %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", endpoint, err)
	}

	items, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", endpoint, err)
	}

	if filter == nil {
		return items, nil
	}
	filtered := make([]ListItem, 0, len(items))
	for _, item := range items {
		if filter(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func decodeList(body []byte) ([]ListItem, error) {
	var items []ListItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Data []ListItem `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// listDateFormats are the layouts tried when normalising a date field.
var listDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// OnDate returns a filter that keeps items whose named field falls on the
// given calendar day, regardless of the server's date formatting.
func OnDate(field string, day time.Time) FilterFunc {
	y, m, d := day.Date()
	return func(item ListItem) bool {
		raw, _ := item[field].(string)
		if raw == "" {
			return false
		}
		for _, layout := range listDateFormats {
			t, err := time.Parse(layout, raw)
			if err != nil {
				continue
			}
			ty, tm, td := t.Date()
			return ty == y && tm == m && td == d
		}
		return false
	}
}

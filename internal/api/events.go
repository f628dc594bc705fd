package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetEvent fetches a single event by ticker.
func (c *Client) GetEvent(ctx context.Context, eventTicker string) (*APIEvent, error) {
	var resp SingleEventResponse
	if err := c.get(ctx, "/events/"+url.PathEscape(eventTicker), nil, &resp); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventTicker, err)
	}
	return &resp.Event, nil
}

// Package calendar talks to the institution calendar service that holds the
// authoritative schedule for synced rooms.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Event is one window on a room's calendar feed.
type Event struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AllDay  bool      `json:"all_day,omitempty"`
	HTMLURL string    `json:"html_url,omitempty"`
}

// Recurrence describes a repeating event to create: daily or weekly, with an
// optional stop date.
type Recurrence struct {
	Frequency string     `json:"frequency"` // "daily" | "weekly"
	Until     *time.Time `json:"until,omitempty"`
}

// Service is the read/write surface booking code depends on.
type Service interface {
	Events(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
	CreateEvent(ctx context.Context, calendarID string, ev Event, rec *Recurrence) error
}

// Client is the HTTP implementation of Service. Event windows are cached for
// a short TTL so repeated availability probes for the same room and day do
// not hammer the upstream service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *gocache.Cache
}

func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (c *Client) Events(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	key := fmt.Sprintf("%s|%d|%d", calendarID, from.Unix(), to.Unix())
	if v, ok := c.cache.Get(key); ok {
		return v.([]Event), nil
	}

	u := fmt.Sprintf("%s/calendars/%s/events?from=%s&to=%s",
		c.baseURL,
		url.PathEscape(calendarID),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("calendar query: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var payload struct {
		Events []Event `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("calendar query: decode: %w", err)
	}

	events := normalize(payload.Events)
	c.cache.SetDefault(key, events)
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, calendarID string, ev Event, rec *Recurrence) error {
	body := struct {
		Event      Event       `json:"event"`
		Recurrence *Recurrence `json:"recurrence,omitempty"`
	}{Event: ev, Recurrence: rec}

	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calendar create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("calendar create: status %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}

	// The feed changed, cached windows for this calendar are stale.
	c.invalidate(calendarID)
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) invalidate(calendarID string) {
	prefix := calendarID + "|"
	for key := range c.cache.Items() {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			c.cache.Delete(key)
		}
	}
}

// normalize expands all-day entries to full-day windows so overlap checks can
// treat every event uniformly.
func normalize(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.AllDay {
			day := time.Date(ev.Start.Year(), ev.Start.Month(), ev.Start.Day(), 0, 0, 0, 0, ev.Start.Location())
			ev.Start = day
			if !ev.End.After(day) {
				ev.End = day.Add(24 * time.Hour)
			}
		}
		if !ev.End.After(ev.Start) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

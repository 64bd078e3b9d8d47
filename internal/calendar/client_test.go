package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_Events(t *testing.T) {
	var hits int32

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/calendars/lab-a@campus/events", r.URL.Path)
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		assert.NotEmpty(t, r.URL.Query().Get("to"))

		json.NewEncoder(w).Encode(map[string]any{
			"events": []Event{
				{ID: "ev1", Title: "Praktikum", Start: start, End: end},
				// zero-length entries are dropped
				{ID: "ev2", Title: "Ghost", Start: start, End: start},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "sekrit", 5*time.Second, time.Minute)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	events, err := c.Events(context.Background(), "lab-a@campus", from, to)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "Praktikum", events[0].Title)
	assert.True(t, events[0].Start.Equal(start))

	// Second identical query is served from cache.
	events, err = c.Events(context.Background(), "lab-a@campus", from, to)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_Events_AllDayNormalized(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"events": []Event{
				{ID: "hol", Title: "Holiday", Start: day.Add(9 * time.Hour), AllDay: true},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "", 5*time.Second, time.Minute)
	events, err := c.Events(context.Background(), "cal", day, day.Add(24*time.Hour))

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.True(t, events[0].Start.Equal(day))
	assert.True(t, events[0].End.Equal(day.Add(24*time.Hour)))
}

func TestClient_Events_UpstreamErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "", 5*time.Second, time.Minute)
	_, err := c.Events(context.Background(), "cal", time.Now(), time.Now().Add(time.Hour))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_CreateEvent_InvalidatesCache(t *testing.T) {
	var queries int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&queries, 1)
			json.NewEncoder(w).Encode(map[string]any{"events": []Event{}})
		case http.MethodPost:
			var body struct {
				Event      Event       `json:"event"`
				Recurrence *Recurrence `json:"recurrence"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Seminar", body.Event.Title)
			assert.NotNil(t, body.Recurrence)
			assert.Equal(t, "weekly", body.Recurrence.Frequency)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, "", 5*time.Second, time.Minute)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	_, err := c.Events(context.Background(), "cal", from, to)
	assert.NoError(t, err)

	until := from.AddDate(0, 1, 0)
	err = c.CreateEvent(context.Background(), "cal", Event{
		Title: "Seminar",
		Start: from.Add(9 * time.Hour),
		End:   from.Add(11 * time.Hour),
	}, &Recurrence{Frequency: "weekly", Until: &until})
	assert.NoError(t, err)

	// The cached window for this calendar was dropped by the write.
	_, err = c.Events(context.Background(), "cal", from, to)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&queries))
}

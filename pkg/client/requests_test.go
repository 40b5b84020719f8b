package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

func TestActiveRequestsAuthFailureDoesNotServeSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("stale", models.User{ID: 7})
	c := NewWithBaseURL(store, server.URL)

	reqs, err := c.ActiveRequests(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, reqs)
	assert.Empty(t, store.Token())
}

func TestActiveRequestsServerErrorServesSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("token", models.User{ID: 7})
	c := NewWithBaseURL(store, server.URL)

	reqs, err := c.ActiveRequests(context.Background())

	assert.NoError(t, err)
	assert.Len(t, reqs, 2)
	assert.True(t, reqs[0].Sample)
	assert.Equal(t, "Rahul Sharma", reqs[0].Patient)
	assert.Equal(t, "O+", reqs[0].BloodType)
	// Samples must not wipe the session
	assert.Equal(t, "token", store.Token())
}

func TestActiveRequestsFromServer(t *testing.T) {
	now := time.Now()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.BloodRequest{
			{ID: 1, PatientName: "Rahul Sharma", Urgency: models.UrgencyEmergency, Status: models.RequestStatusPending, CreatedAt: now.Add(-2 * time.Minute)},
			{ID: 2, PatientName: "Priya Patel", Urgency: models.UrgencyUrgent, Status: models.RequestStatusInProgress, CreatedAt: now.Add(-time.Minute)},
			{ID: 3, PatientName: "Old Entry", Urgency: models.UrgencyNormal, Status: models.RequestStatusPending, CreatedAt: now.Add(-48 * time.Hour)},
		})
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("token", models.User{ID: 7})
	c := NewWithBaseURL(store, server.URL)

	reqs, err := c.ActiveRequests(context.Background())

	assert.NoError(t, err)
	assert.Len(t, reqs, 2)
	assert.Equal(t, 2, reqs[0].ID)
	assert.Equal(t, 1, reqs[1].ID)
	assert.False(t, reqs[0].Sample)
}

func TestActiveViewFiltersToToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.Local)

	reqs := []models.BloodRequest{
		{ID: 1, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 2, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: 3, CreatedAt: time.Date(2026, 8, 29, 0, 5, 0, 0, time.Local)},
	}

	view := activeView(reqs, now)

	assert.Len(t, view, 2)
	for _, r := range view {
		assert.NotEqual(t, 2, r.ID)
	}
}

func TestActiveViewOrdersNewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.Local)

	reqs := []models.BloodRequest{
		{ID: 1, CreatedAt: now.Add(-6 * time.Hour)},
		{ID: 2, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 3, CreatedAt: now.Add(-3 * time.Hour)},
	}

	view := activeView(reqs, now)

	assert.Equal(t, []int{view[0].ID, view[1].ID, view[2].ID}, []int{2, 3, 1})
}

func TestActiveViewAppliesDisplayLabels(t *testing.T) {
	now := time.Now()

	view := activeView([]models.BloodRequest{
		{ID: 1, Urgency: models.UrgencyEmergency, Status: models.RequestStatusInProgress, CreatedAt: now},
		{ID: 2, Urgency: models.UrgencyUrgent, Status: models.RequestStatusPending, CreatedAt: now},
		{ID: 3, Urgency: models.UrgencyNormal, Status: models.RequestStatusFulfilled, CreatedAt: now},
	}, now)

	assert.Equal(t, "Critical", view[0].Urgency)
	assert.Equal(t, "In Progress", view[0].Status)
	assert.Equal(t, "High", view[1].Urgency)
	assert.Equal(t, "Pending", view[1].Status)
	assert.Equal(t, "Normal", view[2].Urgency)
	assert.Equal(t, "Fulfilled", view[2].Status)
}

func TestRouteToRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.DirectionsResult{Provider: "google"})
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)
	origin := models.Coordinates{Lat: 19.076, Lng: 72.8777}

	result, link, err := c.RouteToRequest(context.Background(), origin, DisplayRequest{
		ID:       1,
		Location: models.Coordinates{Lat: 18.5204, Lng: 73.8567},
	}, "driving")

	assert.NoError(t, err)
	assert.Equal(t, "google", result.Provider)
	assert.Contains(t, link, "google.com/maps/dir")
}

func TestRouteToRequestWithoutLocationWarns(t *testing.T) {
	var directionsCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		directionsCalled = true
		json.NewEncoder(w).Encode(models.DirectionsResult{Provider: "estimate"})
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)

	result, link, err := c.RouteToRequest(context.Background(),
		models.Coordinates{Lat: 19.076, Lng: 72.8777}, DisplayRequest{ID: 9}, "driving")

	assert.ErrorIs(t, err, ErrNoRequestLocation)
	assert.True(t, directionsCalled)
	assert.Contains(t, link, "google.com/maps/dir")
	assert.Equal(t, "estimate", result.Provider)
}

func TestRouteToRequestProviderFailureKeepsLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)

	result, link, err := c.RouteToRequest(context.Background(),
		models.Coordinates{Lat: 19.076, Lng: 72.8777}, DisplayRequest{
			ID:       1,
			Location: models.Coordinates{Lat: 18.5204, Lng: 73.8567},
		}, "driving")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, link, "google.com/maps/dir")
}

func TestSampleActiveRequestsAreToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	for _, r := range sampleActiveRequests(now) {
		assert.True(t, sameLocalDay(r.CreatedAt, now))
		assert.True(t, r.Sample)
	}
}

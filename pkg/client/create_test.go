package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type stubLocator struct {
	point models.Coordinates
	err   error
}

func (s stubLocator) CurrentLocation(ctx context.Context) (models.Coordinates, error) {
	return s.point, s.err
}

func validDraft() *RequestDraft {
	return &RequestDraft{
		PatientName:     "Rahul Sharma",
		ContactPhone:    "+919876543210",
		ContactEmail:    "anita@example.com",
		BloodType:       "O+",
		UnitsNeeded:     2,
		Urgency:         "Critical",
		HospitalName:    "City Hospital",
		HospitalAddress: "MG Road, Mumbai",
		City:            "Mumbai",
		State:           "Maharashtra",
		Location:        models.Coordinates{Lat: 19.076, Lng: 72.8777},
	}
}

func TestSetStateClearsCity(t *testing.T) {
	draft := validDraft()

	draft.SetState("Kerala")

	assert.Equal(t, "Kerala", draft.State)
	assert.Empty(t, draft.City)
}

func TestSetStateSameStateKeepsCity(t *testing.T) {
	draft := validDraft()

	draft.SetState("Maharashtra")

	assert.Equal(t, "Mumbai", draft.City)
}

func TestLocateFallsBackToDefaultCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)
	draft := &RequestDraft{}

	draft.Locate(context.Background(), stubLocator{err: errors.New("permission denied")}, c)

	assert.True(t, draft.Located())
	assert.Equal(t, models.DefaultCoordinates, draft.Location)
	assert.Equal(t, models.DefaultCoordinates.Placeholder(), draft.HospitalAddress)
}

func TestLocateUsesResolvedAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"address": "MG Road, Mumbai"})
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)
	draft := &RequestDraft{}

	draft.Locate(context.Background(), stubLocator{point: models.Coordinates{Lat: 19.076, Lng: 72.8777}}, c)

	assert.Equal(t, 19.076, draft.Location.Lat)
	assert.Equal(t, "MG Road, Mumbai", draft.HospitalAddress)
}

func TestLocateKeepsTypedAddress(t *testing.T) {
	c := NewWithBaseURL(NewMemoryStore(), "http://127.0.0.1:0")
	draft := &RequestDraft{HospitalAddress: "Apollo Hospital, Pune"}

	draft.Locate(context.Background(), stubLocator{point: models.Coordinates{Lat: 18.52, Lng: 73.85}}, c)

	assert.Equal(t, "Apollo Hospital, Pune", draft.HospitalAddress)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *RequestDraft)
		valid  bool
	}{
		{name: "complete draft", mutate: func(d *RequestDraft) {}, valid: true},
		{name: "missing patient name", mutate: func(d *RequestDraft) { d.PatientName = "" }},
		{name: "missing blood type", mutate: func(d *RequestDraft) { d.BloodType = "" }},
		{name: "zero units", mutate: func(d *RequestDraft) { d.UnitsNeeded = 0 }},
		{name: "missing city", mutate: func(d *RequestDraft) { d.City = "" }},
		{name: "missing state", mutate: func(d *RequestDraft) { d.State = "" }},
		{name: "coordinates out of range", mutate: func(d *RequestDraft) { d.Location = models.Coordinates{Lat: 120, Lng: 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			err := draft.Validate()

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSubmitRequestWithoutSessionIsHardStop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewWithBaseURL(NewMemoryStore(), server.URL)

	_, err := c.SubmitRequest(context.Background(), validDraft())

	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called)
}

func TestSubmitRequestPayload(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.BloodRequest{
			ID:        42,
			Reference: "ref-42",
			Status:    models.RequestStatusPending,
			CreatedAt: time.Now(),
		})
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("token", models.User{ID: 7, Role: "requester"})
	c := NewWithBaseURL(store, server.URL)

	created, err := c.SubmitRequest(context.Background(), validDraft())

	assert.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "O+", payload["bloodType"])
	assert.Equal(t, float64(2), payload["unitsNeeded"])
	assert.Equal(t, models.UrgencyEmergency, payload["urgency"])
	assert.Equal(t, models.DefaultRequestReason, payload["notes"])
	assert.Equal(t, "Mumbai", payload["city"])
	assert.Equal(t, "Maharashtra", payload["state"])
}

func TestSubmitRequestAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("stale", models.User{ID: 7})
	c := NewWithBaseURL(store, server.URL)

	_, err := c.SubmitRequest(context.Background(), validDraft())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, store.Token())
}

func TestSubmitRequestValidationMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"msg": "Selected city does not belong to the selected state"}},
		})
	}))
	defer server.Close()

	store := NewMemoryStore()
	store.SetSession("token", models.User{ID: 7})
	c := NewWithBaseURL(store, server.URL)

	_, err := c.SubmitRequest(context.Background(), validDraft())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Selected city does not belong to the selected state", apiErr.Message)
}

func TestMergeServerResponse(t *testing.T) {
	draft := validDraft()

	merged := mergeServerResponse(draft, models.BloodRequest{
		ID:        42,
		Reference: "ref-42",
		Status:    models.RequestStatusPending,
	})

	// Server-assigned fields win, draft fills the gaps
	assert.Equal(t, 42, merged.ID)
	assert.Equal(t, "ref-42", merged.Reference)
	assert.Equal(t, "Rahul Sharma", merged.PatientName)
	assert.Equal(t, "O+", merged.BloodType)
	assert.Equal(t, 19.076, merged.Latitude)
	assert.False(t, merged.CreatedAt.IsZero())
}

func TestMergeServerResponsePrefersServerValues(t *testing.T) {
	draft := validDraft()

	merged := mergeServerResponse(draft, models.BloodRequest{
		ID:          42,
		PatientName: "Rahul S.",
		BloodType:   "O+",
		City:        "Navi Mumbai",
	})

	assert.Equal(t, "Rahul S.", merged.PatientName)
	assert.Equal(t, "Navi Mumbai", merged.City)
}

func TestPrependPutsNewRequestFirst(t *testing.T) {
	existing := []DisplayRequest{{ID: 1}, {ID: 2}}

	updated := Prepend(existing, models.BloodRequest{
		ID:      3,
		Urgency: models.UrgencyEmergency,
		Status:  models.RequestStatusPending,
	})

	assert.Len(t, updated, 3)
	assert.Equal(t, 3, updated[0].ID)
	assert.Equal(t, "Critical", updated[0].Urgency)
	assert.Equal(t, 1, updated[1].ID)
}

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

// Locator abstracts the caller's current-position source (the browser
// geolocation API in the SPA, a GPS device or a fixture in tests).
type Locator interface {
	CurrentLocation(ctx context.Context) (models.Coordinates, error)
}

// RequestDraft is the request-creation form state. Use SetState to change
// the state so a stale city can never survive into submission.
type RequestDraft struct {
	PatientName     string
	ContactName     string
	ContactPhone    string
	ContactEmail    string
	ContactRelation string
	BloodType       string
	UnitsNeeded     int
	Urgency         string // form label: Normal / High / Critical
	Notes           string
	HospitalName    string
	HospitalAddress string
	City            string
	State           string
	Location        models.Coordinates
	RequiredBy      *time.Time

	located bool
}

// SetState selects the state and clears the dependent city field.
func (d *RequestDraft) SetState(state string) {
	if d.State != state {
		d.State = state
		d.City = ""
	}
}

// Locate resolves the caller's position. A locator failure falls back to
// the fixed default coordinate so the flow never stalls on a denied
// permission. The hospital address is seeded from the raw coordinates and
// then upgraded best-effort by reverse geocoding.
func (d *RequestDraft) Locate(ctx context.Context, locator Locator, c *Client) {
	point, err := locator.CurrentLocation(ctx)
	if err != nil {
		point = models.DefaultCoordinates
	}

	d.Location = point
	d.located = true

	if d.HospitalAddress == "" {
		d.HospitalAddress = c.ReverseGeocode(ctx, point)
	}
}

// Located reports whether a position (real or default) has been resolved.
func (d *RequestDraft) Located() bool {
	return d.located
}

// Validate checks the required fields before any network call.
func (d *RequestDraft) Validate() error {
	required := []struct {
		name  string
		empty bool
	}{
		{"patient name", d.PatientName == ""},
		{"contact phone", d.ContactPhone == ""},
		{"contact email", d.ContactEmail == ""},
		{"blood type", d.BloodType == ""},
		{"units needed", d.UnitsNeeded <= 0},
		{"hospital name", d.HospitalName == ""},
		{"hospital address", d.HospitalAddress == ""},
		{"state", d.State == ""},
		{"city", d.City == ""},
	}

	for _, field := range required {
		if field.empty {
			return fmt.Errorf("missing required field: %s", field.name)
		}
	}

	if !d.Location.Valid() {
		return errors.New("coordinates out of range")
	}

	return nil
}

// payload composes the normalized submission body: urgency label mapped to
// the backend enum, reason defaulted when notes are empty.
func (d *RequestDraft) payload() map[string]interface{} {
	reason := d.Notes
	if reason == "" {
		reason = models.DefaultRequestReason
	}

	body := map[string]interface{}{
		"patientName":     d.PatientName,
		"contactName":     d.ContactName,
		"contactPhone":    d.ContactPhone,
		"contactEmail":    d.ContactEmail,
		"contactRelation": d.ContactRelation,
		"bloodType":       d.BloodType,
		"unitsNeeded":     d.UnitsNeeded,
		"urgency":         models.NormalizeUrgency(d.Urgency),
		"notes":           reason,
		"hospitalName":    d.HospitalName,
		"hospitalAddress": d.HospitalAddress,
		"city":            d.City,
		"state":           d.State,
		"location":        d.Location,
	}
	if d.RequiredBy != nil {
		body["requiredBy"] = d.RequiredBy
	}

	return body
}

// SubmitRequest validates and submits the draft. A missing session is a
// hard stop: nothing is sent unauthenticated.
func (c *Client) SubmitRequest(ctx context.Context, draft *RequestDraft) (*models.BloodRequest, error) {
	if c.store.Token() == "" {
		return nil, ErrNoSession
	}
	if _, ok := c.store.User(); !ok {
		return nil, ErrNoSession
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created models.BloodRequest
	if err := c.do(ctx, http.MethodPost, "/requests", draft.payload(), &created); err != nil {
		return nil, err
	}

	merged := mergeServerResponse(draft, created)
	return &merged, nil
}

// mergeServerResponse overlays the canonical server record on the local
// draft. Server-assigned fields always win; draft fields only fill gaps the
// server response left empty.
func mergeServerResponse(draft *RequestDraft, created models.BloodRequest) models.BloodRequest {
	merged := created

	if merged.PatientName == "" {
		merged.PatientName = draft.PatientName
	}
	if merged.BloodType == "" {
		merged.BloodType = draft.BloodType
	}
	if merged.UnitsNeeded == 0 {
		merged.UnitsNeeded = draft.UnitsNeeded
	}
	if merged.HospitalName == "" {
		merged.HospitalName = draft.HospitalName
	}
	if merged.City == "" {
		merged.City = draft.City
	}
	if merged.State == "" {
		merged.State = draft.State
	}
	if merged.Latitude == 0 && merged.Longitude == 0 {
		merged.Latitude = draft.Location.Lat
		merged.Longitude = draft.Location.Lng
	}
	if merged.CreatedAt.IsZero() {
		merged.CreatedAt = time.Now()
	}

	return merged
}

// Prepend puts a freshly created request at the top of the active view,
// the optimistic-update step after a successful submission.
func Prepend(list []DisplayRequest, req models.BloodRequest) []DisplayRequest {
	return append([]DisplayRequest{toDisplay(req)}, list...)
}

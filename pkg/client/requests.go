package client

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

// DisplayRequest is a blood request mapped to the field names and labels
// the dashboards show.
type DisplayRequest struct {
	ID        int
	Reference string
	Patient   string
	BloodType string
	Units     int
	Urgency   string // Normal / High / Critical
	Status    string // Pending / In Progress / Fulfilled / Cancelled
	Hospital  string
	City      string
	State     string
	Location  models.Coordinates
	CreatedAt time.Time
	Sample    bool
}

// ActiveRequests fetches the caller's requests and reduces them to the
// active view: today's requests only, newest first, display labels applied.
// A 401/403 clears the session and propagates; any other failure serves the
// built-in sample set so the dashboard is never empty.
func (c *Client) ActiveRequests(ctx context.Context) ([]DisplayRequest, error) {
	var fetched []models.BloodRequest
	if err := c.do(ctx, http.MethodGet, "/requests/me", nil, &fetched); err != nil {
		if err == ErrSessionExpired || ctx.Err() != nil {
			return nil, err
		}
		return sampleActiveRequests(time.Now()), nil
	}

	return activeView(fetched, time.Now()), nil
}

// activeView applies the display mapping, the today filter and the
// newest-first ordering.
func activeView(reqs []models.BloodRequest, now time.Time) []DisplayRequest {
	result := make([]DisplayRequest, 0, len(reqs))
	for _, req := range reqs {
		if !sameLocalDay(req.CreatedAt, now) {
			continue
		}
		result = append(result, toDisplay(req))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

func toDisplay(req models.BloodRequest) DisplayRequest {
	return DisplayRequest{
		ID:        req.ID,
		Reference: req.Reference,
		Patient:   req.PatientName,
		BloodType: req.BloodType,
		Units:     req.UnitsNeeded,
		Urgency:   models.DisplayUrgency(req.Urgency),
		Status:    displayStatus(req.Status),
		Hospital:  req.HospitalName,
		City:      req.City,
		State:     req.State,
		Location:  req.Point(),
		CreatedAt: req.CreatedAt,
	}
}

func displayStatus(status string) string {
	parts := strings.Split(status, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// ErrNoRequestLocation marks a request with no stored coordinates. It is a
// warning returned alongside whatever routing succeeded, never instead of it.
var ErrNoRequestLocation = errors.New("request has no stored location")

// RouteToRequest fetches directions from the caller's position to the
// request's hospital. The external maps deep link comes back regardless of
// how the fetch went, so the caller always has a handoff option. A request
// with no stored coordinates still gets routed; ErrNoRequestLocation rides
// along as the warning.
func (c *Client) RouteToRequest(ctx context.Context, origin models.Coordinates, req DisplayRequest, mode string) (*models.DirectionsResult, string, error) {
	link := ExternalMapsURL(origin, req.Location)

	result, err := c.Directions(ctx, origin, req.Location, mode)
	if err != nil {
		return nil, link, err
	}

	if req.Location.Lat == 0 && req.Location.Lng == 0 {
		return result, link, ErrNoRequestLocation
	}

	return result, link, nil
}

// sampleActiveRequests is the degraded-mode list shown when the backend is
// unreachable for reasons other than auth.
func sampleActiveRequests(now time.Time) []DisplayRequest {
	return []DisplayRequest{
		{
			ID:        1,
			Patient:   "Rahul Sharma",
			BloodType: "O+",
			Units:     2,
			Urgency:   "Critical",
			Status:    "Pending",
			Hospital:  "City Care Hospital",
			City:      "Mumbai",
			State:     "Maharashtra",
			Location:  models.Coordinates{Lat: 19.0760, Lng: 72.8777},
			CreatedAt: now.Add(-30 * time.Minute),
			Sample:    true,
		},
		{
			ID:        2,
			Patient:   "Priya Patel",
			BloodType: "B-",
			Units:     1,
			Urgency:   "High",
			Status:    "In Progress",
			Hospital:  "Lifeline Medical Centre",
			City:      "Pune",
			State:     "Maharashtra",
			Location:  models.Coordinates{Lat: 18.5204, Lng: 73.8567},
			CreatedAt: now.Add(-2 * time.Hour),
			Sample:    true,
		},
	}
}

package requests

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/locations"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

var (
	ErrRequestNotFound       = errors.New("blood request not found")
	ErrInvalidStatus         = errors.New("invalid request status")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInvalidCoordinates    = errors.New("coordinates out of range")
	ErrCityNotInState        = errors.New("city does not belong to the selected state")
	ErrDonorNotFound         = errors.New("no donor profile for this user")
	ErrAlreadyResponded      = errors.New("donor already responded to this request")
	ErrRequestNotRespondable = errors.New("request no longer accepts responses")
)

type Service struct {
	repository RequestRepository
	regions    locations.RegionRepository
	audit      *auditlog.Auditlog
}

func NewService(repository RequestRepository, regions locations.RegionRepository, audit *auditlog.Auditlog) *Service {
	return &Service{repository: repository, regions: regions, audit: audit}
}

func (s *Service) CreateRequest(requesterID int, in CreateRequestInput) (*models.BloodRequest, error) {
	if !in.Location.Valid() {
		return nil, ErrInvalidCoordinates
	}

	known, err := s.regions.CityInState(in.State, in.City)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, ErrCityNotInState
	}

	reason := in.Notes
	if reason == "" {
		reason = models.DefaultRequestReason
	}

	req := &models.BloodRequest{
		Reference:       uuid.NewString(),
		RequesterID:     requesterID,
		PatientName:     in.PatientName,
		ContactName:     in.ContactName,
		ContactPhone:    in.ContactPhone,
		ContactEmail:    in.ContactEmail,
		ContactRelation: in.ContactRelation,
		BloodType:       in.BloodType,
		UnitsNeeded:     in.UnitsNeeded,
		Urgency:         models.NormalizeUrgency(in.Urgency),
		Reason:          reason,
		HospitalName:    in.HospitalName,
		HospitalAddress: in.HospitalAddress,
		City:            in.City,
		State:           in.State,
		Latitude:        in.Location.Lat,
		Longitude:       in.Location.Lng,
		RequiredBy:      in.RequiredBy,
		Status:          models.RequestStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.repository.InsertRequest(req); err != nil {
		return nil, err
	}

	s.audit.Log("create", req, *req)

	return req, nil
}

func (s *Service) GetRequest(id int) (*models.BloodRequest, error) {
	req, err := s.repository.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	responders, err := s.repository.GetResponders(id)
	if err != nil {
		return nil, err
	}
	req.Responders = responders

	return req, nil
}

func (s *Service) ListMyRequests(requesterID int) ([]models.BloodRequest, error) {
	return s.repository.GetRequestsByRequester(requesterID)
}

func (s *Service) ListRequests(status, bloodType string) ([]models.BloodRequest, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repository.GetRequests(status, bloodType)
}

// ChangeStatus enforces the request workflow: pending requests may move to
// in_progress or cancelled, in_progress to fulfilled or cancelled.
// Fulfilled and cancelled are terminal.
func (s *Service) ChangeStatus(requestID int, newStatus string) error {
	if !validStatus(newStatus) {
		return ErrInvalidStatus
	}

	req, err := s.repository.GetRequest(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	if req.Status == newStatus {
		return nil
	}

	if !transitionAllowed(req.Status, newStatus) {
		return ErrInvalidTransition
	}

	if err := s.repository.UpdateRequestStatus(requestID, newStatus); err != nil {
		return err
	}

	s.audit.Log("status:"+newStatus, map[string]string{"from": req.Status, "to": newStatus}, *req)

	return nil
}

// Respond registers the authenticated donor against a request.
func (s *Service) Respond(requestID, userID int) error {
	donorID, err := s.repository.GetDonorIDByUser(userID)
	if err != nil {
		return err
	}

	req, err := s.repository.GetRequest(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	if req.Status != models.RequestStatusPending && req.Status != models.RequestStatusInProgress {
		return ErrRequestNotRespondable
	}

	if err := s.repository.InsertResponse(requestID, donorID); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			return ErrAlreadyResponded
		}
		return err
	}

	s.audit.Log("respond", map[string]int{"donor_id": donorID}, *req)

	return nil
}

func validStatus(status string) bool {
	switch status {
	case models.RequestStatusPending, models.RequestStatusInProgress,
		models.RequestStatusFulfilled, models.RequestStatusCancelled:
		return true
	default:
		return false
	}
}

func transitionAllowed(from, to string) bool {
	switch from {
	case models.RequestStatusPending:
		return to == models.RequestStatusInProgress || to == models.RequestStatusCancelled
	case models.RequestStatusInProgress:
		return to == models.RequestStatusFulfilled || to == models.RequestStatusCancelled
	default:
		return false
	}
}

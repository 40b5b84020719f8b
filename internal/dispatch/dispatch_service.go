package dispatch

import (
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/requests"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

var (
	ErrDispatchNotFound       = errors.New("dispatch not found")
	ErrVehicleUnavailable     = errors.New("vehicle is not available")
	ErrRequestNotDispatchable = errors.New("request is not in progress")
	ErrDispatchFinished       = errors.New("dispatch already finished")
	ErrInvalidDispatchStatus  = errors.New("invalid dispatch status")
)

type DispatchService struct {
	db       *goqu.Database
	r        DispatchRepository
	requests requests.RequestRepository
	audit    *auditlog.Auditlog
}

func NewService(repo *repository.Repository, r DispatchRepository, reqRepo requests.RequestRepository, audit *auditlog.Auditlog) *DispatchService {
	return &DispatchService{
		db:       repo.GoquDBWrapper,
		r:        r,
		requests: reqRepo,
		audit:    audit,
	}
}

type CreateDispatchInput struct {
	RequestID  int `json:"requestId" binding:"required"`
	VehicleID  int `json:"vehicleId" binding:"required"`
	HospitalID int `json:"hospitalId" binding:"required"`
}

// CreateDispatch reserves the vehicle and writes the dispatch record in one
// transaction, so a vehicle can never be booked twice.
func (s *DispatchService) CreateDispatch(in CreateDispatchInput) (*models.Dispatch, error) {
	req, err := s.requests.GetRequest(in.RequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, requests.ErrRequestNotFound
	}
	if req.Status != models.RequestStatusInProgress {
		return nil, ErrRequestNotDispatchable
	}

	d := &models.Dispatch{
		Reference:    uuid.NewString(),
		RequestID:    in.RequestID,
		VehicleID:    in.VehicleID,
		HospitalID:   in.HospitalID,
		Status:       models.DispatchStatusInTransit,
		DispatchedAt: time.Now(),
	}

	err = repository.WithTransaction(s.db, func(tx *goqu.TxDatabase) error {
		reserved, err := s.r.MarkVehicle(tx, in.VehicleID, models.VehicleStatusAvailable, models.VehicleStatusOnDispatch)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrVehicleUnavailable
		}

		return s.r.InsertDispatchRecord(tx, d)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log("dispatch", *d, *d)

	return d, nil
}

// Finish closes a dispatch as delivered or cancelled and releases the vehicle.
func (s *DispatchService) Finish(dispatchID int, status string) (*models.Dispatch, error) {
	if status != models.DispatchStatusDelivered && status != models.DispatchStatusCancelled {
		return nil, ErrInvalidDispatchStatus
	}

	d, err := s.r.GetDispatch(dispatchID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDispatchNotFound
	}
	if d.Status != models.DispatchStatusInTransit {
		return nil, ErrDispatchFinished
	}

	var deliveredAt *time.Time
	if status == models.DispatchStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	err = repository.WithTransaction(s.db, func(tx *goqu.TxDatabase) error {
		if err := s.r.UpdateDispatchStatus(tx, dispatchID, status, deliveredAt); err != nil {
			return err
		}

		_, err := s.r.MarkVehicle(tx, d.VehicleID, models.VehicleStatusOnDispatch, models.VehicleStatusAvailable)
		return err
	})
	if err != nil {
		return nil, err
	}

	d.Status = status
	d.DeliveredAt = deliveredAt

	s.audit.Log("dispatch:"+status, map[string]string{"to": status}, *d)

	return d, nil
}

func (s *DispatchService) GetDispatch(id int) (*models.Dispatch, error) {
	d, err := s.r.GetDispatch(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDispatchNotFound
	}
	return d, nil
}

func (s *DispatchService) ListDispatches(status string) ([]models.Dispatch, error) {
	return s.r.GetDispatches(status)
}

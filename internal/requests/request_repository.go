package requests

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type RequestRepository interface {
	InsertRequest(req *models.BloodRequest) error
	GetRequest(id int) (*models.BloodRequest, error)
	GetRequestsByRequester(requesterID int) ([]models.BloodRequest, error)
	GetRequests(status, bloodType string) ([]models.BloodRequest, error)
	UpdateRequestStatus(id int, status string) error
	InsertResponse(requestID, donorID int) error
	GetResponders(requestID int) ([]models.Responder, error)
	GetDonorIDByUser(userID int) (int, error)
}

type requestRepositoryImpl struct {
	repository *repository.Repository
}

func NewRequestRepository(r *repository.Repository) RequestRepository {
	return &requestRepositoryImpl{repository: r}
}

var requestColumns = []interface{}{
	"id", "reference", "requester_id", "patient_name", "contact_name",
	"contact_phone", "contact_email", "contact_relation", "blood_type",
	"units_needed", "urgency", "reason", "hospital_name", "hospital_address",
	"city", "state", "latitude", "longitude", "required_by", "status",
	"created_at",
}

func (r *requestRepositoryImpl) InsertRequest(req *models.BloodRequest) error {
	query := r.repository.GoquDBWrapper.Insert("requests").
		Rows(goqu.Record{
			"reference":        req.Reference,
			"requester_id":     req.RequesterID,
			"patient_name":     req.PatientName,
			"contact_name":     req.ContactName,
			"contact_phone":    req.ContactPhone,
			"contact_email":    req.ContactEmail,
			"contact_relation": req.ContactRelation,
			"blood_type":       req.BloodType,
			"units_needed":     req.UnitsNeeded,
			"urgency":          req.Urgency,
			"reason":           req.Reason,
			"hospital_name":    req.HospitalName,
			"hospital_address": req.HospitalAddress,
			"city":             req.City,
			"state":            req.State,
			"latitude":         req.Latitude,
			"longitude":        req.Longitude,
			"required_by":      req.RequiredBy,
			"status":           req.Status,
			"created_at":       req.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&req.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("blood request", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert blood request: %w", err)
	}

	return nil
}

func (r *requestRepositoryImpl) GetRequest(id int) (*models.BloodRequest, error) {
	var req models.BloodRequest
	query := r.repository.GoquDBWrapper.
		Select(requestColumns...).
		From("requests").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&req)
	if err != nil {
		return nil, fmt.Errorf("failed to get blood request: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &req, nil
}

func (r *requestRepositoryImpl) GetRequestsByRequester(requesterID int) ([]models.BloodRequest, error) {
	var reqs []models.BloodRequest
	query := r.repository.GoquDBWrapper.
		Select(requestColumns...).
		From("requests").
		Where(goqu.Ex{"requester_id": requesterID}).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&reqs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return reqs, nil
}

func (r *requestRepositoryImpl) GetRequests(status, bloodType string) ([]models.BloodRequest, error) {
	var reqs []models.BloodRequest
	query := r.repository.GoquDBWrapper.
		Select(requestColumns...).
		From("requests").
		Order(goqu.I("created_at").Desc())

	if status != "" {
		query = query.Where(goqu.Ex{"status": status})
	}
	if bloodType != "" {
		query = query.Where(goqu.Ex{"blood_type": bloodType})
	}

	if err := query.Executor().ScanStructs(&reqs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return reqs, nil
}

func (r *requestRepositoryImpl) UpdateRequestStatus(id int, status string) error {
	query := r.repository.GoquDBWrapper.
		Update("requests").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *requestRepositoryImpl) InsertResponse(requestID, donorID int) error {
	query := r.repository.GoquDBWrapper.Insert("request_responses").
		Rows(goqu.Record{
			"request_id": requestID,
			"donor_id":   donorID,
		})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("donor response", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert donor response: %w", err)
	}

	return nil
}

func (r *requestRepositoryImpl) GetResponders(requestID int) ([]models.Responder, error) {
	var responders []models.Responder
	query := r.repository.GoquDBWrapper.
		From(goqu.T("request_responses").As("rr")).
		Join(goqu.T("donors").As("d"), goqu.On(goqu.Ex{"rr.donor_id": goqu.I("d.id")})).
		Select(
			goqu.I("d.id").As("donor_id"),
			goqu.I("d.name").As("name"),
			goqu.I("d.phone").As("phone"),
			goqu.I("d.blood_type").As("blood_type"),
			goqu.I("rr.responded_at").As("responded_at"),
		).
		Where(goqu.Ex{"rr.request_id": requestID}).
		Order(goqu.I("rr.responded_at").Asc())

	if err := query.Executor().ScanStructs(&responders); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return responders, nil
}

func (r *requestRepositoryImpl) GetDonorIDByUser(userID int) (int, error) {
	var donorID int
	query := r.repository.GoquDBWrapper.
		Select("id").
		From("donors").
		Where(goqu.Ex{"user_id": userID})

	found, err := query.Executor().ScanVal(&donorID)
	if err != nil {
		return 0, fmt.Errorf("failed to get donor: %w", err)
	}
	if !found {
		return 0, ErrDonorNotFound
	}

	return donorID, nil
}

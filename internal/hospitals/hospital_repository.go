package hospitals

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type HospitalRepository interface {
	PersistHospital(hospital *models.Hospital) error
	GetHospital(id int) (*models.Hospital, error)
	GetHospitals(city, state string) ([]models.Hospital, error)
	UpdateHospital(id int, req UpdateHospitalRequest) (*models.Hospital, error)
	DeleteHospital(id int) error
}

type hospitalRepositoryImpl struct {
	repository *repository.Repository
}

func NewHospitalRepository(r *repository.Repository) HospitalRepository {
	return &hospitalRepositoryImpl{repository: r}
}

type UpdateHospitalRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *hospitalRepositoryImpl) PersistHospital(hospital *models.Hospital) error {
	query := r.repository.GoquDBWrapper.Insert("hospitals").
		Rows(goqu.Record{
			"name":      hospital.Name,
			"address":   hospital.Address,
			"city":      hospital.City,
			"state":     hospital.State,
			"phone":     hospital.Phone,
			"latitude":  hospital.Latitude,
			"longitude": hospital.Longitude,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&hospital.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("hospital", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert hospital record: %w", err)
	}

	return nil
}

func (r *hospitalRepositoryImpl) GetHospital(id int) (*models.Hospital, error) {
	var hospital models.Hospital
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "address", "city", "state", "phone", "latitude", "longitude").
		From("hospitals").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&hospital)
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &hospital, nil
}

func (r *hospitalRepositoryImpl) GetHospitals(city, state string) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "address", "city", "state", "phone", "latitude", "longitude").
		From("hospitals").
		Order(goqu.I("name").Asc())

	if city != "" {
		query = query.Where(goqu.Ex{"city": city})
	}
	if state != "" {
		query = query.Where(goqu.Ex{"state": state})
	}

	if err := query.Executor().ScanStructs(&hospitals); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return hospitals, nil
}

func (r *hospitalRepositoryImpl) UpdateHospital(id int, req UpdateHospitalRequest) (*models.Hospital, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := r.repository.GoquDBWrapper.
		Update("hospitals").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "address", "city", "state", "phone", "latitude", "longitude")

	var hospital models.Hospital
	found, err := query.Executor().ScanStruct(&hospital)
	if err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &hospital, nil
}

func (r *hospitalRepositoryImpl) DeleteHospital(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("hospitals").
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("hospital", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	return nil
}

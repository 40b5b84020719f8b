package donors

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type DonorRepository interface {
	PersistDonor(donor *models.Donor) error
	GetDonor(id int) (*models.Donor, error)
	GetDonors(bloodType, city, state string, onlyAvailable bool) ([]models.Donor, error)
	UpdateDonor(id int, changes *models.DonorChanges) error
	DeleteDonor(id int) error
}

type donorRepositoryImpl struct {
	repository *repository.Repository
}

func NewDonorRepository(r *repository.Repository) DonorRepository {
	return &donorRepositoryImpl{repository: r}
}

var donorColumns = []interface{}{
	"id", "user_id", "name", "email", "phone", "blood_type",
	"city", "state", "available", "last_donation", "created_at",
}

func (r *donorRepositoryImpl) PersistDonor(donor *models.Donor) error {
	query := r.repository.GoquDBWrapper.Insert("donors").
		Rows(goqu.Record{
			"user_id":       donor.UserID,
			"name":          donor.Name,
			"email":         donor.Email,
			"phone":         donor.Phone,
			"blood_type":    donor.BloodType,
			"city":          donor.City,
			"state":         donor.State,
			"available":     donor.Available,
			"last_donation": donor.LastDonation,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&donor.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("donor email already registered", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert donor record: %w", err)
	}

	return nil
}

func (r *donorRepositoryImpl) GetDonor(id int) (*models.Donor, error) {
	var donor models.Donor
	query := r.repository.GoquDBWrapper.
		Select(donorColumns...).
		From("donors").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&donor)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &donor, nil
}

func (r *donorRepositoryImpl) GetDonors(bloodType, city, state string, onlyAvailable bool) ([]models.Donor, error) {
	var donors []models.Donor
	query := r.repository.GoquDBWrapper.
		Select(donorColumns...).
		From("donors").
		Order(goqu.I("name").Asc())

	if bloodType != "" {
		query = query.Where(goqu.Ex{"blood_type": bloodType})
	}
	if city != "" {
		query = query.Where(goqu.Ex{"city": city})
	}
	if state != "" {
		query = query.Where(goqu.Ex{"state": state})
	}
	if onlyAvailable {
		query = query.Where(goqu.Ex{"available": true})
	}

	if err := query.Executor().ScanStructs(&donors); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return donors, nil
}

func (r *donorRepositoryImpl) UpdateDonor(id int, changes *models.DonorChanges) error {
	updates := make(map[string]interface{})

	if changes.Phone != nil {
		updates["phone"] = *changes.Phone
	}
	if changes.City != nil {
		updates["city"] = *changes.City
	}
	if changes.State != nil {
		updates["state"] = *changes.State
	}
	if changes.Available != nil {
		updates["available"] = *changes.Available
	}
	if changes.LastDonation != nil {
		updates["last_donation"] = *changes.LastDonation
	}
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := r.repository.GoquDBWrapper.
		Update("donors").
		Set(updates).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update donor: %w", err)
	}

	return nil
}

func (r *donorRepositoryImpl) DeleteDonor(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("donors").
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("donor", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete donor: %w", err)
	}

	return nil
}

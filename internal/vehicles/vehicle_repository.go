package vehicles

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type VehicleRepository interface {
	PersistVehicle(vehicle *models.Vehicle) error
	GetVehicle(id int) (*models.Vehicle, error)
	GetVehicles(status string) ([]models.Vehicle, error)
	UpdateVehicle(id int, req UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(id int) error
}

type vehicleRepositoryImpl struct {
	repository *repository.Repository
}

func NewVehicleRepository(r *repository.Repository) VehicleRepository {
	return &vehicleRepositoryImpl{repository: r}
}

type UpdateVehicleRequest struct {
	VehicleType *string `json:"vehicleType"`
	Status      *string `json:"status"`
	DriverName  *string `json:"driverName"`
	DriverPhone *string `json:"driverPhone"`
}

var vehicleColumns = []interface{}{
	"id", "registration_no", "vehicle_type", "status", "driver_name", "driver_phone",
}

func (r *vehicleRepositoryImpl) PersistVehicle(vehicle *models.Vehicle) error {
	query := r.repository.GoquDBWrapper.Insert("vehicles").
		Rows(goqu.Record{
			"registration_no": vehicle.RegistrationNo,
			"vehicle_type":    vehicle.VehicleType,
			"status":          vehicle.Status,
			"driver_name":     vehicle.DriverName,
			"driver_phone":    vehicle.DriverPhone,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&vehicle.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("duplicate registration number", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert vehicle record: %w", err)
	}

	return nil
}

func (r *vehicleRepositoryImpl) GetVehicle(id int) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	query := r.repository.GoquDBWrapper.
		Select(vehicleColumns...).
		From("vehicles").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &vehicle, nil
}

func (r *vehicleRepositoryImpl) GetVehicles(status string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	query := r.repository.GoquDBWrapper.
		Select(vehicleColumns...).
		From("vehicles").
		Order(goqu.I("registration_no").Asc())

	if status != "" {
		query = query.Where(goqu.Ex{"status": status})
	}

	if err := query.Executor().ScanStructs(&vehicles); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepositoryImpl) UpdateVehicle(id int, req UpdateVehicleRequest) (*models.Vehicle, error) {
	updates := make(map[string]interface{})

	if req.VehicleType != nil {
		updates["vehicle_type"] = *req.VehicleType
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.DriverName != nil {
		updates["driver_name"] = *req.DriverName
	}
	if req.DriverPhone != nil {
		updates["driver_phone"] = *req.DriverPhone
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := r.repository.GoquDBWrapper.
		Update("vehicles").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning(vehicleColumns...)

	var vehicle models.Vehicle
	found, err := query.Executor().ScanStruct(&vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &vehicle, nil
}

func (r *vehicleRepositoryImpl) DeleteVehicle(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("vehicles").
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("vehicle", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return nil
}

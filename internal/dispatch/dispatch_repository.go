package dispatch

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type DispatchRepository interface {
	InsertDispatchRecord(tx *goqu.TxDatabase, d *models.Dispatch) error
	MarkVehicle(tx *goqu.TxDatabase, vehicleID int, fromStatus, toStatus string) (bool, error)
	UpdateDispatchStatus(tx *goqu.TxDatabase, id int, status string, deliveredAt *time.Time) error
	GetDispatch(id int) (*models.Dispatch, error)
	GetDispatches(status string) ([]models.Dispatch, error)
}

type dispatchRepositoryImpl struct {
	repository *repository.Repository
}

func NewDispatchRepository(r *repository.Repository) DispatchRepository {
	return &dispatchRepositoryImpl{repository: r}
}

var dispatchColumns = []interface{}{
	"id", "reference", "request_id", "vehicle_id", "hospital_id",
	"status", "dispatched_at", "delivered_at",
}

func (r *dispatchRepositoryImpl) InsertDispatchRecord(tx *goqu.TxDatabase, d *models.Dispatch) error {
	query := tx.Insert("dispatches").
		Rows(goqu.Record{
			"reference":     d.Reference,
			"request_id":    d.RequestID,
			"vehicle_id":    d.VehicleID,
			"hospital_id":   d.HospitalID,
			"status":        d.Status,
			"dispatched_at": d.DispatchedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&d.ID); err != nil {
		return fmt.Errorf("failed to insert dispatch record: %w", err)
	}

	return nil
}

// MarkVehicle flips a vehicle between statuses. The fromStatus guard makes
// concurrent dispatches race-safe: only one update can win.
func (r *dispatchRepositoryImpl) MarkVehicle(tx *goqu.TxDatabase, vehicleID int, fromStatus, toStatus string) (bool, error) {
	query := tx.Update("vehicles").
		Set(goqu.Record{"status": toStatus}).
		Where(goqu.Ex{"id": vehicleID, "status": fromStatus})

	result, err := query.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update vehicle status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *dispatchRepositoryImpl) UpdateDispatchStatus(tx *goqu.TxDatabase, id int, status string, deliveredAt *time.Time) error {
	record := goqu.Record{"status": status}
	if deliveredAt != nil {
		record["delivered_at"] = *deliveredAt
	}

	query := tx.Update("dispatches").
		Set(record).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update dispatch status: %w", err)
	}

	return nil
}

func (r *dispatchRepositoryImpl) GetDispatch(id int) (*models.Dispatch, error) {
	var d models.Dispatch
	query := r.repository.GoquDBWrapper.
		Select(dispatchColumns...).
		From("dispatches").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&d)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &d, nil
}

func (r *dispatchRepositoryImpl) GetDispatches(status string) ([]models.Dispatch, error) {
	var dispatches []models.Dispatch
	query := r.repository.GoquDBWrapper.
		Select(dispatchColumns...).
		From("dispatches").
		Order(goqu.I("dispatched_at").Desc())

	if status != "" {
		query = query.Where(goqu.Ex{"status": status})
	}

	if err := query.Executor().ScanStructs(&dispatches); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return dispatches, nil
}

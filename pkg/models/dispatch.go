package models

import "time"

const (
	DispatchStatusInTransit = "in_transit"
	DispatchStatusDelivered = "delivered"
	DispatchStatusCancelled = "cancelled"
)

type Dispatch struct {
	ID           int        `json:"id" db:"id"`
	Reference    string     `json:"reference" db:"reference"`
	RequestID    int        `json:"requestId" db:"request_id"`
	VehicleID    int        `json:"vehicleId" db:"vehicle_id"`
	HospitalID   int        `json:"hospitalId" db:"hospital_id"`
	Status       string     `json:"status" db:"status"`
	DispatchedAt time.Time  `json:"dispatchedAt" db:"dispatched_at"`
	DeliveredAt  *time.Time `json:"deliveredAt" db:"delivered_at"`
}

func (d Dispatch) CreateLogView() AuditLog {
	return AuditLog{ResourceID: d.ID, ResourceType: "dispatch"}
}

package models

const (
	VehicleStatusAvailable   = "available"
	VehicleStatusOnDispatch  = "on_dispatch"
	VehicleStatusMaintenance = "maintenance"
)

type Vehicle struct {
	ID             int     `json:"id" db:"id"`
	RegistrationNo string  `json:"registrationNo" db:"registration_no"`
	VehicleType    string  `json:"vehicleType" db:"vehicle_type"`
	Status         string  `json:"status" db:"status"`
	DriverName     *string `json:"driverName" db:"driver_name"`
	DriverPhone    *string `json:"driverPhone" db:"driver_phone"`
}

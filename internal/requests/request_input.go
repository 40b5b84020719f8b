package requests

import (
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

// CreateRequestInput is the creation form payload. Urgency arrives as the
// form label (Normal/High/Critical) and is normalized before persisting.
type CreateRequestInput struct {
	PatientName     string             `json:"patientName" binding:"required"`
	ContactName     string             `json:"contactName"`
	ContactPhone    string             `json:"contactPhone" binding:"required"`
	ContactEmail    string             `json:"contactEmail" binding:"required,email"`
	ContactRelation string             `json:"contactRelation"`
	BloodType       string             `json:"bloodType" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	UnitsNeeded     int                `json:"unitsNeeded" binding:"required,gt=0"`
	Urgency         string             `json:"urgency"`
	Notes           string             `json:"notes"`
	HospitalName    string             `json:"hospitalName" binding:"required"`
	HospitalAddress string             `json:"hospitalAddress" binding:"required"`
	City            string             `json:"city" binding:"required"`
	State           string             `json:"state" binding:"required"`
	Location        models.Coordinates `json:"location"`
	RequiredBy      *time.Time         `json:"requiredBy"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

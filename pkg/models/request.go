package models

import "time"

const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusFulfilled  = "fulfilled"
	RequestStatusCancelled  = "cancelled"
)

const DefaultRequestReason = "Urgent blood requirement"

var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func IsValidBloodType(bt string) bool {
	for _, t := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}

type BloodRequest struct {
	ID              int         `json:"id" db:"id"`
	Reference       string      `json:"reference" db:"reference"`
	RequesterID     int         `json:"requesterId" db:"requester_id"`
	PatientName     string      `json:"patientName" db:"patient_name"`
	ContactName     string      `json:"contactName" db:"contact_name"`
	ContactPhone    string      `json:"contactPhone" db:"contact_phone"`
	ContactEmail    string      `json:"contactEmail" db:"contact_email"`
	ContactRelation string      `json:"contactRelation" db:"contact_relation"`
	BloodType       string      `json:"bloodType" db:"blood_type"`
	UnitsNeeded     int         `json:"unitsNeeded" db:"units_needed"`
	Urgency         string      `json:"urgency" db:"urgency"`
	Reason          string      `json:"reason" db:"reason"`
	HospitalName    string      `json:"hospitalName" db:"hospital_name"`
	HospitalAddress string      `json:"hospitalAddress" db:"hospital_address"`
	City            string      `json:"city" db:"city"`
	State           string      `json:"state" db:"state"`
	Latitude        float64     `json:"latitude" db:"latitude"`
	Longitude       float64     `json:"longitude" db:"longitude"`
	RequiredBy      *time.Time  `json:"requiredBy" db:"required_by"`
	Status          string      `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	Responders      []Responder `json:"responders,omitempty" db:"-"`
}

// Responder is a donor who offered to cover a request.
type Responder struct {
	DonorID     int       `json:"donorId" db:"donor_id"`
	Name        string    `json:"name" db:"name"`
	Phone       string    `json:"phone" db:"phone"`
	BloodType   string    `json:"bloodType" db:"blood_type"`
	RespondedAt time.Time `json:"respondedAt" db:"responded_at"`
}

func (r BloodRequest) Point() Coordinates {
	return Coordinates{Lat: r.Latitude, Lng: r.Longitude}
}

func (r BloodRequest) CreateLogView() AuditLog {
	return AuditLog{ResourceID: r.ID, ResourceType: "blood_request"}
}

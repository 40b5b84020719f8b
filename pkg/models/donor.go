package models

import "time"

type Donor struct {
	ID           int        `json:"id" db:"id"`
	UserID       *int       `json:"userId" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Phone        string     `json:"phone" db:"phone"`
	BloodType    string     `json:"bloodType" db:"blood_type"`
	City         string     `json:"city" db:"city"`
	State        string     `json:"state" db:"state"`
	Available    bool       `json:"available" db:"available"`
	LastDonation *time.Time `json:"lastDonation" db:"last_donation"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type DonorChanges struct {
	Phone        *string
	City         *string
	State        *string
	Available    *bool
	LastDonation *time.Time
}

func (c *DonorChanges) HasChanges() bool {
	return c.Phone != nil || c.City != nil || c.State != nil ||
		c.Available != nil || c.LastDonation != nil
}

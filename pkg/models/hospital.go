package models

type Hospital struct {
	ID        int     `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Address   string  `json:"address" db:"address"`
	City      string  `json:"city" db:"city"`
	State     string  `json:"state" db:"state"`
	Phone     *string `json:"phone" db:"phone"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

func (h Hospital) Point() Coordinates {
	return Coordinates{Lat: h.Latitude, Lng: h.Longitude}
}

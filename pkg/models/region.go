package models

type Region struct {
	ID    int    `json:"id" db:"id"`
	State string `json:"state" db:"state"`
	City  string `json:"city" db:"city"`
}

// StateCities is the shape served to the request-creation form:
// city options depend on the selected state.
type StateCities struct {
	State  string   `json:"state"`
	Cities []string `json:"cities"`
}

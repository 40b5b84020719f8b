package googlesheets

// DonationDrive is one row of the coordinator-maintained drive roster.
type DonationDrive struct {
	Venue     string `json:"venue"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Organizer string `json:"organizer"`
	Slots     int    `json:"slots"`
}

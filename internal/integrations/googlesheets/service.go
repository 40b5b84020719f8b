package googlesheets

import (
	"fmt"
	"log"
	"strconv"

	"google.golang.org/api/sheets/v4"
)

type DriveScheduleService struct {
	sheetsService *sheets.Service
	spreadsheetID string
}

func NewDriveScheduleService(sheetsService *sheets.Service, spreadsheetID string) *DriveScheduleService {
	return &DriveScheduleService{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
	}
}

func (s *DriveScheduleService) GetDrives() ([]DonationDrive, error) {
	readRange := "A1:I999"

	values, err := s.readSpreadsheet(s.spreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("cannot read drive roster: %v", err)
	}

	if values == nil {
		log.Printf("No data found in drive roster")
		return []DonationDrive{}, nil
	}

	return ParseDrives(values), nil
}

// GetDrivesForCity filters the roster to a single city.
func (s *DriveScheduleService) GetDrivesForCity(city string) ([]DonationDrive, error) {
	drives, err := s.GetDrives()
	if err != nil {
		return nil, err
	}

	result := make([]DonationDrive, 0)
	for _, drive := range drives {
		if drive.City == city {
			result = append(result, drive)
		}
	}

	return result, nil
}

func (s *DriveScheduleService) readSpreadsheet(spreadsheetID string, readRange string) ([][]interface{}, error) {
	resp, err := s.sheetsService.Spreadsheets.Values.Get(spreadsheetID, readRange).Do()
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet: %v", err)
	}

	if len(resp.Values) == 0 {
		log.Printf("No data found in range %s", readRange)
		return nil, nil
	}

	return resp.Values, nil
}

// ParseDrives converts raw sheet rows into drives. The first row is the
// header and is skipped; short rows are ignored.
func ParseDrives(values [][]interface{}) []DonationDrive {
	drives := make([]DonationDrive, 0)

	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) < 5 {
			continue
		}

		drive := DonationDrive{
			Venue:   toString(row[0]),
			Address: toString(row[1]),
			City:    toString(row[2]),
			State:   toString(row[3]),
			Date:    toString(row[4]),
		}
		if len(row) > 5 {
			drive.StartTime = toString(row[5])
		}
		if len(row) > 6 {
			drive.EndTime = toString(row[6])
		}
		if len(row) > 7 {
			drive.Organizer = toString(row[7])
		}
		if len(row) > 8 {
			if slots, err := strconv.Atoi(toString(row[8])); err == nil {
				drive.Slots = slots
			}
		}

		drives = append(drives, drive)
	}

	return drives
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

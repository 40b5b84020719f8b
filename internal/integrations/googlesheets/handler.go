package googlesheets

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/sheets/v4"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type DriveScheduleHandler struct {
	service *DriveScheduleService
}

func NewDriveScheduleHandler() (*DriveScheduleHandler, error) {
	ctx := context.Background()

	credentialsJSON := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON")
	var credentials *google.Credentials
	var err error

	if credentialsJSON != "" {
		credentials, err = google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsReadonlyScope)
	} else {
		// local file only for development
		credentialsFile := "configs/google-credentials.json"
		b, readErr := os.ReadFile(credentialsFile)
		if readErr != nil {
			return nil, fmt.Errorf("cannot read credentials file: %v", readErr)
		}
		credentials, err = google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsReadonlyScope)
	}

	if err != nil {
		return nil, fmt.Errorf("cannot load Google credentials: %v", err)
	}

	spreadsheetID := os.Getenv("DRIVE_ROSTER_SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, fmt.Errorf("DRIVE_ROSTER_SPREADSHEET_ID is not set")
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("cannot create Google Sheets client: %v", err)
	}

	return &DriveScheduleHandler{
		service: NewDriveScheduleService(sheetsService, spreadsheetID),
	}, nil
}

func (h *DriveScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/integrations/drives", security.Authorize("donor"), h.getDrives)
}

func (h *DriveScheduleHandler) getDrives(c *gin.Context) {
	city := c.DefaultQuery("city", "")

	var drives []DonationDrive
	var err error

	if city != "" {
		drives, err = h.service.GetDrivesForCity(city)
	} else {
		drives, err = h.service.GetDrives()
	}

	if err != nil {
		log.Printf("Error fetching drive roster: %v", err)
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, drives)
}

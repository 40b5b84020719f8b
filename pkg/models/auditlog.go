package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           int             `json:"id" db:"id"`
	ResourceID   int             `json:"resource_id" db:"resource_id"`
	ResourceType string          `json:"resource_type" db:"resource_type"`
	Action       string          `json:"action" db:"action"`
	Data         json.RawMessage `json:"data" db:"data"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

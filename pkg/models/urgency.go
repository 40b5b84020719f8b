package models

import "strings"

const (
	UrgencyNormal    = "normal"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// NormalizeUrgency maps the form labels onto the stored enum.
// Unknown labels deliberately collapse to normal.
func NormalizeUrgency(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "critical", UrgencyEmergency:
		return UrgencyEmergency
	case "high", UrgencyUrgent:
		return UrgencyUrgent
	default:
		return UrgencyNormal
	}
}

// DisplayUrgency is the inverse mapping used by list views.
func DisplayUrgency(urgency string) string {
	switch urgency {
	case UrgencyEmergency:
		return "Critical"
	case UrgencyUrgent:
		return "High"
	default:
		return "Normal"
	}
}

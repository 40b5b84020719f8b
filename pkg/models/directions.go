package models

// TextValue is a measure plus its human form, the way directions
// providers report distance and duration.
type TextValue struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type RouteStep struct {
	Instruction string    `json:"instruction"`
	Distance    TextValue `json:"distance"`
	Duration    TextValue `json:"duration"`
	TravelMode  string    `json:"travelMode"`
}

type DirectionsResult struct {
	Distance           TextValue   `json:"distance"`
	Duration           TextValue   `json:"duration"`
	OriginAddress      string      `json:"originAddress"`
	DestinationAddress string      `json:"destinationAddress"`
	Steps              []RouteStep `json:"steps"`
	Provider           string      `json:"provider"`
}

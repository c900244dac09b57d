package models

// SegmentEntry describes one emitted track segment
type SegmentEntry struct {
	ID           string   `json:"id"`
	Corridor     string   `json:"corridor"`
	IsLoop       bool     `json:"isLoop"`
	Lines        []string `json:"lines"`
	LengthMeters float64  `json:"lengthMeters"`
	// Direction is the 8-point compass heading from the first to the second point.
	Direction string `json:"direction"`
	// Polyline is the Google-encoded geometry, lat/lon order.
	Polyline string `json:"polyline"`
}

// CorridorSummary aggregates the segments sharing a corridor label
type CorridorSummary struct {
	Corridor string   `json:"corridor"`
	Segments int      `json:"segments"`
	Lines    []string `json:"lines"`
	IsLoop   bool     `json:"isLoop"`
}

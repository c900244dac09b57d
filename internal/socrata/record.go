package socrata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one row of the "CTA - Ridership - 'L' Station Entries - Daily
// Totals" dataset.
type Record struct {
	StationID   string `json:"station_id"`
	StationName string `json:"stationname"`
	// Date is a floating timestamp such as 2024-01-01T00:00:00.000.
	Date    string `json:"date"`
	DayType string `json:"daytype"`
	Rides   string `json:"rides"`
}

// ServiceDate returns the record's date in "YYYY-MM-DD 00:00:00" form.
func (r Record) ServiceDate() (string, error) {
	day, _, _ := strings.Cut(r.Date, "T")
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	return t.Format("2006-01-02") + " 00:00:00", nil
}

// Entries parses the rides count.
func (r Record) Entries() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(r.Rides))
	if err != nil {
		return 0, fmt.Errorf("invalid rides %q: %w", r.Rides, err)
	}
	return n, nil
}

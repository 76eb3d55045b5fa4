package model

import (
	"time"
)

// Departure is one enriched departure as shown on a board. It is a value
// record; once enriched it is never mutated.
type Departure struct {
	Line                string     `json:"line,omitempty"`
	Destination         string     `json:"destination,omitempty"`
	TransportMode       string     `json:"transportMode,omitempty"`
	Platform            string     `json:"platform,omitempty"`
	ScheduledTime       time.Time  `json:"scheduledTime,omitempty"`
	EstimatedTime       *time.Time `json:"estimatedTime,omitempty"`
	DisplayTime         time.Time  `json:"displayTime,omitempty"`
	Countdown           string     `json:"countdown,omitempty"`
	IsRealtime          bool       `json:"isRealtime"`
	IsLate              bool       `json:"isLate"`
	IsAccessible        bool       `json:"isAccessible"`
	LineBackgroundColor string     `json:"lineBackgroundColor,omitempty"`
	LineTextColor       string     `json:"lineTextColor,omitempty"`
}

// DepartureTime returns the time a consumer should display and whether it
// is a real-time estimate. The scheduled time is the fallback; a departure
// with no time at all returns the zero time.
func (d Departure) DepartureTime() (departureTime time.Time, isRealTime bool) {
	if d.EstimatedTime != nil {
		return *d.EstimatedTime, true
	}
	return d.ScheduledTime, false
}

// Snapshot is the complete result of one poll cycle. A snapshot is either
// fully successful or an error snapshot; error snapshots always carry an
// empty departure sequence.
type Snapshot struct {
	Timestamp    time.Time   `json:"timestamp"`
	StationName  string      `json:"stationName,omitempty"`
	Departures   []Departure `json:"departures"`
	HasError     bool        `json:"hasError"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

// NewSnapshot builds a success snapshot. A nil departure slice is valid:
// zero real-time departures is a successful result.
func NewSnapshot(timestamp time.Time, stationName string, departures []Departure) Snapshot {
	if departures == nil {
		departures = []Departure{}
	}
	return Snapshot{
		Timestamp:   timestamp,
		StationName: stationName,
		Departures:  departures,
	}
}

// NewErrorSnapshot builds an error snapshot. Any departures parsed before
// the failure are deliberately not carried over.
func NewErrorSnapshot(timestamp time.Time, message string) Snapshot {
	return Snapshot{
		Timestamp:    timestamp,
		Departures:   []Departure{},
		HasError:     true,
		ErrorMessage: message,
	}
}

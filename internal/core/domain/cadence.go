package domain

import "time"

// Cadence bounds.
const (
	MinDayOfMonth     = 1
	MaxDayOfMonth     = 31
	MinIntervalMonths = 1
	MaxIntervalMonths = 12
)

// Cadence is a recurring schedule: a day-of-month anchor and a month interval
// (1 = monthly, 3 = quarterly, 12 = yearly).
// The JSON shape matches the stored payment_every column.
type Cadence struct {
	DayOfMonth     int `json:"day"`
	IntervalMonths int `json:"month"`
}

// Monthly returns a cadence charging every month on day.
func Monthly(day int) Cadence {
	return Cadence{DayOfMonth: day, IntervalMonths: 1}
}

// Yearly returns a cadence charging every twelve months on day.
func Yearly(day int) Cadence {
	return Cadence{DayOfMonth: day, IntervalMonths: 12}
}

// IsValid reports whether both components are within range.
func (c Cadence) IsValid() bool {
	return c.DayOfMonth >= MinDayOfMonth && c.DayOfMonth <= MaxDayOfMonth &&
		c.IntervalMonths >= MinIntervalMonths && c.IntervalMonths <= MaxIntervalMonths
}

// Schedule pairs a cadence with the next time it fires.
type Schedule struct {
	Cadence        Cadence   `json:"cadence"`
	NextOccurrence time.Time `json:"nextOccurrence"`
}

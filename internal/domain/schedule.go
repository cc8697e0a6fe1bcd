package domain

// HourRange is a half-open working window [Open, Close) in whole hours.
type HourRange struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// DateRange is an inclusive range of date keys (YYYY-MM-DD).
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TimeRange is a half-open interval [From, To) of HH:MM labels within a day.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ScheduleConfig is the tenant-wide booking configuration. WorkingHours is
// keyed by day of week (0=Sunday..6=Saturday); days without an entry are
// non-working. BlockedDays and BlockedDateRanges close whole dates,
// BlockedTimes closes windows on specific dates only.
type ScheduleConfig struct {
	WorkingHours      map[int]HourRange      `json:"working_hours"`
	BlockedDays       []string               `json:"blocked_days"`
	BlockedDateRanges []DateRange            `json:"blocked_date_ranges"`
	BlockedTimes      map[string][]TimeRange `json:"blocked_times"`
}

// DefaultScheduleConfig is returned when no configuration has been saved yet:
// Monday..Saturday 09:00-18:00, nothing blocked.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		WorkingHours: map[int]HourRange{
			1: {Open: 9, Close: 18},
			2: {Open: 9, Close: 18},
			3: {Open: 9, Close: 18},
			4: {Open: 9, Close: 18},
			5: {Open: 9, Close: 18},
			6: {Open: 9, Close: 18},
		},
		BlockedDays:       []string{},
		BlockedDateRanges: []DateRange{},
		BlockedTimes:      map[string][]TimeRange{},
	}
}

type UpdateScheduleConfigDTO struct {
	WorkingHours      *map[int]HourRange      `json:"working_hours,omitempty"`
	BlockedDays       *[]string               `json:"blocked_days,omitempty"`
	BlockedDateRanges *[]DateRange            `json:"blocked_date_ranges,omitempty"`
	BlockedTimes      *map[string][]TimeRange `json:"blocked_times,omitempty"`
}

package availability

import (
	"reflect"
	"testing"
	"time"

	"turnex/internal/domain"
)

// 2025-06-03 is a Tuesday, 2025-06-01 a Sunday.
var (
	tuesday = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func defaultConfig() domain.ScheduleConfig {
	return domain.DefaultScheduleConfig()
}

func TestGenerateSlots_FullWorkingDay(t *testing.T) {
	slots := GenerateSlots(defaultConfig(), tuesday)

	if len(slots) != 18 {
		t.Fatalf("expected 18 slots for a 9-18 day, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "17:30" {
		t.Errorf("last slot = %q, want 17:30", slots[len(slots)-1])
	}
}

func TestGenerateSlots_NonWorkingWeekday(t *testing.T) {
	if slots := GenerateSlots(defaultConfig(), sunday); slots != nil {
		t.Errorf("expected no slots on a non-working weekday, got %v", slots)
	}
}

func TestGenerateSlots_EmptyWindow(t *testing.T) {
	cfg := defaultConfig()
	cfg.WorkingHours[int(tuesday.Weekday())] = domain.HourRange{Open: 18, Close: 9}

	if slots := GenerateSlots(cfg, tuesday); slots != nil {
		t.Errorf("expected no slots when close <= open, got %v", slots)
	}
}

func TestGenerateSlots_BlockedTimeWindow(t *testing.T) {
	cfg := defaultConfig()
	cfg.BlockedTimes[DateKey(tuesday)] = []domain.TimeRange{
		{From: "12:00", To: "13:00"},
	}

	slots := GenerateSlots(cfg, tuesday)

	for _, s := range slots {
		if s == "12:00" || s == "12:30" {
			t.Errorf("blocked slot %s was generated", s)
		}
	}
	// The window boundary itself reopens.
	found := false
	for _, s := range slots {
		if s == "13:00" {
			found = true
		}
	}
	if !found {
		t.Error("13:00 should be open: blocked windows are half-open")
	}
	if len(slots) != 16 {
		t.Errorf("expected 16 slots after blocking one hour, got %d", len(slots))
	}
}

func TestGenerateSlots_IgnoresDayBlocks(t *testing.T) {
	cfg := defaultConfig()
	cfg.BlockedDays = []string{DateKey(tuesday)}

	// Day-level blocks are the caller's concern; the raw grid is unchanged.
	if slots := GenerateSlots(cfg, tuesday); len(slots) != 18 {
		t.Errorf("expected the raw grid despite a day block, got %d slots", len(slots))
	}
}

func TestIsDayBlocked(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScheduleConfig)
		date   time.Time
		want   bool
	}{
		{
			name:   "unblocked",
			mutate: func(cfg *domain.ScheduleConfig) {},
			date:   tuesday,
			want:   false,
		},
		{
			name: "single blocked day",
			mutate: func(cfg *domain.ScheduleConfig) {
				cfg.BlockedDays = []string{"2025-06-03"}
			},
			date: tuesday,
			want: true,
		},
		{
			name: "inside blocked range",
			mutate: func(cfg *domain.ScheduleConfig) {
				cfg.BlockedDateRanges = []domain.DateRange{{From: "2025-06-01", To: "2025-06-10"}}
			},
			date: tuesday,
			want: true,
		},
		{
			name: "range boundaries are inclusive",
			mutate: func(cfg *domain.ScheduleConfig) {
				cfg.BlockedDateRanges = []domain.DateRange{{From: "2025-06-03", To: "2025-06-03"}}
			},
			date: tuesday,
			want: true,
		},
		{
			name: "outside blocked range",
			mutate: func(cfg *domain.ScheduleConfig) {
				cfg.BlockedDateRanges = []domain.DateRange{{From: "2025-06-04", To: "2025-06-10"}}
			},
			date: tuesday,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			if got := IsDayBlocked(cfg, tt.date); got != tt.want {
				t.Errorf("IsDayBlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"23:59", 1439},
		{"9:00", -1},
		{"25:00", -1},
		{"garbage", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := MinuteOfDay(tt.label); got != tt.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestMinuteLabelRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m += SlotMinutes {
		if got := MinuteOfDay(MinuteLabel(m)); got != m {
			t.Fatalf("round trip failed for minute %d: got %d", m, got)
		}
	}
}

func TestSlotSpan(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     []string
	}{
		{"10:00", 30, []string{"10:00"}},
		{"10:00", 60, []string{"10:00", "10:30"}},
		{"10:00", 90, []string{"10:00", "10:30", "11:00"}},
		{"10:00", 45, []string{"10:00", "10:30"}},
		{"bad", 30, nil},
	}

	for _, tt := range tests {
		if got := SlotSpan(tt.start, tt.duration); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SlotSpan(%q, %d) = %v, want %v", tt.start, tt.duration, got, tt.want)
		}
	}
}

func TestExpandOccupancy(t *testing.T) {
	bookings := []domain.Booking{
		{Time: "10:00", Duration: 60},
		{Time: "14:00", Duration: 30},
		{Time: "14:30", Duration: 0}, // falls back
	}

	occupied := ExpandOccupancy(bookings, 60)

	want := []string{"10:00", "10:30", "14:00", "14:30", "15:00"}
	if len(occupied) != len(want) {
		t.Fatalf("expected %d occupied cells, got %d: %v", len(want), len(occupied), occupied)
	}
	for _, label := range want {
		if _, ok := occupied[label]; !ok {
			t.Errorf("cell %s should be occupied", label)
		}
	}
}

func TestExpandOccupancy_OverlapsUnion(t *testing.T) {
	bookings := []domain.Booking{
		{Time: "10:00", Duration: 60},
		{Time: "10:30", Duration: 60},
	}

	occupied := ExpandOccupancy(bookings, 0)

	if len(occupied) != 3 {
		t.Fatalf("overlapping bookings should union to 3 cells, got %d", len(occupied))
	}
}

package domain

import (
	"fmt"
	"time"
)

// Default schedule values used when the settings table has no override
const (
	DefaultWorkStartTime    = "08:00"
	DefaultWorkEndTime      = "17:00"
	DefaultToleranceMinutes = 15
)

// Saturday has its own fixed window: 08:00 - 12:00
const (
	saturdayStartMinute = 8 * 60
	saturdayEndMinute   = 12 * 60
)

// extendedEndMinute is the 22:00 cutoff of the extended-hours override
const extendedEndMinute = 22 * 60

// WorkSchedule is the effective attendance policy, assembled per request from
// the settings table with fallback defaults.
type WorkSchedule struct {
	StartTime        string `json:"start_time"` // "HH:MM"
	EndTime          string `json:"end_time"`   // "HH:MM"
	ToleranceMinutes int    `json:"tolerance_minutes"`
	WorkDays         []int  `json:"work_days"` // time.Weekday values, Sunday=0

	// ExtendedHours keeps the legacy behavior of accepting check-ins any day
	// up to 22:00 plus tolerance, regardless of the windows below. Controlled
	// by the extended_hours_mode setting so production can turn it off.
	ExtendedHours bool `json:"extended_hours"`
}

// DefaultWorkDays is Monday through Saturday.
func DefaultWorkDays() []int {
	return []int{1, 2, 3, 4, 5, 6}
}

// DefaultWorkSchedule returns the schedule used when no settings exist.
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime:        DefaultWorkStartTime,
		EndTime:          DefaultWorkEndTime,
		ToleranceMinutes: DefaultToleranceMinutes,
		WorkDays:         DefaultWorkDays(),
		ExtendedHours:    true,
	}
}

// Allows reports whether t falls inside permitted work hours.
//
// Branch order matters and must stay as-is:
//  1. extended-hours override: any day up to 22:00 + tolerance
//  2. Saturday window: 08:00 - 12:00 with tolerance on both ends
//  3. regular window: configured start/end with tolerance, work days only
//
// While ExtendedHours is on, branches 2 and 3 only ever see timestamps after
// 22:00 + tolerance. All boundaries are inclusive and tolerance is applied
// symmetrically to each end.
func (s WorkSchedule) Allows(t time.Time) bool {
	day := int(t.Weekday())
	minute := t.Hour()*60 + t.Minute()

	if s.ExtendedHours && minute <= extendedEndMinute+s.ToleranceMinutes {
		return true
	}

	if day == int(time.Saturday) {
		return minute >= saturdayStartMinute-s.ToleranceMinutes &&
			minute <= saturdayEndMinute+s.ToleranceMinutes
	}

	start, err := parseClock(s.StartTime)
	if err != nil {
		start = mustClock(DefaultWorkStartTime)
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		end = mustClock(DefaultWorkEndTime)
	}

	if !s.isWorkDay(day) {
		return false
	}
	return minute >= start-s.ToleranceMinutes && minute <= end+s.ToleranceMinutes
}

// Window returns the nominal schedule window for error messages.
func (s WorkSchedule) Window() string {
	return fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
}

func (s WorkSchedule) isWorkDay(day int) bool {
	for _, d := range s.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" to minute-of-day.
func parseClock(clock string) (int, error) {
	var hour, min int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &min); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	return hour*60 + min, nil
}

func mustClock(clock string) int {
	m, err := parseClock(clock)
	if err != nil {
		panic(err)
	}
	return m
}

package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/staffdesk/backend/internal/models"
)

// NextRun computes the next execution instant for a schedule, always
// strictly after now. Pure and deterministic given now. Weekly schedules
// whose target weekday is today but whose time already passed go to next
// week; monthly day-of-month values beyond the target month's length
// clamp to its last day.
func NextRun(s models.BackupSchedule, now time.Time) (time.Time, error) {
	hour, minute, err := parseClock(s.Time)
	if err != nil {
		return time.Time{}, err
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	switch s.Frequency {
	case models.FrequencyDaily:
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}

	case models.FrequencyWeekly:
		target := 0 // Sunday
		if s.DayOfWeek != nil {
			target = *s.DayOfWeek
		}
		days := (target - int(candidate.Weekday()) + 7) % 7
		if days == 0 && !candidate.After(now) {
			days = 7
		}
		candidate = candidate.AddDate(0, 0, days)

	case models.FrequencyMonthly:
		day := 1
		if s.DayOfMonth != nil {
			day = *s.DayOfMonth
		}
		candidate = time.Date(now.Year(), now.Month(), clampDay(day, now.Year(), now.Month()), hour, minute, 0, 0, now.Location())
		if !candidate.After(now) {
			next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
			candidate = time.Date(next.Year(), next.Month(), clampDay(day, next.Year(), next.Month()), hour, minute, 0, 0, now.Location())
		}

	default:
		return time.Time{}, fmt.Errorf("unknown frequency %q", s.Frequency)
	}

	return candidate, nil
}

// ValidateSchedule rejects malformed schedules before any mutation.
func ValidateSchedule(s models.BackupSchedule) error {
	if !models.IsValidFrequency(s.Frequency) {
		return fmt.Errorf("frequency must be daily, weekly or monthly")
	}
	if _, _, err := parseClock(s.Time); err != nil {
		return err
	}
	if s.Frequency == models.FrequencyWeekly {
		if s.DayOfWeek == nil {
			return fmt.Errorf("dayOfWeek is required for weekly schedules")
		}
		if *s.DayOfWeek < 0 || *s.DayOfWeek > 6 {
			return fmt.Errorf("dayOfWeek must be between 0 and 6")
		}
	}
	if s.Frequency == models.FrequencyMonthly {
		if s.DayOfMonth == nil {
			return fmt.Errorf("dayOfMonth is required for monthly schedules")
		}
		if *s.DayOfMonth < 1 || *s.DayOfMonth > 31 {
			return fmt.Errorf("dayOfMonth must be between 1 and 31")
		}
	}
	return nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	return hour, minute, nil
}

func clampDay(day, year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

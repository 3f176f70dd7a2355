package backup

import (
	"testing"
	"time"

	"github.com/staffdesk/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestNextRunDaily(t *testing.T) {
	tests := []struct {
		name string
		time string
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			time: "18:30",
			now:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "already passed, tomorrow",
			time: "09:00",
			now:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly now goes to tomorrow",
			time: "10:00",
			now:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.BackupSchedule{Frequency: models.FrequencyDaily, Time: tt.time}
			got, err := NextRun(s, tt.now)
			if err != nil {
				t.Fatalf("NextRun: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextRun = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextRunWeekly(t *testing.T) {
	// 2026-08-30 is a Sunday.
	sunday := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dayOfWeek *int
		time      string
		now       time.Time
		want      time.Time
	}{
		{
			name:      "same weekday but time passed goes to next week",
			dayOfWeek: intPtr(0),
			time:      "09:00",
			now:       sunday,
			want:      time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "same weekday, time still ahead, runs today",
			dayOfWeek: intPtr(0),
			time:      "11:00",
			now:       sunday,
			want:      time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
		},
		{
			name:      "target later this week",
			dayOfWeek: intPtr(3), // Wednesday
			time:      "09:00",
			now:       sunday,
			want:      time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "missing dayOfWeek defaults to Sunday",
			dayOfWeek: nil,
			time:      "09:00",
			now:       time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), // Monday
			want:      time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.BackupSchedule{Frequency: models.FrequencyWeekly, Time: tt.time, DayOfWeek: tt.dayOfWeek}
			got, err := NextRun(s, tt.now)
			if err != nil {
				t.Fatalf("NextRun: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextRun = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextRunMonthly(t *testing.T) {
	tests := []struct {
		name       string
		dayOfMonth *int
		time       string
		now        time.Time
		want       time.Time
	}{
		{
			name:       "first of next month",
			dayOfMonth: intPtr(1),
			time:       "00:00",
			now:        time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			want:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "later this month",
			dayOfMonth: intPtr(20),
			time:       "08:00",
			now:        time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			want:       time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 31 clamps in a 30-day month",
			dayOfMonth: intPtr(31),
			time:       "06:00",
			now:        time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC),
			want:       time.Date(2026, 9, 30, 6, 0, 0, 0, time.UTC),
		},
		{
			name:       "day 31 clamps in February",
			dayOfMonth: intPtr(31),
			time:       "06:00",
			now:        time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want:       time.Date(2026, 2, 28, 6, 0, 0, 0, time.UTC),
		},
		{
			name:       "missing dayOfMonth defaults to 1",
			dayOfMonth: nil,
			time:       "00:00",
			now:        time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			want:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.BackupSchedule{Frequency: models.FrequencyMonthly, Time: tt.time, DayOfMonth: tt.dayOfMonth}
			got, err := NextRun(s, tt.now)
			if err != nil {
				t.Fatalf("NextRun: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextRun = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextRunIsStrictlyFuture(t *testing.T) {
	nows := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC),
	}
	schedules := []models.BackupSchedule{
		{Frequency: models.FrequencyDaily, Time: "00:00"},
		{Frequency: models.FrequencyDaily, Time: "23:59"},
		{Frequency: models.FrequencyWeekly, Time: "12:00", DayOfWeek: intPtr(3)},
		{Frequency: models.FrequencyMonthly, Time: "12:00", DayOfMonth: intPtr(31)},
	}

	for _, now := range nows {
		for _, s := range schedules {
			got, err := NextRun(s, now)
			if err != nil {
				t.Fatalf("NextRun(%+v, %v): %v", s, now, err)
			}
			if !got.After(now) {
				t.Errorf("NextRun(%s %s, now=%v) = %v, not strictly after now", s.Frequency, s.Time, now, got)
			}
		}
	}
}

func TestNextRunRejectsUnknownFrequency(t *testing.T) {
	_, err := NextRun(models.BackupSchedule{Frequency: "hourly", Time: "09:00"}, time.Now())
	if err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		s       models.BackupSchedule
		wantErr bool
	}{
		{"valid daily", models.BackupSchedule{Frequency: "daily", Time: "03:00"}, false},
		{"valid weekly", models.BackupSchedule{Frequency: "weekly", Time: "03:00", DayOfWeek: intPtr(6)}, false},
		{"valid monthly", models.BackupSchedule{Frequency: "monthly", Time: "03:00", DayOfMonth: intPtr(31)}, false},
		{"bad frequency", models.BackupSchedule{Frequency: "hourly", Time: "03:00"}, true},
		{"bad time format", models.BackupSchedule{Frequency: "daily", Time: "3pm"}, true},
		{"hour out of range", models.BackupSchedule{Frequency: "daily", Time: "24:00"}, true},
		{"minute out of range", models.BackupSchedule{Frequency: "daily", Time: "12:60"}, true},
		{"weekly without dayOfWeek", models.BackupSchedule{Frequency: "weekly", Time: "03:00"}, true},
		{"weekly dayOfWeek out of range", models.BackupSchedule{Frequency: "weekly", Time: "03:00", DayOfWeek: intPtr(7)}, true},
		{"monthly without dayOfMonth", models.BackupSchedule{Frequency: "monthly", Time: "03:00"}, true},
		{"monthly dayOfMonth out of range", models.BackupSchedule{Frequency: "monthly", Time: "03:00", DayOfMonth: intPtr(0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.s)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule(%+v) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			}
		})
	}
}
